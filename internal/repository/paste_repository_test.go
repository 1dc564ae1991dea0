package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivdepaste/ivdepaste-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func pasteRows(pastes ...models.Paste) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "content", "user_id", "created_at", "expires_at", "language", "burn", "visibility"})
	for _, p := range pastes {
		rows.AddRow(p.ID, p.Title, p.Content, p.UserID, p.CreatedAt, p.ExpiresAt, string(p.Language), p.Burn, p.Visibility)
	}
	return rows
}

func TestInsertAssignsIDAndVisibility(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPasteRepository(db)

	mock.ExpectExec("INSERT INTO pastes").WillReturnResult(sqlmock.NewResult(0, 1))

	paste := &models.Paste{Title: "Untitled", Content: "hello", Language: models.LangText}
	err := repo.Insert(context.Background(), paste)
	require.NoError(t, err)
	assert.NotEmpty(t, paste.ID)
	assert.False(t, paste.CreatedAt.IsZero())
	assert.Equal(t, models.VisibilityPublic, paste.Visibility)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertOwnedPasteIsPrivate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPasteRepository(db)

	mock.ExpectExec("INSERT INTO pastes").WillReturnResult(sqlmock.NewResult(0, 1))

	owner := "user-a"
	paste := &models.Paste{ID: "p1", Content: "hi", UserID: &owner, Language: models.LangGo}
	require.NoError(t, repo.Insert(context.Background(), paste))
	assert.Equal(t, models.VisibilityPrivate, paste.Visibility)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPasteRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, content, user_id, created_at, expires_at, language, burn, visibility FROM pastes WHERE id = $1 LIMIT 1")).
		WithArgs("p1").
		WillReturnRows(pasteRows(models.Paste{ID: "p1", Title: "T", Content: "body", CreatedAt: now, Language: models.LangText, Visibility: models.VisibilityPublic}))

	paste, err := repo.FindByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", paste.ID)
	assert.Equal(t, "body", paste.Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDNoRowsPassesThrough(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPasteRepository(db)

	mock.ExpectQuery("SELECT .+ FROM pastes WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserOrdersNewestFirst(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPasteRepository(db)

	now := time.Now().UTC()
	owner := "user-a"
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, content, user_id, created_at, expires_at, language, burn, visibility FROM pastes WHERE user_id = $1 ORDER BY created_at DESC")).
		WithArgs("user-a").
		WillReturnRows(pasteRows(
			models.Paste{ID: "p2", CreatedAt: now, UserID: &owner, Language: models.LangText, Visibility: models.VisibilityPrivate},
			models.Paste{ID: "p1", CreatedAt: now.Add(-time.Hour), UserID: &owner, Language: models.LangText, Visibility: models.VisibilityPrivate},
		))

	pastes, err := repo.ListByUser(context.Background(), "user-a")
	require.NoError(t, err)
	require.Len(t, pastes, 2)
	assert.Equal(t, "p2", pastes[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByIDsEmptySetSkipsQuery(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPasteRepository(db)

	pastes, err := repo.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, pastes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByIDsToleratesStaleIDs(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPasteRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM pastes WHERE id IN").
		WithArgs("p1", "gone").
		WillReturnRows(pasteRows(models.Paste{ID: "p1", CreatedAt: now, Language: models.LangText, Visibility: models.VisibilityPublic}))

	pastes, err := repo.ListByIDs(context.Background(), []string{"p1", "gone"})
	require.NoError(t, err)
	require.Len(t, pastes, 1)
	assert.Equal(t, "p1", pastes[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByIDZeroRowsIsSuccess(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPasteRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM pastes WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.DeleteByID(context.Background(), "missing"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByIDsBatches(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPasteRepository(db)

	mock.ExpectExec("DELETE FROM pastes WHERE id IN").
		WithArgs("p1", "p2").
		WillReturnResult(sqlmock.NewResult(0, 2))

	assert.NoError(t, repo.DeleteByIDs(context.Background(), []string{"p1", "p2"}))
	assert.NoError(t, mock.ExpectationsWereMet())

	// Empty set short-circuits without touching the store.
	assert.NoError(t, repo.DeleteByIDs(context.Background(), nil))
}
