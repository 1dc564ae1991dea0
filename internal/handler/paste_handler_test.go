package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivdepaste/ivdepaste-api/internal/middleware"
	"github.com/ivdepaste/ivdepaste-api/internal/models"
	"github.com/ivdepaste/ivdepaste-api/internal/service"
	"github.com/ivdepaste/ivdepaste-api/pkg/config"
)

type memoryPasteRepo struct {
	pastes map[string]models.Paste
}

func newMemoryPasteRepo() *memoryPasteRepo {
	return &memoryPasteRepo{pastes: map[string]models.Paste{}}
}

func (m *memoryPasteRepo) Insert(ctx context.Context, paste *models.Paste) error {
	m.pastes[paste.ID] = *paste
	return nil
}

func (m *memoryPasteRepo) FindByID(ctx context.Context, id string) (*models.Paste, error) {
	paste, ok := m.pastes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &paste, nil
}

func (m *memoryPasteRepo) ListByUser(ctx context.Context, userID string) ([]models.Paste, error) {
	var result []models.Paste
	for _, p := range m.pastes {
		if p.UserID != nil && *p.UserID == userID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *memoryPasteRepo) ListByIDs(ctx context.Context, ids []string) ([]models.Paste, error) {
	var result []models.Paste
	for _, id := range ids {
		if p, ok := m.pastes[id]; ok {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *memoryPasteRepo) DeleteByID(ctx context.Context, id string) error {
	delete(m.pastes, id)
	return nil
}

func (m *memoryPasteRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	for _, id := range ids {
		delete(m.pastes, id)
	}
	return nil
}

func newTestPasteHandler(repo *memoryPasteRepo) *PasteHandler {
	cfg := config.PasteConfig{}
	svc := service.NewPasteService(repo, nil, nil, nil, nil, cfg)
	return NewPasteHandler(svc, middleware.NewAnonSet(cfg))
}

func testContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func anonCookieValue(t *testing.T, ids []string) string {
	t.Helper()
	payload, err := json.Marshal(ids)
	require.NoError(t, err)
	return base64.RawURLEncoding.EncodeToString(payload)
}

func decodeAnonCookie(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	res := w.Result()
	for _, cookie := range res.Cookies() {
		if cookie.Name != "ivdepaste_anon_ids" {
			continue
		}
		if cookie.Value == "" {
			return nil
		}
		decoded, err := base64.RawURLEncoding.DecodeString(cookie.Value)
		require.NoError(t, err)
		var ids []string
		require.NoError(t, json.Unmarshal(decoded, &ids))
		return ids
	}
	return nil
}

func decodePaste(t *testing.T, w *httptest.ResponseRecorder) models.Paste {
	t.Helper()
	var envelope struct {
		Data models.Paste `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestPasteHandlerCreateAnonymous(t *testing.T) {
	repo := newMemoryPasteRepo()
	handler := newTestPasteHandler(repo)

	body, _ := json.Marshal(service.CreatePasteRequest{Title: "snippet", Content: "hello"})
	c, w := testContext(t, http.MethodPost, "/pastes", body)

	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	paste := decodePaste(t, w)
	assert.NotEmpty(t, paste.ID)
	assert.Equal(t, "snippet", paste.Title)

	ids := decodeAnonCookie(t, w)
	assert.Equal(t, []string{paste.ID}, ids)
}

func TestPasteHandlerCreateAuthenticatedSkipsCookie(t *testing.T) {
	repo := newMemoryPasteRepo()
	handler := newTestPasteHandler(repo)

	body, _ := json.Marshal(service.CreatePasteRequest{Content: "hello"})
	c, w := testContext(t, http.MethodPost, "/pastes", body)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1"})

	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, decodeAnonCookie(t, w))
	paste := decodePaste(t, w)
	assert.Equal(t, models.VisibilityPrivate, paste.Visibility)
}

func TestPasteHandlerCreateInvalidBody(t *testing.T) {
	handler := newTestPasteHandler(newMemoryPasteRepo())

	c, w := testContext(t, http.MethodPost, "/pastes", []byte(`{invalid`))
	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPasteHandlerCreateBlankContent(t *testing.T) {
	handler := newTestPasteHandler(newMemoryPasteRepo())

	body, _ := json.Marshal(service.CreatePasteRequest{Content: "   "})
	c, w := testContext(t, http.MethodPost, "/pastes", body)
	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPasteHandlerGet(t *testing.T) {
	repo := newMemoryPasteRepo()
	repo.pastes["p1"] = models.Paste{
		ID: "p1", Title: "notes", Content: "body",
		CreatedAt: time.Now().UTC(), Language: models.LangText,
		Visibility: models.VisibilityPublic,
	}
	handler := newTestPasteHandler(repo)

	c, w := testContext(t, http.MethodGet, "/pastes/p1", nil)
	c.Params = gin.Params{{Key: "id", Value: "p1"}}
	handler.Get(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "notes", decodePaste(t, w).Title)
}

func TestPasteHandlerGetMissing(t *testing.T) {
	handler := newTestPasteHandler(newMemoryPasteRepo())

	c, w := testContext(t, http.MethodGet, "/pastes/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPasteHandlerGetExpired(t *testing.T) {
	repo := newMemoryPasteRepo()
	past := time.Now().UTC().Add(-time.Hour)
	repo.pastes["p1"] = models.Paste{
		ID: "p1", Content: "body", CreatedAt: past.Add(-time.Hour),
		ExpiresAt: &past, Language: models.LangText,
		Visibility: models.VisibilityPublic,
	}
	handler := newTestPasteHandler(repo)

	c, w := testContext(t, http.MethodGet, "/pastes/p1", nil)
	c.Params = gin.Params{{Key: "id", Value: "p1"}}
	handler.Get(c)

	assert.Equal(t, http.StatusGone, w.Code)
}

func TestPasteHandlerGetForbidden(t *testing.T) {
	repo := newMemoryPasteRepo()
	owner := "user-1"
	repo.pastes["p1"] = models.Paste{
		ID: "p1", Content: "body", UserID: &owner,
		CreatedAt: time.Now().UTC(), Language: models.LangText,
		Visibility: models.VisibilityPrivate,
	}
	handler := newTestPasteHandler(repo)

	c, w := testContext(t, http.MethodGet, "/pastes/p1", nil)
	c.Params = gin.Params{{Key: "id", Value: "p1"}}
	handler.Get(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPasteHandlerListAnonymousUsesCookie(t *testing.T) {
	repo := newMemoryPasteRepo()
	now := time.Now().UTC()
	repo.pastes["p1"] = models.Paste{ID: "p1", Title: "first", Content: "x", CreatedAt: now.Add(-time.Hour)}
	repo.pastes["p2"] = models.Paste{ID: "p2", Title: "second", Content: "x", CreatedAt: now}
	handler := newTestPasteHandler(repo)

	c, w := testContext(t, http.MethodGet, "/pastes", nil)
	c.Request.AddCookie(&http.Cookie{Name: "ivdepaste_anon_ids", Value: anonCookieValue(t, []string{"p1", "p2", "stale"})})
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data []models.Paste         `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "p2", envelope.Data[0].ID)
	assert.EqualValues(t, 2, envelope.Meta["total"])
}

func TestPasteHandlerListAnonymousWithoutCookie(t *testing.T) {
	handler := newTestPasteHandler(newMemoryPasteRepo())

	c, w := testContext(t, http.MethodGet, "/pastes", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data []models.Paste `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data)
}

func TestPasteHandlerListSearchFilter(t *testing.T) {
	repo := newMemoryPasteRepo()
	owner := "user-1"
	now := time.Now().UTC()
	repo.pastes["p1"] = models.Paste{ID: "p1", Title: "Alpha", Content: "x", UserID: &owner, CreatedAt: now}
	repo.pastes["p2"] = models.Paste{ID: "p2", Title: "beta", Content: "x", UserID: &owner, CreatedAt: now}
	handler := newTestPasteHandler(repo)

	c, w := testContext(t, http.MethodGet, "/pastes?search=al", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: owner})
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data []models.Paste `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "p1", envelope.Data[0].ID)
}

func TestPasteHandlerListRejectsBadCutoff(t *testing.T) {
	handler := newTestPasteHandler(newMemoryPasteRepo())

	c, w := testContext(t, http.MethodGet, "/pastes?created_after=yesterday", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1"})
	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPasteHandlerDeleteRemovesCookieEntry(t *testing.T) {
	repo := newMemoryPasteRepo()
	repo.pastes["p1"] = models.Paste{ID: "p1", Content: "x"}
	handler := newTestPasteHandler(repo)

	c, w := testContext(t, http.MethodDelete, "/pastes/p1", nil)
	c.Params = gin.Params{{Key: "id", Value: "p1"}}
	c.Request.AddCookie(&http.Cookie{Name: "ivdepaste_anon_ids", Value: anonCookieValue(t, []string{"p1", "p2"})})
	handler.Delete(c)
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.NotContains(t, repo.pastes, "p1")
	assert.Equal(t, []string{"p2"}, decodeAnonCookie(t, w))
}

func TestPasteHandlerBulkDelete(t *testing.T) {
	repo := newMemoryPasteRepo()
	repo.pastes["p1"] = models.Paste{ID: "p1", Content: "x"}
	repo.pastes["p2"] = models.Paste{ID: "p2", Content: "x"}
	handler := newTestPasteHandler(repo)

	body, _ := json.Marshal(BulkDeleteRequest{IDs: []string{"p1", "p2"}})
	c, w := testContext(t, http.MethodPost, "/pastes/bulk-delete", body)
	handler.BulkDelete(c)
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.pastes)
}

func TestPasteHandlerBulkDeleteRequiresIDs(t *testing.T) {
	handler := newTestPasteHandler(newMemoryPasteRepo())

	body, _ := json.Marshal(BulkDeleteRequest{})
	c, w := testContext(t, http.MethodPost, "/pastes/bulk-delete", body)
	handler.BulkDelete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
