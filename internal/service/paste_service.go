package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ivdepaste/ivdepaste-api/internal/models"
	"github.com/ivdepaste/ivdepaste-api/pkg/config"
	appErrors "github.com/ivdepaste/ivdepaste-api/pkg/errors"
)

type pasteRepository interface {
	Insert(ctx context.Context, paste *models.Paste) error
	FindByID(ctx context.Context, id string) (*models.Paste, error)
	ListByUser(ctx context.Context, userID string) ([]models.Paste, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Paste, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByIDs(ctx context.Context, ids []string) error
}

// CreatePasteRequest represents the creation payload.
type CreatePasteRequest struct {
	Title      string                  `json:"title"`
	Content    string                  `json:"content" validate:"required"`
	Expiration models.ExpirationChoice `json:"expiration"`
	Language   models.Language         `json:"language"`
	Burn       bool                    `json:"burn"`
}

// PasteService orchestrates the paste lifecycle: creation, retrieval,
// listing, filtering and deletion. The requester identity is always an
// explicit parameter; nothing here reads ambient session state.
type PasteService struct {
	repo      pasteRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       config.PasteConfig
}

// NewPasteService creates an instance of PasteService.
func NewPasteService(repo pasteRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg config.PasteConfig) *PasteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.MaxLines <= 0 {
		cfg.MaxLines = 1000
	}
	if cfg.DefaultTitle == "" {
		cfg.DefaultTitle = "Untitled"
	}
	return &PasteService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger, cfg: cfg}
}

// Create validates the payload, assembles a paste and stores it with a
// single insert. The id is generated fresh on every attempt; a failed
// insert discards it and a resubmission gets a new one. No local state
// is touched here: the anonymous ownership set is appended at the HTTP
// boundary, and only after the insert was acknowledged.
func (s *PasteService) Create(ctx context.Context, req CreatePasteRequest, identity *string) (*models.Paste, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid create paste payload")
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "paste content cannot be empty")
	}

	if lines := strings.Count(req.Content, "\n") + 1; lines > s.cfg.MaxLines {
		return nil, appErrors.Clone(appErrors.ErrValidation, "paste content exceeds the line limit")
	}

	choice := req.Expiration
	if choice == "" {
		choice = models.ExpirePermanent
	}
	if !choice.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown expiration choice")
	}

	language := req.Language
	if language == "" {
		language = models.LangText
	}
	if !models.SupportedLanguage(language) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported language")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = s.cfg.DefaultTitle
	}

	now := time.Now().UTC()
	paste := &models.Paste{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   req.Content,
		UserID:    identity,
		CreatedAt: now,
		ExpiresAt: choice.ExpiresAt(now),
		Language:  language,
		Burn:      req.Burn,
	}
	paste.Visibility = paste.DeriveVisibility()

	if err := s.repo.Insert(ctx, paste); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to store paste")
	}

	s.metrics.RecordPasteCreated(paste.Anonymous())
	s.cache.StorePaste(ctx, paste)

	return paste, nil
}

// Get fetches one paste and applies the read rules in a fixed order:
// existence, then expiration, then permission. Expired beats forbidden
// on purpose; it is the more informative terminal state. Expiry is
// evaluated against the clock on every call, cached copies included.
func (s *PasteService) Get(ctx context.Context, id string, identity *string) (*models.Paste, error) {
	paste, hit := s.cache.GetPaste(ctx, id)
	if !hit {
		var err error
		paste, err = s.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "paste not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to load paste")
		}
		s.cache.StorePaste(ctx, paste)
	}

	if paste.IsExpired(time.Now().UTC()) {
		return nil, appErrors.Clone(appErrors.ErrExpired, "this paste has expired")
	}

	if !paste.Anonymous() && !paste.OwnedBy(identity) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you do not have permission to view this paste")
	}

	return paste, nil
}

// List returns the requester's pastes, newest first. Authenticated
// requesters get their owned rows; anonymous ones get the rows named by
// their ownership set, and an empty set short-circuits without a store
// round-trip. Stale ids simply produce fewer rows than asked for.
func (s *PasteService) List(ctx context.Context, identity *string, anonIDs []string) ([]models.Paste, error) {
	if identity != nil && *identity != "" {
		pastes, err := s.repo.ListByUser(ctx, *identity)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to list pastes")
		}
		return pastes, nil
	}

	if len(anonIDs) == 0 {
		return []models.Paste{}, nil
	}

	pastes, err := s.repo.ListByIDs(ctx, anonIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to list pastes")
	}
	return pastes, nil
}

// Filter applies the in-memory list filters: case-insensitive substring
// match on title or content, AND a creation-date cutoff. Pure and
// non-destructive; the input slice is never mutated.
func (s *PasteService) Filter(pastes []models.Paste, filter models.PasteFilter) []models.Paste {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	result := make([]models.Paste, 0, len(pastes))
	for _, p := range pastes {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Content), search) {
			continue
		}
		if filter.CreatedAfter != nil && p.CreatedAt.Before(*filter.CreatedAfter) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// DeleteOne removes a paste by id. Idempotent: deleting an id with no
// remaining row succeeds. Ownership enforcement belongs to the store's
// row-level rules; the id itself is the capability for anonymous pastes.
func (s *PasteService) DeleteOne(ctx context.Context, id string, identity *string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to delete paste")
	}
	s.cache.Invalidate(ctx, []string{id})
	s.metrics.RecordPastesDeleted(1)
	return nil
}

// DeleteMany removes a set of pastes in one batched statement. A partial
// store failure surfaces as a single failed operation; there is no
// per-id breakdown.
func (s *PasteService) DeleteMany(ctx context.Context, ids []string, identity *string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.repo.DeleteByIDs(ctx, ids); err != nil {
		return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to delete pastes")
	}
	s.cache.Invalidate(ctx, ids)
	s.metrics.RecordPastesDeleted(len(ids))
	return nil
}
