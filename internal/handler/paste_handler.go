package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ivdepaste/ivdepaste-api/internal/middleware"
	"github.com/ivdepaste/ivdepaste-api/internal/models"
	"github.com/ivdepaste/ivdepaste-api/internal/service"
	appErrors "github.com/ivdepaste/ivdepaste-api/pkg/errors"
	"github.com/ivdepaste/ivdepaste-api/pkg/response"
)

// BulkDeleteRequest names the ids to remove in one batch.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// PasteHandler wires the paste lifecycle to HTTP.
type PasteHandler struct {
	service *service.PasteService
	anonSet *middleware.AnonSet
}

// NewPasteHandler creates a new paste handler.
func NewPasteHandler(svc *service.PasteService, anonSet *middleware.AnonSet) *PasteHandler {
	return &PasteHandler{service: svc, anonSet: anonSet}
}

// Create godoc
// @Summary Create paste
// @Description Store a new paste and return it with its generated id
// @Tags Pastes
// @Accept json
// @Produce json
// @Param payload body service.CreatePasteRequest true "Create paste payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /pastes [post]
func (h *PasteHandler) Create(c *gin.Context) {
	var req service.CreatePasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	identity := identityFromContext(c)
	paste, err := h.service.Create(c.Request.Context(), req, identity)
	if err != nil {
		response.Error(c, err)
		return
	}

	// The ownership set is only touched once the insert is acknowledged;
	// a failed create must leave no local trace.
	if identity == nil {
		h.anonSet.Append(c, paste.ID)
	}

	response.Created(c, paste)
}

// Get godoc
// @Summary View paste
// @Description Fetch a single paste by id
// @Tags Pastes
// @Produce json
// @Param id path string true "Paste ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 410 {object} response.Envelope
// @Router /pastes/{id} [get]
func (h *PasteHandler) Get(c *gin.Context) {
	paste, err := h.service.Get(c.Request.Context(), c.Param("id"), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, paste, nil)
}

// List godoc
// @Summary List pastes
// @Description List the requester's pastes, newest first, with optional filters
// @Tags Pastes
// @Produce json
// @Param search query string false "Case-insensitive substring filter on title or content"
// @Param created_after query string false "RFC3339 creation-date cutoff"
// @Param within_days query int false "Creation-date cutoff as days back from now"
// @Success 200 {object} response.Envelope
// @Router /pastes [get]
func (h *PasteHandler) List(c *gin.Context) {
	identity := identityFromContext(c)

	var anonIDs []string
	if identity == nil {
		anonIDs = h.anonSet.Read(c)
	}

	pastes, err := h.service.List(c.Request.Context(), identity, anonIDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	filter, err := filterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	filtered := h.service.Filter(pastes, filter)

	response.JSON(c, http.StatusOK, filtered, nil, map[string]interface{}{"total": len(filtered)})
}

// Delete godoc
// @Summary Delete paste
// @Description Remove a paste by id; deleting an unknown id succeeds
// @Tags Pastes
// @Produce json
// @Param id path string true "Paste ID"
// @Success 204 {object} response.Envelope
// @Router /pastes/{id} [delete]
func (h *PasteHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	identity := identityFromContext(c)

	if err := h.service.DeleteOne(c.Request.Context(), id, identity); err != nil {
		response.Error(c, err)
		return
	}

	if identity == nil {
		h.anonSet.Remove(c, []string{id})
	}

	response.NoContent(c)
}

// BulkDelete godoc
// @Summary Bulk delete pastes
// @Description Remove a set of pastes in one batched operation
// @Tags Pastes
// @Accept json
// @Produce json
// @Param payload body BulkDeleteRequest true "Ids to delete"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /pastes/bulk-delete [post]
func (h *PasteHandler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	identity := identityFromContext(c)
	if err := h.service.DeleteMany(c.Request.Context(), req.IDs, identity); err != nil {
		response.Error(c, err)
		return
	}

	if identity == nil {
		h.anonSet.Remove(c, req.IDs)
	}

	response.NoContent(c)
}

func filterFromQuery(c *gin.Context) (models.PasteFilter, error) {
	filter := models.PasteFilter{Search: c.Query("search")}

	if raw := c.Query("created_after"); raw != "" {
		cutoff, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, "created_after must be RFC3339")
		}
		filter.CreatedAfter = &cutoff
	}

	if raw := c.Query("within_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			return filter, appErrors.Clone(appErrors.ErrValidation, "within_days must be a non-negative integer")
		}
		cutoff := time.Now().UTC().AddDate(0, 0, -days)
		filter.CreatedAfter = &cutoff
	}

	return filter, nil
}
