package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ivdepaste/ivdepaste-api/internal/models"
	"github.com/ivdepaste/ivdepaste-api/internal/service"
	appErrors "github.com/ivdepaste/ivdepaste-api/pkg/errors"
	"github.com/ivdepaste/ivdepaste-api/pkg/response"
)

// DetectRequest carries the text to classify.
type DetectRequest struct {
	Content string `json:"content"`
}

// DetectResponse reports the winning language for a piece of text.
type DetectResponse struct {
	Language string `json:"language"`
	Label    string `json:"label"`
}

// LanguageHandler serves language detection and the supported-language catalog.
type LanguageHandler struct {
	service *service.LanguageService
	metrics *service.MetricsService
}

// NewLanguageHandler creates a new language handler.
func NewLanguageHandler(svc *service.LanguageService, metrics *service.MetricsService) *LanguageHandler {
	return &LanguageHandler{service: svc, metrics: metrics}
}

// Detect godoc
// @Summary Detect language
// @Description Classify a snippet of text into one of the supported languages
// @Tags Languages
// @Accept json
// @Produce json
// @Param payload body DetectRequest true "Text to classify"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /detect [post]
func (h *LanguageHandler) Detect(c *gin.Context) {
	var req DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	lang := h.service.Detect(req.Content)
	h.metrics.RecordDetection(lang)

	result := DetectResponse{
		Language: string(lang),
		Label:    models.LanguageLabel(lang),
	}

	if c.Query("debug") == "true" {
		response.JSON(c, http.StatusOK, result, nil, map[string]interface{}{"scores": h.service.Scores(req.Content)})
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Languages godoc
// @Summary List supported languages
// @Description Return the catalog of detectable languages with display labels
// @Tags Languages
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /languages [get]
func (h *LanguageHandler) Languages(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Catalog(), nil)
}
