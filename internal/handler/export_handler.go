package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ivdepaste/ivdepaste-api/internal/middleware"
	"github.com/ivdepaste/ivdepaste-api/internal/service"
	appErrors "github.com/ivdepaste/ivdepaste-api/pkg/errors"
	"github.com/ivdepaste/ivdepaste-api/pkg/export"
	"github.com/ivdepaste/ivdepaste-api/pkg/response"
)

// ExportHandler streams pastes as downloadable artifacts.
type ExportHandler struct {
	service *service.PasteService
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	anonSet *middleware.AnonSet
}

// NewExportHandler creates a new export handler.
func NewExportHandler(svc *service.PasteService, csv *export.CSVExporter, pdf *export.PDFExporter, anonSet *middleware.AnonSet) *ExportHandler {
	return &ExportHandler{service: svc, csv: csv, pdf: pdf, anonSet: anonSet}
}

// Download godoc
// @Summary Download paste
// @Description Download a single paste as a text or PDF file
// @Tags Exports
// @Produce octet-stream
// @Param id path string true "Paste ID"
// @Param format query string false "Download format, txt or pdf" default(txt)
// @Success 200 {file} byte
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /pastes/{id}/download [get]
func (h *ExportHandler) Download(c *gin.Context) {
	paste, err := h.service.Get(c.Request.Context(), c.Param("id"), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := sanitizeFilename(paste.Title)

	switch strings.ToLower(c.DefaultQuery("format", "txt")) {
	case "txt":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".txt"))
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(paste.Content))
	case "pdf":
		doc, err := h.pdf.Render(paste)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to render pdf"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".pdf"))
		c.Data(http.StatusOK, "application/pdf", doc)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be txt or pdf"))
	}
}

// Export godoc
// @Summary Export paste index
// @Description Export the requester's paste index as CSV
// @Tags Exports
// @Produce text/csv
// @Success 200 {file} byte
// @Router /pastes/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
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

	payload, err := h.csv.Render(pastes)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to render csv"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="pastes.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}

// sanitizeFilename keeps download names header-safe.
func sanitizeFilename(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', '\n', '\r':
			return '_'
		default:
			return r
		}
	}, strings.TrimSpace(title))
	if cleaned == "" {
		cleaned = "paste"
	}
	return cleaned
}
