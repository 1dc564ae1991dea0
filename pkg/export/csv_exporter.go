package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/ivdepaste/ivdepaste-api/internal/models"
)

var indexHeaders = []string{"id", "title", "language", "created_at", "expires_at"}

// CSVExporter renders a paste index into CSV bytes. Content bodies are
// deliberately excluded; the index is a listing, not a backup.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the given pastes.
func (e *CSVExporter) Render(pastes []models.Paste) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(indexHeaders); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, p := range pastes {
		expires := ""
		if p.ExpiresAt != nil {
			expires = p.ExpiresAt.UTC().Format(time.RFC3339)
		}
		record := []string{
			p.ID,
			p.Title,
			string(p.Language),
			p.CreatedAt.UTC().Format(time.RFC3339),
			expires,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
