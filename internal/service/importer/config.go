package importer

import (
	"time"

	"github.com/luxor-creek/Personalized-App/internal/domain"
)

// Config bounds an import pipeline
type Config struct {
	// MaxUploadBytes is the largest file accepted for upload
	MaxUploadBytes int64 `json:"max_upload_bytes"`

	// PreviewLimit is how many records can be stepped through in the preview
	PreviewLimit int `json:"preview_limit"`

	// SampleRows is how many raw rows the mapping step shows
	SampleRows int `json:"sample_rows"`

	// SheetFetchTimeout bounds a remote spreadsheet export request
	SheetFetchTimeout time.Duration `json:"sheet_fetch_timeout"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		MaxUploadBytes:    domain.DefaultMaxUploadBytes,
		PreviewLimit:      domain.DefaultPreviewLimit,
		SampleRows:        domain.DefaultSampleRows,
		SheetFetchTimeout: 15 * time.Second,
	}
}

// withDefaults fills zero values from DefaultConfig
func (c *Config) withDefaults() *Config {
	def := DefaultConfig()
	if c == nil {
		return def
	}
	out := *c
	if out.MaxUploadBytes <= 0 {
		out.MaxUploadBytes = def.MaxUploadBytes
	}
	if out.PreviewLimit <= 0 {
		out.PreviewLimit = def.PreviewLimit
	}
	if out.SampleRows <= 0 {
		out.SampleRows = def.SampleRows
	}
	if out.SheetFetchTimeout <= 0 {
		out.SheetFetchTimeout = def.SheetFetchTimeout
	}
	return &out
}
