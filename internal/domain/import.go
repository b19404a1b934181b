package domain

import (
	"context"
	"io"
)

//go:generate mockgen -destination mocks/mock_import_service.go -package mocks github.com/luxor-creek/Personalized-App/internal/domain ImportService

// ImportStep is a step of the contact import flow
type ImportStep string

const (
	ImportStepChooseSource ImportStep = "choose_source"
	ImportStepIngest       ImportStep = "upload_or_fetch"
	ImportStepMapping      ImportStep = "column_mapping"
	ImportStepPreview      ImportStep = "preview"
)

// ImportSource is where contact rows come from
type ImportSource string

const (
	ImportSourceFile  ImportSource = "file"
	ImportSourceSheet ImportSource = "google_sheet"
)

func (s ImportSource) Validate() error {
	switch s {
	case ImportSourceFile, ImportSourceSheet:
		return nil
	}
	return NewValidationError("source must be one of: file, google_sheet")
}

// Default import bounds
const (
	DefaultMaxUploadBytes int64 = 5 * 1024 * 1024
	DefaultPreviewLimit         = 10
	DefaultSampleRows           = 5
)

// ImportSnapshot is a read-only view of an import session
type ImportSnapshot struct {
	SessionID    string          `json:"session_id"`
	Step         ImportStep      `json:"step"`
	Source       ImportSource    `json:"source,omitempty"`
	Pending      bool            `json:"pending"`
	Headers      []string        `json:"headers,omitempty"`
	SampleRows   [][]string      `json:"sample_rows,omitempty"`
	TargetFields []TargetField   `json:"target_fields,omitempty"`
	Mapping      FieldMapping    `json:"mapping,omitempty"`
	RecordCount  int             `json:"record_count"`
	Warnings     []ImportWarning `json:"warnings,omitempty"`
	Preview      *ImportPreview  `json:"preview,omitempty"`
}

// ImportPreview lists the records that can be previewed and which one is selected
type ImportPreview struct {
	Records  []ContactRecord `json:"records"`
	Index    int             `json:"index"`
	Selected ContactRecord   `json:"selected"`
	// Query is the p_-prefixed query string for the public preview page
	Query string `json:"query"`
}

type ImportService interface {
	StartImport(ctx context.Context, ownerID string) (*ImportSnapshot, error)
	GetImport(ctx context.Context, ownerID, sessionID string) (*ImportSnapshot, error)
	CancelImport(ctx context.Context, ownerID, sessionID string) error
	ChooseSource(ctx context.Context, ownerID, sessionID string, source ImportSource) (*ImportSnapshot, error)
	UploadFile(ctx context.Context, ownerID, sessionID, filename string, size int64, body io.Reader) (*ImportSnapshot, error)
	FetchSheet(ctx context.Context, ownerID, sessionID, sheetURL string) (*ImportSnapshot, error)
	MapColumn(ctx context.Context, ownerID, sessionID string, field ContactField, column string) (*ImportSnapshot, error)
	Back(ctx context.Context, ownerID, sessionID string) (*ImportSnapshot, error)
	GoToPreview(ctx context.Context, ownerID, sessionID string) (*ImportSnapshot, error)
	SelectPreview(ctx context.Context, ownerID, sessionID string, index int) (*ImportSnapshot, error)
	RenderPreview(ctx context.Context, ownerID, sessionID, templateID string) (string, error)
	Commit(ctx context.Context, ownerID, sessionID, campaignID string) (*GeneratePagesResult, error)
}
