package domain

import (
	"context"
	"io"
)

//go:generate mockgen -destination mocks/mock_media_storage.go -package mocks github.com/luxor-creek/Personalized-App/internal/domain MediaStorage
//go:generate mockgen -destination mocks/mock_media_service.go -package mocks github.com/luxor-creek/Personalized-App/internal/domain MediaService

// MediaStorage stores uploaded files and returns the URL they are served from
type MediaStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// MediaField names the content key an uploaded file is written to
type MediaField string

const (
	MediaFieldImageURL    MediaField = "imageUrl"
	MediaFieldImageURLs   MediaField = "imageUrls"
	MediaFieldLogoURL     MediaField = "logoUrl"
	MediaFieldDocumentURL MediaField = "documentUrl"
)

// Accepts reports whether variant t has this media field
func (f MediaField) Accepts(t SectionType) bool {
	switch f {
	case MediaFieldImageURL:
		return t == SectionTypeImage || t == SectionTypeBanner
	case MediaFieldImageURLs:
		return t == SectionTypeImage
	case MediaFieldLogoURL:
		return t == SectionTypeLogo
	case MediaFieldDocumentURL:
		return t == SectionTypeDocument
	}
	return false
}

// AllowsContentType reports whether a sniffed MIME type may be stored in this field
func (f MediaField) AllowsContentType(mime string) bool {
	if f == MediaFieldDocumentURL {
		return mime == "application/pdf"
	}
	switch mime {
	case "image/png", "image/jpeg", "image/gif", "image/webp", "image/svg+xml":
		return true
	}
	return false
}

type UploadMediaRequest struct {
	TemplateID string     `valid:"required"`
	SectionID  string     `valid:"required"`
	Field      MediaField `valid:"required"`
	Filename   string
	Size       int64
	Body       io.Reader
}

func (r *UploadMediaRequest) Validate() error {
	if r.TemplateID == "" || r.SectionID == "" {
		return NewValidationError("template_id and section_id are required")
	}
	switch r.Field {
	case MediaFieldImageURL, MediaFieldImageURLs, MediaFieldLogoURL, MediaFieldDocumentURL:
	default:
		return NewValidationError("field must be one of: imageUrl, imageUrls, logoUrl, documentUrl")
	}
	if r.Body == nil {
		return NewValidationError("file is required")
	}
	return nil
}

type MediaService interface {
	// UploadSectionMedia stores the file and writes its URL into the section's field
	UploadSectionMedia(ctx context.Context, ownerID string, request *UploadMediaRequest) (*PageTemplate, string, error)
}
