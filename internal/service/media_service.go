package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

const (
	defaultMaxMediaBytes int64 = 10 * 1024 * 1024
	sniffLen                   = 3072
)

// MediaService stores section images, logos and documents and writes the
// resulting URL into the section that asked for it
type MediaService struct {
	templates domain.TemplateRepository
	storage   domain.MediaStorage
	catalog   *domain.SectionCatalog
	maxBytes  int64
	logger    logger.Logger
}

func NewMediaService(templates domain.TemplateRepository, storage domain.MediaStorage, catalog *domain.SectionCatalog, maxBytes int64, logger logger.Logger) *MediaService {
	if maxBytes <= 0 {
		maxBytes = defaultMaxMediaBytes
	}
	return &MediaService{
		templates: templates,
		storage:   storage,
		catalog:   catalog,
		maxBytes:  maxBytes,
		logger:    logger,
	}
}

// UploadSectionMedia returns the updated template and the stored file's URL
func (s *MediaService) UploadSectionMedia(ctx context.Context, ownerID string, request *domain.UploadMediaRequest) (*domain.PageTemplate, string, error) {
	if err := request.Validate(); err != nil {
		return nil, "", err
	}
	if request.Size > s.maxBytes {
		return nil, "", &domain.TooLargeError{Size: request.Size, Limit: s.maxBytes}
	}

	template, err := s.templates.GetTemplate(ctx, ownerID, request.TemplateID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, "", err
		}
		s.logger.WithField("template_id", request.TemplateID).Error(fmt.Sprintf("Failed to get template: %v", err))
		return nil, "", fmt.Errorf("failed to get template: %w", err)
	}
	page, err := template.Page()
	if err != nil {
		return nil, "", err
	}
	section, err := page.Find(request.SectionID)
	if err != nil {
		return nil, "", err
	}
	if !request.Field.Accepts(section.Type) {
		return nil, "", domain.NewValidationError(fmt.Sprintf("%s sections have no %s field", section.Type, request.Field))
	}

	body, mime, err := s.sniff(request.Body)
	if err != nil {
		return nil, "", err
	}
	contentType := baseMIME(mime.String())
	if !request.Field.AllowsContentType(contentType) {
		return nil, "", domain.NewValidationError(fmt.Sprintf("%s files cannot be used for %s", contentType, request.Field))
	}

	key := fmt.Sprintf("templates/%s/%s%s", template.ID, uuid.New().String(), mime.Extension())
	url, err := s.storage.Upload(ctx, key, contentType, body)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"template_id": template.ID,
			"key":         key,
		}).Error(fmt.Sprintf("Failed to upload media: %v", err))
		return nil, "", fmt.Errorf("failed to upload media: %w", err)
	}

	patch, err := mediaPatch(section, request.Field, url)
	if err != nil {
		return nil, "", err
	}
	if _, err := page.UpdateContent(s.catalog, section.ID, patch); err != nil {
		return nil, "", err
	}
	template.Sections = page.Sections
	loadedAt := template.UpdatedAt
	template.UpdatedAt = time.Now().UTC()

	if err := s.templates.UpdateTemplate(ctx, template, loadedAt); err != nil {
		if domain.IsConflict(err) {
			return nil, "", err
		}
		s.logger.WithField("template_id", template.ID).Error(fmt.Sprintf("Failed to update template: %v", err))
		return nil, "", fmt.Errorf("failed to update template: %w", err)
	}
	return template, url, nil
}

// sniff detects the content type from the leading bytes and returns a reader
// that still yields the whole body, bounded to maxBytes
func (s *MediaService) sniff(r io.Reader) (io.Reader, *mimetype.MIME, error) {
	limited := &limitedReader{r: r, remaining: s.maxBytes + 1, limit: s.maxBytes}
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(limited, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, nil, err
	}
	head = head[:n]
	if n == 0 {
		return nil, nil, domain.NewValidationError("file is empty")
	}
	return io.MultiReader(bytes.NewReader(head), limited), mimetype.Detect(head), nil
}

// limitedReader fails with TooLargeError once more than limit bytes were read
type limitedReader struct {
	r         io.Reader
	remaining int64
	limit     int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		return 0, &domain.TooLargeError{Size: l.limit + 1, Limit: l.limit}
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining <= 0 {
		return n, &domain.TooLargeError{Size: l.limit + 1, Limit: l.limit}
	}
	return n, err
}

// mediaPatch builds the content patch storing url in field. Row images are
// appended; every other field is replaced.
func mediaPatch(section *domain.Section, field domain.MediaField, url string) (map[string]json.RawMessage, error) {
	var value interface{} = url
	if field == domain.MediaFieldImageURLs {
		var urls []string
		if img, ok := section.Block.(domain.ImageBlock); ok {
			urls = append(urls, img.ImageURLs...)
		}
		value = append(urls, url)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", field, err)
	}
	return map[string]json.RawMessage{string(field): raw}, nil
}

func baseMIME(m string) string {
	base, _, _ := strings.Cut(m, ";")
	return strings.TrimSpace(base)
}
