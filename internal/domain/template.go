package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_template_service.go -package mocks github.com/luxor-creek/Personalized-App/internal/domain TemplateService
//go:generate mockgen -destination mocks/mock_template_repository.go -package mocks github.com/luxor-creek/Personalized-App/internal/domain TemplateRepository
//go:generate mockgen -destination mocks/mock_page_renderer.go -package mocks github.com/luxor-creek/Personalized-App/internal/domain PageRenderer

// PageTemplate is a landing page made of sections. Personalized variants are
// rendered from it per contact.
type PageTemplate struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Sections    []Section `json:"sections"`
	AccentColor *string   `json:"accent_color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Page returns the template's sections as a Page for editing
func (t *PageTemplate) Page() (*Page, error) {
	return NewPage(t.Sections)
}

func (t *PageTemplate) Validate() error {
	if t.ID == "" {
		return NewValidationError("id is required")
	}
	if t.OwnerID == "" {
		return NewValidationError("owner_id is required")
	}
	if strings.TrimSpace(t.Name) == "" || len(t.Name) > 255 {
		return NewValidationError("name length must be between 1 and 255")
	}
	if t.Slug == "" {
		return NewValidationError("slug is required")
	}
	if err := validateAccentColor(t.AccentColor); err != nil {
		return err
	}
	if _, err := NewPage(t.Sections); err != nil {
		return err
	}
	return nil
}

func validateAccentColor(c *string) error {
	if c == nil || *c == "" {
		return nil
	}
	if !govalidator.IsHexcolor(*c) {
		return NewValidationError("accent_color must be a hex colour")
	}
	return nil
}

var slugSeparator = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug builds a public slug from the template name and a base36 timestamp suffix
func GenerateSlug(name string, now time.Time) string {
	base := slugSeparator.ReplaceAllString(strings.ToLower(name), "-")
	base = strings.Trim(base, "-")
	suffix := strconv.FormatInt(now.UnixMilli(), 36)
	if base == "" {
		return "page-" + suffix
	}
	return base + "-" + suffix
}

type CreateTemplateRequest struct {
	Name        string    `json:"name" valid:"required"`
	AccentColor *string   `json:"accent_color,omitempty"`
	Sections    []Section `json:"sections,omitempty"`
}

func (r *CreateTemplateRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || len(r.Name) > 255 {
		return NewValidationError("name length must be between 1 and 255")
	}
	if err := validateAccentColor(r.AccentColor); err != nil {
		return err
	}
	if _, err := NewPage(r.Sections); err != nil {
		return err
	}
	return nil
}

type UpdateTemplateRequest struct {
	ID          string     `json:"id" valid:"required"`
	Name        *string    `json:"name,omitempty"`
	AccentColor *string    `json:"accent_color,omitempty"`
	Sections    *[]Section `json:"sections,omitempty"`
}

func (r *UpdateTemplateRequest) Validate() error {
	if r.ID == "" {
		return NewValidationError("id is required")
	}
	if r.Name != nil && (strings.TrimSpace(*r.Name) == "" || len(*r.Name) > 255) {
		return NewValidationError("name length must be between 1 and 255")
	}
	if err := validateAccentColor(r.AccentColor); err != nil {
		return err
	}
	if r.Sections != nil {
		if _, err := NewPage(*r.Sections); err != nil {
			return err
		}
	}
	return nil
}

type AddSectionRequest struct {
	TemplateID string      `json:"template_id" valid:"required"`
	Type       SectionType `json:"type" valid:"required"`
	// Position is the index to insert at; nil appends
	Position *int `json:"position,omitempty"`
}

func (r *AddSectionRequest) Validate() error {
	if r.TemplateID == "" {
		return NewValidationError("template_id is required")
	}
	return r.Type.Validate()
}

type UpdateSectionRequest struct {
	TemplateID string                     `json:"template_id" valid:"required"`
	SectionID  string                     `json:"section_id" valid:"required"`
	Content    map[string]json.RawMessage `json:"content,omitempty"`
	Style      map[string]json.RawMessage `json:"style,omitempty"`
}

func (r *UpdateSectionRequest) Validate() error {
	if r.TemplateID == "" || r.SectionID == "" {
		return NewValidationError("template_id and section_id are required")
	}
	if len(r.Content) == 0 && len(r.Style) == 0 {
		return NewValidationError("content or style is required")
	}
	return nil
}

type MoveSectionRequest struct {
	TemplateID string        `json:"template_id" valid:"required"`
	SectionID  string        `json:"section_id" valid:"required"`
	Direction  MoveDirection `json:"direction" valid:"required"`
}

func (r *MoveSectionRequest) Validate() error {
	if r.TemplateID == "" || r.SectionID == "" {
		return NewValidationError("template_id and section_id are required")
	}
	return r.Direction.Validate()
}

type SectionRefRequest struct {
	TemplateID string `json:"template_id" valid:"required"`
	SectionID  string `json:"section_id" valid:"required"`
}

func (r *SectionRefRequest) Validate() error {
	if r.TemplateID == "" || r.SectionID == "" {
		return NewValidationError("template_id and section_id are required")
	}
	return nil
}

type RenderTemplateRequest struct {
	ID              string            `json:"id" valid:"required"`
	Personalization map[string]string `json:"personalization,omitempty"`
}

func (r *RenderTemplateRequest) Validate() error {
	if r.ID == "" {
		return NewValidationError("id is required")
	}
	return nil
}

// PageOptions carries page level settings for HTML output
type PageOptions struct {
	Title       string
	AccentColor string
}

// PageRenderer renders sections against a personalization context
type PageRenderer interface {
	RenderHTML(sections []Section, pc PersonalizationContext, opts PageOptions) (string, error)
}

type TemplateRepository interface {
	ListTemplates(ctx context.Context, ownerID string) ([]*PageTemplate, error)
	GetTemplate(ctx context.Context, ownerID, id string) (*PageTemplate, error)
	GetTemplateBySlug(ctx context.Context, slug string) (*PageTemplate, error)
	CreateTemplate(ctx context.Context, template *PageTemplate) error
	// UpdateTemplate saves template if its stored updated_at still equals
	// loadedAt and returns a ConflictError otherwise
	UpdateTemplate(ctx context.Context, template *PageTemplate, loadedAt time.Time) error
	DeleteTemplate(ctx context.Context, ownerID, id string) error
}

type TemplateService interface {
	ListTemplates(ctx context.Context, ownerID string) ([]*PageTemplate, error)
	GetTemplate(ctx context.Context, ownerID, id string) (*PageTemplate, error)
	CreateTemplate(ctx context.Context, ownerID string, request *CreateTemplateRequest) (*PageTemplate, error)
	UpdateTemplate(ctx context.Context, ownerID string, request *UpdateTemplateRequest) (*PageTemplate, error)
	DeleteTemplate(ctx context.Context, ownerID, id string) error

	AddSection(ctx context.Context, ownerID string, request *AddSectionRequest) (*PageTemplate, error)
	UpdateSection(ctx context.Context, ownerID string, request *UpdateSectionRequest) (*PageTemplate, error)
	MoveSection(ctx context.Context, ownerID string, request *MoveSectionRequest) (*PageTemplate, error)
	DuplicateSection(ctx context.Context, ownerID string, request *SectionRefRequest) (*PageTemplate, error)
	DeleteSection(ctx context.Context, ownerID string, request *SectionRefRequest) (*PageTemplate, error)

	// RenderTemplate renders an owner's template with explicit personalization values
	RenderTemplate(ctx context.Context, ownerID string, request *RenderTemplateRequest) (string, error)
	// RenderPreview renders a template by its public slug
	RenderPreview(ctx context.Context, slug string, pc PersonalizationContext) (string, error)
	// Catalog returns the section palette
	Catalog() []SectionDefinition
}

// ErrTemplateNotFound is returned when a template does not exist for the owner
func ErrTemplateNotFound(id string) error {
	return NewNotFoundError("template", id)
}

func (t *PageTemplate) String() string {
	return fmt.Sprintf("template %s (%s)", t.ID, t.Slug)
}
