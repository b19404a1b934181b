package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
	"github.com/luxor-creek/Personalized-App/pkg/tracing"
)

// TemplateService edits page templates and renders them
type TemplateService struct {
	repo     domain.TemplateRepository
	catalog  *domain.SectionCatalog
	composer *pageComposer
	logger   logger.Logger
	now      func() time.Time
}

func NewTemplateService(
	repo domain.TemplateRepository,
	variables domain.VariableService,
	catalog *domain.SectionCatalog,
	renderer domain.PageRenderer,
	logger logger.Logger,
) *TemplateService {
	return &TemplateService{
		repo:     repo,
		catalog:  catalog,
		composer: newPageComposer(variables, renderer, logger),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *TemplateService) Catalog() []domain.SectionDefinition {
	return s.catalog.Definitions()
}

func (s *TemplateService) ListTemplates(ctx context.Context, ownerID string) ([]*domain.PageTemplate, error) {
	templates, err := s.repo.ListTemplates(ctx, ownerID)
	if err != nil {
		s.logger.WithField("owner_id", ownerID).Error(fmt.Sprintf("Failed to list templates: %v", err))
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

func (s *TemplateService) GetTemplate(ctx context.Context, ownerID, id string) (*domain.PageTemplate, error) {
	if id == "" {
		return nil, domain.NewValidationError("id is required")
	}
	template, err := s.repo.GetTemplate(ctx, ownerID, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		s.logger.WithField("template_id", id).Error(fmt.Sprintf("Failed to get template: %v", err))
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return template, nil
}

func (s *TemplateService) CreateTemplate(ctx context.Context, ownerID string, request *domain.CreateTemplateRequest) (*domain.PageTemplate, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	template := &domain.PageTemplate{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Name:        request.Name,
		Slug:        domain.GenerateSlug(request.Name, now),
		Sections:    request.Sections,
		AccentColor: nonEmpty(request.AccentColor),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if template.Sections == nil {
		template.Sections = []domain.Section{}
	}
	if err := template.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateTemplate(ctx, template); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"owner_id": ownerID,
			"slug":     template.Slug,
		}).Error(fmt.Sprintf("Failed to create template: %v", err))
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return template, nil
}

func (s *TemplateService) UpdateTemplate(ctx context.Context, ownerID string, request *domain.UpdateTemplateRequest) (*domain.PageTemplate, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	template, err := s.GetTemplate(ctx, ownerID, request.ID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		template.Name = *request.Name
	}
	if request.AccentColor != nil {
		template.AccentColor = nonEmpty(request.AccentColor)
	}
	if request.Sections != nil {
		template.Sections = *request.Sections
	}
	return s.save(ctx, template)
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, ownerID, id string) error {
	if id == "" {
		return domain.NewValidationError("id is required")
	}
	if err := s.repo.DeleteTemplate(ctx, ownerID, id); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		s.logger.WithField("template_id", id).Error(fmt.Sprintf("Failed to delete template: %v", err))
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// AddSection inserts a section seeded with its variant defaults
func (s *TemplateService) AddSection(ctx context.Context, ownerID string, request *domain.AddSectionRequest) (*domain.PageTemplate, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	return s.editPage(ctx, ownerID, request.TemplateID, func(page *domain.Page) error {
		section, err := s.catalog.NewSection(request.Type)
		if err != nil {
			return err
		}
		if request.Position != nil {
			return page.Insert(section, *request.Position)
		}
		return page.Append(section)
	})
}

// UpdateSection applies field-level content and style patches
func (s *TemplateService) UpdateSection(ctx context.Context, ownerID string, request *domain.UpdateSectionRequest) (*domain.PageTemplate, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	return s.editPage(ctx, ownerID, request.TemplateID, func(page *domain.Page) error {
		if len(request.Content) > 0 {
			if _, err := page.UpdateContent(s.catalog, request.SectionID, request.Content); err != nil {
				return err
			}
		}
		if len(request.Style) > 0 {
			if _, err := page.UpdateStyle(s.catalog, request.SectionID, request.Style); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *TemplateService) MoveSection(ctx context.Context, ownerID string, request *domain.MoveSectionRequest) (*domain.PageTemplate, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	return s.editPage(ctx, ownerID, request.TemplateID, func(page *domain.Page) error {
		return page.Move(request.SectionID, request.Direction)
	})
}

func (s *TemplateService) DuplicateSection(ctx context.Context, ownerID string, request *domain.SectionRefRequest) (*domain.PageTemplate, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	return s.editPage(ctx, ownerID, request.TemplateID, func(page *domain.Page) error {
		_, err := page.Duplicate(request.SectionID, domain.NewSectionID())
		return err
	})
}

func (s *TemplateService) DeleteSection(ctx context.Context, ownerID string, request *domain.SectionRefRequest) (*domain.PageTemplate, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	return s.editPage(ctx, ownerID, request.TemplateID, func(page *domain.Page) error {
		return page.Remove(request.SectionID)
	})
}

// editAttempts bounds how often a section edit is replayed after losing a
// race with another write to the same template
const editAttempts = 3

// editPage loads a template, applies edit to its page and saves the result.
// A conflicting save reloads the template and applies edit again.
func (s *TemplateService) editPage(ctx context.Context, ownerID, templateID string, edit func(page *domain.Page) error) (*domain.PageTemplate, error) {
	var (
		template *domain.PageTemplate
		err      error
	)
	for attempt := 1; attempt <= editAttempts; attempt++ {
		template, err = s.editOnce(ctx, ownerID, templateID, edit)
		if !domain.IsConflict(err) {
			return template, err
		}
		s.logger.WithFields(map[string]interface{}{
			"template_id": templateID,
			"attempt":     attempt,
		}).Debug("Template changed during edit, retrying")
	}
	return nil, err
}

func (s *TemplateService) editOnce(ctx context.Context, ownerID, templateID string, edit func(page *domain.Page) error) (*domain.PageTemplate, error) {
	template, err := s.GetTemplate(ctx, ownerID, templateID)
	if err != nil {
		return nil, err
	}
	page, err := template.Page()
	if err != nil {
		return nil, err
	}
	if err := edit(page); err != nil {
		return nil, err
	}
	template.Sections = page.Sections
	return s.save(ctx, template)
}

func (s *TemplateService) save(ctx context.Context, template *domain.PageTemplate) (*domain.PageTemplate, error) {
	loadedAt := template.UpdatedAt
	template.UpdatedAt = s.now()
	if !template.UpdatedAt.After(loadedAt) {
		template.UpdatedAt = loadedAt.Add(time.Microsecond)
	}
	if err := template.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateTemplate(ctx, template, loadedAt); err != nil {
		if domain.IsNotFound(err) || domain.IsConflict(err) {
			return nil, err
		}
		s.logger.WithField("template_id", template.ID).Error(fmt.Sprintf("Failed to update template: %v", err))
		return nil, fmt.Errorf("failed to update template: %w", err)
	}
	return template, nil
}

// RenderTemplate renders an owner's template with explicit personalization values
func (s *TemplateService) RenderTemplate(ctx context.Context, ownerID string, request *domain.RenderTemplateRequest) (html string, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "TemplateService", "RenderTemplate")
	defer func() { tracing.EndSpan(span, err) }()

	if err = request.Validate(); err != nil {
		return "", err
	}
	template, err := s.GetTemplate(ctx, ownerID, request.ID)
	if err != nil {
		return "", err
	}
	return s.composer.compose(ctx, template, domain.NewPersonalizationContext(request.Personalization))
}

// RenderPreview renders the template published under slug. It has no side effects.
func (s *TemplateService) RenderPreview(ctx context.Context, slug string, pc domain.PersonalizationContext) (html string, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "TemplateService", "RenderPreview")
	defer func() { tracing.EndSpan(span, err) }()

	if slug == "" {
		return "", domain.NewValidationError("slug is required")
	}
	template, err := s.repo.GetTemplateBySlug(ctx, slug)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", err
		}
		s.logger.WithField("slug", slug).Error(fmt.Sprintf("Failed to get template by slug: %v", err))
		return "", fmt.Errorf("failed to get template: %w", err)
	}
	if html, err = s.composer.compose(ctx, template, pc); err != nil {
		return "", err
	}
	tracing.RecordPageRender(ctx, tracing.SurfacePreview)
	return html, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
