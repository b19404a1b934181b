package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
	"github.com/luxor-creek/Personalized-App/pkg/tracing"
)

const defaultGenerateConcurrency = 8

// CampaignServiceConfig holds the settings for personalized page links
type CampaignServiceConfig struct {
	// PublicURL is the base the /view/{token} links are built on
	PublicURL string
	// Concurrency bounds how many records are stored at once
	Concurrency int
}

// CampaignService hands imported contacts to campaigns and serves their pages
type CampaignService struct {
	repo      domain.CampaignRepository
	templates domain.TemplateRepository
	composer  *pageComposer
	signer    *PageTokenSigner
	cfg       CampaignServiceConfig
	logger    logger.Logger
}

func NewCampaignService(
	repo domain.CampaignRepository,
	templates domain.TemplateRepository,
	variables domain.VariableService,
	renderer domain.PageRenderer,
	signer *PageTokenSigner,
	cfg CampaignServiceConfig,
	logger logger.Logger,
) *CampaignService {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultGenerateConcurrency
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")
	return &CampaignService{
		repo:      repo,
		templates: templates,
		composer:  newPageComposer(variables, renderer, logger),
		signer:    signer,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *CampaignService) CreateCampaign(ctx context.Context, ownerID string, request *domain.CreateCampaignRequest) (*domain.Campaign, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.templates.GetTemplate(ctx, ownerID, request.TemplateID); err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		s.logger.WithField("template_id", request.TemplateID).Error(fmt.Sprintf("Failed to get template: %v", err))
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	now := time.Now().UTC()
	campaign := &domain.Campaign{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		TemplateID: request.TemplateID,
		Name:       strings.TrimSpace(request.Name),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.CreateCampaign(ctx, campaign); err != nil {
		s.logger.WithField("owner_id", ownerID).Error(fmt.Sprintf("Failed to create campaign: %v", err))
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return campaign, nil
}

func (s *CampaignService) ListCampaigns(ctx context.Context, ownerID string) ([]*domain.Campaign, error) {
	campaigns, err := s.repo.ListCampaigns(ctx, ownerID)
	if err != nil {
		s.logger.WithField("owner_id", ownerID).Error(fmt.Sprintf("Failed to list campaigns: %v", err))
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// GeneratePages stores every record under the campaign and signs a page link
// for each. A record that fails is reported in its slot; the rest carry on.
func (s *CampaignService) GeneratePages(ctx context.Context, ownerID, campaignID string, records []domain.ContactRecord) (result *domain.GeneratePagesResult, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "CampaignService", "GeneratePages")
	defer func() { tracing.EndSpan(span, err) }()

	if campaignID == "" {
		return nil, domain.NewValidationError("campaign_id is required")
	}
	if len(records) == 0 {
		return nil, domain.NewValidationError("no records to hand off")
	}
	campaign, err := s.repo.GetCampaign(ctx, ownerID, campaignID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		s.logger.WithField("campaign_id", campaignID).Error(fmt.Sprintf("Failed to get campaign: %v", err))
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	pages := make([]domain.PersonalizedPage, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i := range records {
		g.Go(func() error {
			pages[i] = s.generatePage(gctx, campaign.ID, &records[i])
			return nil
		})
	}
	_ = g.Wait()

	result = &domain.GeneratePagesResult{CampaignID: campaign.ID, Pages: pages}
	for _, p := range pages {
		if p.Error != "" {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}
	tracing.RecordHandOff(ctx, result.Succeeded, result.Failed)
	s.logger.WithFields(map[string]interface{}{
		"campaign_id": campaign.ID,
		"succeeded":   result.Succeeded,
		"failed":      result.Failed,
	}).Info("Generated personalized pages")
	return result, nil
}

func (s *CampaignService) generatePage(ctx context.Context, campaignID string, record *domain.ContactRecord) domain.PersonalizedPage {
	page := domain.PersonalizedPage{Email: record.Email}
	if err := ctx.Err(); err != nil {
		page.Error = err.Error()
		return page
	}
	if err := record.Validate(); err != nil {
		page.Error = err.Error()
		return page
	}

	contactID, err := s.repo.AddContact(ctx, campaignID, record)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"campaign_id": campaignID,
			"email":       record.Email,
		}).Error(fmt.Sprintf("Failed to add campaign contact: %v", err))
		page.Error = "failed to store contact"
		return page
	}
	page.ContactID = contactID

	token, err := s.signer.Sign(campaignID, contactID)
	if err != nil {
		page.Error = err.Error()
		return page
	}
	page.Token = token
	page.URL = s.cfg.PublicURL + "/view/" + token
	return page
}

// RenderPersonalizedPage renders the page a signed link points at. Invalid
// tokens and missing records are both reported as not found.
func (s *CampaignService) RenderPersonalizedPage(ctx context.Context, token string) (html string, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "CampaignService", "RenderPersonalizedPage")
	defer func() { tracing.EndSpan(span, err) }()

	claims, err := s.signer.Verify(token)
	if err != nil {
		s.logger.WithField("error", err.Error()).Warn("Rejected personalized page token")
		return "", domain.NewNotFoundError("page", "token")
	}

	contact, err := s.repo.GetContact(ctx, claims.Subject)
	if err != nil {
		return "", s.lookupFailed("campaign contact", claims.Subject, err)
	}
	if contact.CampaignID != claims.CampaignID {
		return "", domain.NewNotFoundError("page", "token")
	}
	campaign, err := s.repo.GetCampaignByID(ctx, contact.CampaignID)
	if err != nil {
		return "", s.lookupFailed("campaign", contact.CampaignID, err)
	}
	template, err := s.templates.GetTemplate(ctx, campaign.OwnerID, campaign.TemplateID)
	if err != nil {
		return "", s.lookupFailed("template", campaign.TemplateID, err)
	}

	html, err = s.composer.compose(ctx, template, domain.PersonalizationFromContact(&contact.Contact))
	if err != nil {
		return "", err
	}
	tracing.RecordPageRender(ctx, tracing.SurfaceView)
	return html, nil
}

func (s *CampaignService) lookupFailed(entity, id string, err error) error {
	if domain.IsNotFound(err) {
		return err
	}
	s.logger.WithField("id", id).Error(fmt.Sprintf("Failed to get %s: %v", entity, err))
	return fmt.Errorf("failed to get %s: %w", entity, err)
}
