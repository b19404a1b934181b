package domain

import (
	"context"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_campaign_repository.go -package mocks github.com/luxor-creek/Personalized-App/internal/domain CampaignRepository
//go:generate mockgen -destination mocks/mock_campaign_service.go -package mocks github.com/luxor-creek/Personalized-App/internal/domain CampaignService

// Campaign groups the personalized pages generated from one template
type Campaign struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	TemplateID string    `json:"template_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CampaignContact is a contact handed off to a campaign. Its ID is the
// opaque identifier personalized page links are built from.
type CampaignContact struct {
	ID         string        `json:"id"`
	CampaignID string        `json:"campaign_id"`
	Contact    ContactRecord `json:"contact"`
	CreatedAt  time.Time     `json:"created_at"`
}

// PersonalizedPage is the outcome of handing one record to a campaign.
// Error is set instead of Token/URL when that record failed.
type PersonalizedPage struct {
	Email     string `json:"email"`
	ContactID string `json:"contact_id,omitempty"`
	Token     string `json:"token,omitempty"`
	URL       string `json:"url,omitempty"`
	Error     string `json:"error,omitempty"`
}

// GeneratePagesResult summarizes a batch hand-off
type GeneratePagesResult struct {
	CampaignID string             `json:"campaign_id"`
	Pages      []PersonalizedPage `json:"pages"`
	Succeeded  int                `json:"succeeded"`
	Failed     int                `json:"failed"`
}

type CreateCampaignRequest struct {
	Name       string `json:"name" valid:"required"`
	TemplateID string `json:"template_id" valid:"required"`
}

func (r *CreateCampaignRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || len(r.Name) > 255 {
		return NewValidationError("name length must be between 1 and 255")
	}
	if r.TemplateID == "" {
		return NewValidationError("template_id is required")
	}
	return nil
}

type CampaignRepository interface {
	CreateCampaign(ctx context.Context, campaign *Campaign) error
	GetCampaign(ctx context.Context, ownerID, id string) (*Campaign, error)
	GetCampaignByID(ctx context.Context, id string) (*Campaign, error)
	ListCampaigns(ctx context.Context, ownerID string) ([]*Campaign, error)
	// AddContact stores one record for the campaign and returns its id
	AddContact(ctx context.Context, campaignID string, contact *ContactRecord) (string, error)
	GetContact(ctx context.Context, id string) (*CampaignContact, error)
}

type CampaignService interface {
	CreateCampaign(ctx context.Context, ownerID string, request *CreateCampaignRequest) (*Campaign, error)
	ListCampaigns(ctx context.Context, ownerID string) ([]*Campaign, error)
	// GeneratePages hands every record to the campaign. Per-record failures
	// are reported in the result and never abort the batch.
	GeneratePages(ctx context.Context, ownerID, campaignID string, records []ContactRecord) (*GeneratePagesResult, error)
	// RenderPersonalizedPage renders the page addressed by a signed token
	RenderPersonalizedPage(ctx context.Context, token string) (string, error)
}
