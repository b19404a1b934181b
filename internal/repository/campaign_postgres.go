package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/luxor-creek/Personalized-App/internal/domain"
)

var campaignColumns = []string{"id", "owner_id", "template_id", "name", "created_at", "updated_at"}

var campaignContactColumns = []string{
	"id",
	"campaign_id",
	"first_name",
	"last_name",
	"email",
	"company",
	"custom_message",
	"created_at",
}

type campaignRepository struct {
	db   *sql.DB
	psql sq.StatementBuilderType
	now  func() time.Time
}

// NewCampaignRepository creates a new PostgreSQL campaign repository
func NewCampaignRepository(db *sql.DB) domain.CampaignRepository {
	return &campaignRepository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *campaignRepository) CreateCampaign(ctx context.Context, campaign *domain.Campaign) error {
	query, args, err := r.psql.Insert("campaigns").
		Columns(campaignColumns...).
		Values(campaign.ID, campaign.OwnerID, campaign.TemplateID, campaign.Name, campaign.CreatedAt, campaign.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

func (r *campaignRepository) GetCampaign(ctx context.Context, ownerID, id string) (*domain.Campaign, error) {
	return r.getCampaign(ctx, sq.Eq{"id": id, "owner_id": ownerID}, id)
}

func (r *campaignRepository) GetCampaignByID(ctx context.Context, id string) (*domain.Campaign, error) {
	return r.getCampaign(ctx, sq.Eq{"id": id}, id)
}

func (r *campaignRepository) getCampaign(ctx context.Context, where sq.Eq, id string) (*domain.Campaign, error) {
	query, args, err := r.psql.Select(campaignColumns...).
		From("campaigns").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	c, err := scanCampaign(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("campaign", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *campaignRepository) ListCampaigns(ctx context.Context, ownerID string) ([]*domain.Campaign, error) {
	query, args, err := r.psql.Select(campaignColumns...).
		From("campaigns").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []*domain.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campaign rows: %w", err)
	}
	return campaigns, nil
}

// AddContact stores one record and returns the generated contact id
func (r *campaignRepository) AddContact(ctx context.Context, campaignID string, contact *domain.ContactRecord) (string, error) {
	id := uuid.New().String()
	query, args, err := r.psql.Insert("campaign_contacts").
		Columns(campaignContactColumns...).
		Values(
			id,
			campaignID,
			contact.FirstName,
			nullString(contact.LastName),
			contact.Email,
			nullString(contact.Company),
			nullString(contact.CustomMessage),
			r.now(),
		).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("failed to add campaign contact: %w", err)
	}
	return id, nil
}

func (r *campaignRepository) GetContact(ctx context.Context, id string) (*domain.CampaignContact, error) {
	query, args, err := r.psql.Select(campaignContactColumns...).
		From("campaign_contacts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var (
		c                                domain.CampaignContact
		lastName, company, customMessage sql.NullString
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.CampaignID,
		&c.Contact.FirstName,
		&lastName,
		&c.Contact.Email,
		&company,
		&customMessage,
		&c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("campaign contact", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign contact: %w", err)
	}
	c.Contact.LastName = stringPtr(lastName)
	c.Contact.Company = stringPtr(company)
	c.Contact.CustomMessage = stringPtr(customMessage)
	return &c, nil
}

func scanCampaign(row scanner) (*domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(&c.ID, &c.OwnerID, &c.TemplateID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan campaign: %w", err)
	}
	return &c, nil
}
