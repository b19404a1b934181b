package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/luxor-creek/Personalized-App/internal/domain"
)

var templateColumns = []string{
	"id",
	"owner_id",
	"name",
	"slug",
	"sections",
	"accent_color",
	"created_at",
	"updated_at",
}

type templateRepository struct {
	db   *sql.DB
	psql sq.StatementBuilderType
}

// NewTemplateRepository creates a new PostgreSQL page template repository
func NewTemplateRepository(db *sql.DB) domain.TemplateRepository {
	return &templateRepository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *templateRepository) ListTemplates(ctx context.Context, ownerID string) ([]*domain.PageTemplate, error) {
	query, args, err := r.psql.Select(templateColumns...).
		From("page_templates").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("updated_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	templates := []*domain.PageTemplate{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template rows: %w", err)
	}
	return templates, nil
}

func (r *templateRepository) GetTemplate(ctx context.Context, ownerID, id string) (*domain.PageTemplate, error) {
	return r.getOne(ctx, sq.Eq{"owner_id": ownerID, "id": id}, id)
}

func (r *templateRepository) GetTemplateBySlug(ctx context.Context, slug string) (*domain.PageTemplate, error) {
	return r.getOne(ctx, sq.Eq{"slug": slug}, slug)
}

func (r *templateRepository) getOne(ctx context.Context, where sq.Eq, key string) (*domain.PageTemplate, error) {
	query, args, err := r.psql.Select(templateColumns...).
		From("page_templates").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	t, err := scanTemplate(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domain.ErrTemplateNotFound(key)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *templateRepository) CreateTemplate(ctx context.Context, template *domain.PageTemplate) error {
	sections, err := json.Marshal(template.Sections)
	if err != nil {
		return fmt.Errorf("failed to encode sections: %w", err)
	}

	query, args, err := r.psql.Insert("page_templates").
		Columns(templateColumns...).
		Values(
			template.ID,
			template.OwnerID,
			template.Name,
			template.Slug,
			sections,
			nullString(template.AccentColor),
			template.CreatedAt,
			template.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.NewValidationError(fmt.Sprintf("slug %s is already in use", template.Slug))
		}
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

func (r *templateRepository) UpdateTemplate(ctx context.Context, template *domain.PageTemplate, loadedAt time.Time) error {
	sections, err := json.Marshal(template.Sections)
	if err != nil {
		return fmt.Errorf("failed to encode sections: %w", err)
	}

	query, args, err := r.psql.Update("page_templates").
		Set("name", template.Name).
		Set("sections", sections).
		Set("accent_color", nullString(template.AccentColor)).
		Set("updated_at", template.UpdatedAt).
		Where(sq.Eq{"id": template.ID, "owner_id": template.OwnerID, "updated_at": loadedAt}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n > 0 {
		return nil
	}
	return r.missedUpdate(ctx, template)
}

// missedUpdate tells a template that is gone from one that changed underneath the caller
func (r *templateRepository) missedUpdate(ctx context.Context, template *domain.PageTemplate) error {
	query, args, err := r.psql.Select("1").
		From("page_templates").
		Where(sq.Eq{"id": template.ID, "owner_id": template.OwnerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return domain.ErrTemplateNotFound(template.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to check template: %w", err)
	}
	return &domain.ConflictError{Entity: "template", ID: template.ID}
}

func (r *templateRepository) DeleteTemplate(ctx context.Context, ownerID, id string) error {
	query, args, err := r.psql.Delete("page_templates").
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return requireAffected(result, domain.ErrTemplateNotFound(id))
}

func scanTemplate(row scanner) (*domain.PageTemplate, error) {
	var (
		t        domain.PageTemplate
		sections []byte
		accent   sql.NullString
	)
	err := row.Scan(
		&t.ID,
		&t.OwnerID,
		&t.Name,
		&t.Slug,
		&sections,
		&accent,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan template: %w", err)
	}

	t.Sections, err = domain.DecodeSections(sections)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sections of template %s: %w", t.ID, err)
	}
	if accent.String != "" {
		t.AccentColor = &accent.String
	}
	return &t, nil
}
