package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/luxor-creek/Personalized-App/internal/domain"
)

var variableColumns = []string{
	"id",
	"owner_id",
	"token",
	"name",
	"fallback_value",
	"created_at",
	"updated_at",
}

type variableRepository struct {
	db   *sql.DB
	psql sq.StatementBuilderType
}

// NewVariableRepository creates a new PostgreSQL custom variable repository
func NewVariableRepository(db *sql.DB) domain.VariableRepository {
	return &variableRepository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *variableRepository) ListVariables(ctx context.Context, ownerID string) ([]*domain.Variable, error) {
	query, args, err := r.psql.Select(variableColumns...).
		From("custom_variables").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list variables: %w", err)
	}
	defer rows.Close()

	var variables []*domain.Variable
	for rows.Next() {
		v, err := scanVariable(rows)
		if err != nil {
			return nil, err
		}
		variables = append(variables, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variable rows: %w", err)
	}
	return variables, nil
}

func (r *variableRepository) GetVariable(ctx context.Context, ownerID, id string) (*domain.Variable, error) {
	query, args, err := r.psql.Select(variableColumns...).
		From("custom_variables").
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	v, err := scanVariable(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domain.ErrVariableNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *variableRepository) CreateVariable(ctx context.Context, variable *domain.Variable) error {
	query, args, err := r.psql.Insert("custom_variables").
		Columns(variableColumns...).
		Values(
			variable.ID,
			variable.OwnerID,
			variable.Token,
			variable.Name,
			nullString(variable.Fallback),
			variable.CreatedAt,
			variable.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.NewValidationError(fmt.Sprintf("token {{%s}} is already in use", variable.Token))
		}
		return fmt.Errorf("failed to create variable: %w", err)
	}
	return nil
}

func (r *variableRepository) UpdateVariable(ctx context.Context, variable *domain.Variable) error {
	query, args, err := r.psql.Update("custom_variables").
		Set("token", variable.Token).
		Set("name", variable.Name).
		Set("fallback_value", nullString(variable.Fallback)).
		Set("updated_at", variable.UpdatedAt).
		Where(sq.Eq{"id": variable.ID, "owner_id": variable.OwnerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewValidationError(fmt.Sprintf("token {{%s}} is already in use", variable.Token))
		}
		return fmt.Errorf("failed to update variable: %w", err)
	}
	return requireAffected(result, domain.ErrVariableNotFound(variable.ID))
}

func (r *variableRepository) DeleteVariable(ctx context.Context, ownerID, id string) error {
	query, args, err := r.psql.Delete("custom_variables").
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete variable: %w", err)
	}
	return requireAffected(result, domain.ErrVariableNotFound(id))
}

func scanVariable(row scanner) (*domain.Variable, error) {
	var (
		v        domain.Variable
		fallback sql.NullString
	)
	err := row.Scan(&v.ID, &v.OwnerID, &v.Token, &v.Name, &fallback, &v.CreatedAt, &v.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan variable: %w", err)
	}
	v.Fallback = stringPtr(fallback)
	v.Origin = domain.VariableOriginCustom
	return &v, nil
}
