package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/internal/repository/testutil"
)

func TestVariableRepository_ListVariables(t *testing.T) {
	db, mock := testutil.NewMockDB(t)

	repo := NewVariableRepository(db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	rows := sqlmock.NewRows(variableColumns).
		AddRow("v1", "owner1", "industry", "Industry", "your industry", now, now).
		AddRow("v2", "owner1", "city", "City", nil, now, now)
	mock.ExpectQuery(`SELECT (.+) FROM custom_variables WHERE owner_id = \$1 ORDER BY created_at ASC`).
		WithArgs("owner1").
		WillReturnRows(rows)

	variables, err := repo.ListVariables(context.Background(), "owner1")
	require.NoError(t, err)
	require.Len(t, variables, 2)
	assert.Equal(t, domain.VariableOriginCustom, variables[0].Origin)
	require.NotNil(t, variables[0].Fallback)
	assert.Equal(t, "your industry", *variables[0].Fallback)
	assert.Nil(t, variables[1].Fallback)

	mock.ExpectQuery(`SELECT (.+) FROM custom_variables`).
		WithArgs("owner1").
		WillReturnError(errors.New("database error"))
	_, err = repo.ListVariables(context.Background(), "owner1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list variables")
}

func TestVariableRepository_GetVariable(t *testing.T) {
	db, mock := testutil.NewMockDB(t)

	repo := NewVariableRepository(db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery(`SELECT (.+) FROM custom_variables WHERE id = \$1 AND owner_id = \$2`).
		WithArgs("v1", "owner1").
		WillReturnRows(sqlmock.NewRows(variableColumns).
			AddRow("v1", "owner1", "industry", "Industry", nil, now, now))

	v, err := repo.GetVariable(context.Background(), "owner1", "v1")
	require.NoError(t, err)
	assert.Equal(t, "{{industry}}", v.Placeholder())

	mock.ExpectQuery(`SELECT (.+) FROM custom_variables`).
		WithArgs("nope", "owner1").
		WillReturnRows(sqlmock.NewRows(variableColumns))

	_, err = repo.GetVariable(context.Background(), "owner1", "nope")
	assert.True(t, domain.IsNotFound(err))
}

func TestVariableRepository_CreateVariable(t *testing.T) {
	db, mock := testutil.NewMockDB(t)

	repo := NewVariableRepository(db)
	now := time.Now().UTC().Truncate(time.Microsecond)
	fallback := "your industry"
	v := &domain.Variable{
		ID:        "v1",
		OwnerID:   "owner1",
		Token:     "industry",
		Name:      "Industry",
		Fallback:  &fallback,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec(`INSERT INTO custom_variables`).
		WithArgs("v1", "owner1", "industry", "Industry", "your industry", now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.CreateVariable(context.Background(), v))

	mock.ExpectExec(`INSERT INTO custom_variables`).
		WillReturnError(&pq.Error{Code: uniqueViolation})
	err := repo.CreateVariable(context.Background(), v)
	require.True(t, domain.IsValidationError(err))
	assert.Contains(t, err.Error(), "{{industry}}")
}

func TestVariableRepository_UpdateVariable(t *testing.T) {
	db, mock := testutil.NewMockDB(t)

	repo := NewVariableRepository(db)
	now := time.Now().UTC().Truncate(time.Microsecond)
	v := &domain.Variable{ID: "v1", OwnerID: "owner1", Token: "sector", Name: "Sector", UpdatedAt: now}

	mock.ExpectExec(`UPDATE custom_variables SET token = \$1, name = \$2, fallback_value = \$3, updated_at = \$4 WHERE id = \$5 AND owner_id = \$6`).
		WithArgs("sector", "Sector", nil, now, "v1", "owner1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateVariable(context.Background(), v))

	mock.ExpectExec(`UPDATE custom_variables`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.True(t, domain.IsNotFound(repo.UpdateVariable(context.Background(), v)))

	mock.ExpectExec(`UPDATE custom_variables`).
		WillReturnError(&pq.Error{Code: uniqueViolation})
	assert.True(t, domain.IsValidationError(repo.UpdateVariable(context.Background(), v)))
}

func TestVariableRepository_DeleteVariable(t *testing.T) {
	db, mock := testutil.NewMockDB(t)

	repo := NewVariableRepository(db)

	mock.ExpectExec(`DELETE FROM custom_variables WHERE id = \$1 AND owner_id = \$2`).
		WithArgs("v1", "owner1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeleteVariable(context.Background(), "owner1", "v1"))

	mock.ExpectExec(`DELETE FROM custom_variables`).
		WithArgs("v1", "owner1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.True(t, domain.IsNotFound(repo.DeleteVariable(context.Background(), "owner1", "v1")))
}
