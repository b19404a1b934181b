package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

// VariableService manages an owner's custom personalization tokens. Built-in
// tokens are served from the domain and are never stored.
type VariableService struct {
	repo   domain.VariableRepository
	logger logger.Logger
}

func NewVariableService(repo domain.VariableRepository, logger logger.Logger) *VariableService {
	return &VariableService{
		repo:   repo,
		logger: logger,
	}
}

func (s *VariableService) ListVariables(ctx context.Context, ownerID string) (*domain.VariableSet, error) {
	custom, err := s.repo.ListVariables(ctx, ownerID)
	if err != nil {
		s.logger.WithField("owner_id", ownerID).Error(fmt.Sprintf("Failed to list variables: %v", err))
		return nil, fmt.Errorf("failed to list variables: %w", err)
	}
	return domain.NewVariableSet(custom), nil
}

func (s *VariableService) CreateVariable(ctx context.Context, ownerID string, request *domain.CreateVariableRequest) (*domain.Variable, error) {
	variable, err := request.Validate(ownerID)
	if err != nil {
		return nil, err
	}

	set, err := s.ListVariables(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if set.HasToken(variable.Token) {
		return nil, tokenInUse(variable.Token)
	}

	now := time.Now().UTC()
	variable.ID = uuid.New().String()
	variable.CreatedAt = now
	variable.UpdatedAt = now

	if err := s.repo.CreateVariable(ctx, variable); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"owner_id": ownerID,
			"token":    variable.Token,
		}).Error(fmt.Sprintf("Failed to create variable: %v", err))
		return nil, fmt.Errorf("failed to create variable: %w", err)
	}
	return variable, nil
}

func (s *VariableService) UpdateVariable(ctx context.Context, ownerID string, request *domain.UpdateVariableRequest) (*domain.Variable, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	if domain.IsSystemToken(request.ID) {
		return nil, domain.ErrVariableNotFound(request.ID)
	}

	variable, err := s.repo.GetVariable(ctx, ownerID, request.ID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		s.logger.WithField("variable_id", request.ID).Error(fmt.Sprintf("Failed to get variable: %v", err))
		return nil, fmt.Errorf("failed to get variable: %w", err)
	}

	previousToken := variable.Token
	request.Apply(variable)

	if variable.Token != previousToken {
		set, err := s.ListVariables(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		if set.HasToken(variable.Token) {
			return nil, tokenInUse(variable.Token)
		}
	}

	variable.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateVariable(ctx, variable); err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		s.logger.WithField("variable_id", variable.ID).Error(fmt.Sprintf("Failed to update variable: %v", err))
		return nil, fmt.Errorf("failed to update variable: %w", err)
	}
	return variable, nil
}

// DeleteVariable removes a custom variable. Content that still references
// its token keeps the literal {{token}} text.
func (s *VariableService) DeleteVariable(ctx context.Context, ownerID, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.NewValidationError("id is required")
	}
	if domain.IsSystemToken(id) {
		return domain.ErrVariableNotFound(id)
	}

	if err := s.repo.DeleteVariable(ctx, ownerID, id); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		s.logger.WithField("variable_id", id).Error(fmt.Sprintf("Failed to delete variable: %v", err))
		return fmt.Errorf("failed to delete variable: %w", err)
	}
	return nil
}

func tokenInUse(token string) error {
	return domain.NewValidationError(fmt.Sprintf("token {{%s}} is already in use", token))
}
