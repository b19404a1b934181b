package domain

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_variable_repository.go -package mocks github.com/luxor-creek/Personalized-App/internal/domain VariableRepository
//go:generate mockgen -destination mocks/mock_variable_service.go -package mocks github.com/luxor-creek/Personalized-App/internal/domain VariableService

type VariableOrigin string

const (
	VariableOriginSystem VariableOrigin = "system"
	VariableOriginCustom VariableOrigin = "custom"
)

// Variable is a named personalization token that can be inserted into section content
type Variable struct {
	ID        string         `json:"id"`
	OwnerID   string         `json:"owner_id,omitempty"`
	Token     string         `json:"token"`
	Name      string         `json:"name"`
	Fallback  *string        `json:"fallback,omitempty"`
	Origin    VariableOrigin `json:"origin"`
	CreatedAt time.Time      `json:"created_at,omitempty"`
	UpdatedAt time.Time      `json:"updated_at,omitempty"`
}

// Placeholder returns the token as written inside content
func (v Variable) Placeholder() string {
	return "{{" + v.Token + "}}"
}

// IsSystem reports whether the variable is built in and read-only
func (v Variable) IsSystem() bool {
	return v.Origin == VariableOriginSystem
}

// Built-in tokens. Their values come from the contact record.
const (
	TokenFirstName = "first_name"
	TokenLastName  = "last_name"
	TokenFullName  = "full_name"
	TokenCompany   = "company"
)

var systemVariables = []Variable{
	{ID: TokenFirstName, Token: TokenFirstName, Name: "First Name", Origin: VariableOriginSystem},
	{ID: TokenLastName, Token: TokenLastName, Name: "Last Name", Origin: VariableOriginSystem},
	{ID: TokenFullName, Token: TokenFullName, Name: "Full Name", Origin: VariableOriginSystem},
	{ID: TokenCompany, Token: TokenCompany, Name: "Company", Origin: VariableOriginSystem},
}

// SystemVariables returns a copy of the built-in variables
func SystemVariables() []Variable {
	out := make([]Variable, len(systemVariables))
	copy(out, systemVariables)
	return out
}

// IsSystemToken reports whether token is reserved by a built-in variable
func IsSystemToken(token string) bool {
	for _, v := range systemVariables {
		if v.Token == token {
			return true
		}
	}
	return false
}

var tokenIllegalChars = regexp.MustCompile(`[^a-z0-9_]`)

// NormalizeToken turns user input into a token identifier: surrounding
// whitespace and {{ }} are removed, the rest is lowercased and every
// character outside [a-z0-9_] becomes an underscore.
func NormalizeToken(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "{{")
	raw = strings.TrimSuffix(raw, "}}")
	raw = strings.ToLower(strings.TrimSpace(raw))
	return tokenIllegalChars.ReplaceAllString(raw, "_")
}

const maxVariableNameLength = 100

type CreateVariableRequest struct {
	Name     string  `json:"name" valid:"required"`
	Token    string  `json:"token" valid:"required"`
	Fallback *string `json:"fallback,omitempty"`
}

// Validate normalizes the request and returns the variable to store
func (r *CreateVariableRequest) Validate(ownerID string) (*Variable, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return nil, NewValidationError("name is required")
	}
	if len(name) > maxVariableNameLength {
		return nil, NewValidationError(fmt.Sprintf("name length must be between 1 and %d", maxVariableNameLength))
	}
	token := NormalizeToken(r.Token)
	if token == "" {
		return nil, NewValidationError("token is required")
	}
	if !govalidator.Matches(token, `^[a-z0-9_]+$`) {
		return nil, NewValidationError("token must only contain lowercase letters, digits and underscores")
	}

	return &Variable{
		OwnerID:  ownerID,
		Token:    token,
		Name:     name,
		Fallback: normalizeFallback(r.Fallback),
		Origin:   VariableOriginCustom,
	}, nil
}

type UpdateVariableRequest struct {
	ID       string  `json:"id" valid:"required"`
	Name     *string `json:"name,omitempty"`
	Token    *string `json:"token,omitempty"`
	Fallback *string `json:"fallback,omitempty"`
	// ClearFallback removes the fallback; Fallback is ignored when set
	ClearFallback bool `json:"clear_fallback,omitempty"`
}

func (r *UpdateVariableRequest) Validate() error {
	if r.ID == "" {
		return NewValidationError("id is required")
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" || len(name) > maxVariableNameLength {
			return NewValidationError(fmt.Sprintf("name length must be between 1 and %d", maxVariableNameLength))
		}
	}
	if r.Token != nil && NormalizeToken(*r.Token) == "" {
		return NewValidationError("token is required")
	}
	return nil
}

// Apply writes the requested changes onto v
func (r *UpdateVariableRequest) Apply(v *Variable) {
	if r.Name != nil {
		v.Name = strings.TrimSpace(*r.Name)
	}
	if r.Token != nil {
		v.Token = NormalizeToken(*r.Token)
	}
	if r.ClearFallback {
		v.Fallback = nil
	} else if r.Fallback != nil {
		v.Fallback = normalizeFallback(r.Fallback)
	}
}

type DeleteVariableRequest struct {
	ID string `json:"id" valid:"required"`
}

func normalizeFallback(f *string) *string {
	if f == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*f)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// VariableSet is an immutable snapshot of the variables visible to one owner:
// the built-in ones followed by the owner's custom ones.
type VariableSet struct {
	variables []Variable
	byToken   map[string]Variable
}

// NewVariableSet builds a snapshot from the owner's custom variables
func NewVariableSet(custom []*Variable) *VariableSet {
	s := &VariableSet{
		variables: SystemVariables(),
		byToken:   make(map[string]Variable, len(systemVariables)+len(custom)),
	}
	for _, v := range s.variables {
		s.byToken[v.Token] = v
	}

	sorted := make([]Variable, 0, len(custom))
	for _, v := range custom {
		if v == nil {
			continue
		}
		if _, taken := s.byToken[v.Token]; taken {
			continue
		}
		sorted = append(sorted, *v)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	for _, v := range sorted {
		s.byToken[v.Token] = v
	}
	s.variables = append(s.variables, sorted...)
	return s
}

// All returns the variables, built-in first
func (s *VariableSet) All() []Variable {
	out := make([]Variable, len(s.variables))
	copy(out, s.variables)
	return out
}

// Custom returns only the owner's variables
func (s *VariableSet) Custom() []Variable {
	var out []Variable
	for _, v := range s.variables {
		if !v.IsSystem() {
			out = append(out, v)
		}
	}
	return out
}

// Lookup resolves a token
func (s *VariableSet) Lookup(token string) (Variable, bool) {
	v, ok := s.byToken[token]
	return v, ok
}

// DisplayName returns the variable name for token, or the placeholder when unknown
func (s *VariableSet) DisplayName(token string) string {
	if v, ok := s.byToken[token]; ok {
		return v.Name
	}
	return "{{" + token + "}}"
}

// HasToken reports whether token is already taken by any variable in the set
func (s *VariableSet) HasToken(token string) bool {
	_, ok := s.byToken[token]
	return ok
}

// ApplyFallbacks returns a copy of pc where every custom variable with a
// fallback fills a missing or empty value.
func (s *VariableSet) ApplyFallbacks(pc PersonalizationContext) PersonalizationContext {
	out := pc.Clone()
	for _, v := range s.variables {
		if v.Fallback == nil || *v.Fallback == "" {
			continue
		}
		if out[v.Token] == "" {
			out[v.Token] = *v.Fallback
		}
	}
	return out
}

type VariableRepository interface {
	ListVariables(ctx context.Context, ownerID string) ([]*Variable, error)
	GetVariable(ctx context.Context, ownerID, id string) (*Variable, error)
	CreateVariable(ctx context.Context, variable *Variable) error
	UpdateVariable(ctx context.Context, variable *Variable) error
	DeleteVariable(ctx context.Context, ownerID, id string) error
}

type VariableService interface {
	// ListVariables returns the built-in and custom variables for the owner
	ListVariables(ctx context.Context, ownerID string) (*VariableSet, error)
	CreateVariable(ctx context.Context, ownerID string, request *CreateVariableRequest) (*Variable, error)
	UpdateVariable(ctx context.Context, ownerID string, request *UpdateVariableRequest) (*Variable, error)
	DeleteVariable(ctx context.Context, ownerID, id string) error
}

// ErrVariableNotFound is returned when a custom variable does not exist for the owner
func ErrVariableNotFound(id string) error {
	return NewNotFoundError("variable", id)
}
