package importer

import (
	"regexp"
	"strings"

	"github.com/luxor-creek/Personalized-App/internal/domain"
)

// ColumnMatcher suggests which header each contact field is read from
type ColumnMatcher interface {
	Match(headers []string) domain.FieldMapping
}

var headerSeparators = regexp.MustCompile(`[_\s-]`)

// NormalizeHeader lowercases a header and strips underscores, whitespace and dashes
func NormalizeHeader(h string) string {
	return headerSeparators.ReplaceAllString(strings.ToLower(strings.TrimSpace(h)), "")
}

var defaultAliases = map[domain.ContactField][]string{
	domain.ContactFieldEmail:         {"email", "emailaddress"},
	domain.ContactFieldFirstName:     {"firstname", "first", "name"},
	domain.ContactFieldLastName:      {"lastname", "last", "surname"},
	domain.ContactFieldCompany:       {"company", "organization", "org"},
	domain.ContactFieldCustomMessage: {"custommessage", "message", "note"},
}

// AliasMatcher maps a field to the first header whose normalized form is one of the field's aliases
type AliasMatcher struct {
	aliases map[domain.ContactField]map[string]bool
}

// AliasOption extends an AliasMatcher
type AliasOption func(*AliasMatcher)

// WithAliases adds aliases for field. Aliases are normalized like headers.
func WithAliases(field domain.ContactField, aliases ...string) AliasOption {
	return func(m *AliasMatcher) {
		set, ok := m.aliases[field]
		if !ok {
			set = make(map[string]bool)
			m.aliases[field] = set
		}
		for _, a := range aliases {
			if n := NormalizeHeader(a); n != "" {
				set[n] = true
			}
		}
	}
}

// NewAliasMatcher returns a matcher over the built-in alias table plus any extra aliases
func NewAliasMatcher(opts ...AliasOption) *AliasMatcher {
	m := &AliasMatcher{aliases: make(map[domain.ContactField]map[string]bool, len(defaultAliases))}
	for field, aliases := range defaultAliases {
		WithAliases(field, aliases...)(m)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match implements ColumnMatcher. Header order breaks ties.
func (m *AliasMatcher) Match(headers []string) domain.FieldMapping {
	mapping := make(domain.FieldMapping)
	for _, target := range domain.TargetFields() {
		set := m.aliases[target.Field]
		for _, h := range headers {
			if set[NormalizeHeader(h)] {
				mapping[target.Field] = h
				break
			}
		}
	}
	return mapping
}
