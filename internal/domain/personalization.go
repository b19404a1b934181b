package domain

import (
	"net/url"
	"sort"
	"strings"

	"github.com/luxor-creek/Personalized-App/pkg/personalize"
)

// PersonalizationQueryPrefix marks query parameters that carry personalization values
const PersonalizationQueryPrefix = "p_"

// PersonalizationContext maps a token identifier to the value substituted for it.
// It is built per render and never stored.
type PersonalizationContext map[string]string

// NewPersonalizationContext builds a context from explicit values, dropping empty ones
// and synthesizing full_name when both names are known.
func NewPersonalizationContext(values map[string]string) PersonalizationContext {
	pc := make(PersonalizationContext, len(values)+1)
	for k, v := range values {
		if v == "" {
			continue
		}
		pc[k] = v
	}
	pc.synthesizeFullName()
	return pc
}

// PersonalizationFromContact exposes the identity fields of a record. Email
// and custom message are intentionally not part of the context.
func PersonalizationFromContact(c *ContactRecord) PersonalizationContext {
	if c == nil {
		return PersonalizationContext{}
	}
	values := map[string]string{
		TokenFirstName: c.FirstName,
	}
	if c.LastName != nil {
		values[TokenLastName] = *c.LastName
	}
	if c.Company != nil {
		values[TokenCompany] = *c.Company
	}
	return NewPersonalizationContext(values)
}

// PersonalizationFromQuery reads p_-prefixed parameters. Only the first value of
// each parameter is used and empty values are ignored.
func PersonalizationFromQuery(q url.Values) PersonalizationContext {
	values := make(map[string]string)
	for key, vals := range q {
		if !strings.HasPrefix(key, PersonalizationQueryPrefix) || len(vals) == 0 {
			continue
		}
		token := strings.TrimPrefix(key, PersonalizationQueryPrefix)
		if token == "" {
			continue
		}
		values[token] = vals[0]
	}
	return NewPersonalizationContext(values)
}

func (pc PersonalizationContext) synthesizeFullName() {
	first, last := pc[TokenFirstName], pc[TokenLastName]
	if first != "" && last != "" && pc[TokenFullName] == "" {
		pc[TokenFullName] = first + " " + last
	}
}

// Query encodes the context as p_-prefixed parameters, the inverse of PersonalizationFromQuery
func (pc PersonalizationContext) Query() url.Values {
	q := url.Values{}
	keys := make([]string, 0, len(pc))
	for k := range pc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	derivedFullName := pc[TokenFirstName] != "" && pc[TokenLastName] != "" &&
		pc[TokenFullName] == pc[TokenFirstName]+" "+pc[TokenLastName]
	for _, k := range keys {
		if pc[k] == "" || (k == TokenFullName && derivedFullName) {
			continue
		}
		q.Set(PersonalizationQueryPrefix+k, pc[k])
	}
	return q
}

// Clone returns an independent copy
func (pc PersonalizationContext) Clone() PersonalizationContext {
	out := make(PersonalizationContext, len(pc))
	for k, v := range pc {
		out[k] = v
	}
	return out
}

// Values adapts the context for token substitution
func (pc PersonalizationContext) Values() personalize.Values {
	return personalize.Values(pc)
}

// Apply substitutes the context's values into text
func (pc PersonalizationContext) Apply(text string) string {
	return personalize.Substitute(text, pc.Values())
}
