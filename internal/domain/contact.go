package domain

import (
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
)

// ContactRecord is one validated contact produced by an import
type ContactRecord struct {
	FirstName     string  `json:"first_name"`
	LastName      *string `json:"last_name"`
	Email         string  `json:"email"`
	Company       *string `json:"company"`
	CustomMessage *string `json:"custom_message"`
}

// Validate checks the record invariants: an email and a non-empty first name
func (c *ContactRecord) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return NewValidationError("email is required")
	}
	if strings.TrimSpace(c.FirstName) == "" {
		return NewValidationError("first_name is required")
	}
	return nil
}

// HasValidEmailFormat reports whether the email looks like an address.
// Imports keep malformed emails; callers may use this to flag them.
func (c *ContactRecord) HasValidEmailFormat() bool {
	return govalidator.IsEmail(c.Email)
}

// FullName joins first and last name
func (c *ContactRecord) FullName() string {
	if c.LastName == nil || *c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + *c.LastName
}

// Value returns the record's value for a target field, "" when absent
func (c *ContactRecord) Value(field ContactField) string {
	switch field {
	case ContactFieldEmail:
		return c.Email
	case ContactFieldFirstName:
		return c.FirstName
	case ContactFieldLastName:
		return derefString(c.LastName)
	case ContactFieldCompany:
		return derefString(c.Company)
	case ContactFieldCustomMessage:
		return derefString(c.CustomMessage)
	}
	return ""
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ContactField is a field of ContactRecord that a source column can be mapped to
type ContactField string

const (
	ContactFieldEmail         ContactField = "email"
	ContactFieldFirstName     ContactField = "first_name"
	ContactFieldLastName      ContactField = "last_name"
	ContactFieldCompany       ContactField = "company"
	ContactFieldCustomMessage ContactField = "custom_message"
)

// TargetField describes a mappable field
type TargetField struct {
	Field    ContactField `json:"field"`
	Label    string       `json:"label"`
	Required bool         `json:"required"`
}

var targetFields = []TargetField{
	{Field: ContactFieldEmail, Label: "Email", Required: true},
	{Field: ContactFieldFirstName, Label: "First Name"},
	{Field: ContactFieldLastName, Label: "Last Name"},
	{Field: ContactFieldCompany, Label: "Company"},
	{Field: ContactFieldCustomMessage, Label: "Custom Message"},
}

// TargetFields returns the mappable fields in display order
func TargetFields() []TargetField {
	out := make([]TargetField, len(targetFields))
	copy(out, targetFields)
	return out
}

// OptionalFields returns the mappable fields that may be empty, in display order
func OptionalFields() []ContactField {
	var out []ContactField
	for _, f := range targetFields {
		if !f.Required {
			out = append(out, f.Field)
		}
	}
	return out
}

func (f ContactField) Validate() error {
	for _, t := range targetFields {
		if t.Field == f {
			return nil
		}
	}
	return NewValidationError(fmt.Sprintf("unknown contact field: %s", f))
}

// FieldMapping maps a contact field to the source column it is read from
type FieldMapping map[ContactField]string

// Column returns the mapped column and whether the field is mapped
func (m FieldMapping) Column(field ContactField) (string, bool) {
	col, ok := m[field]
	if !ok || col == "" {
		return "", false
	}
	return col, true
}

// IsMapped reports whether field has a column
func (m FieldMapping) IsMapped(field ContactField) bool {
	_, ok := m.Column(field)
	return ok
}

// Clone returns an independent copy
func (m FieldMapping) Clone() FieldMapping {
	out := make(FieldMapping, len(m))
	for k, v := range m {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// ImportWarning reports an optional field that is empty for some, but not all, records
type ImportWarning struct {
	Field   ContactField `json:"field"`
	Missing int          `json:"missing"`
	Total   int          `json:"total"`
}

func (w ImportWarning) Message() string {
	return fmt.Sprintf("%d of %d rows are missing %s", w.Missing, w.Total, w.Field)
}
