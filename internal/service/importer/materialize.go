package importer

import (
	"regexp"
	"strings"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/pkg/tabular"
)

// fallbackFirstName is used when neither a mapped first name nor the email yields one
const fallbackFirstName = "Contact"

var (
	localPartSeparators = regexp.MustCompile(`[._-]`)
	wordStart           = regexp.MustCompile(`\b\w`)
)

// DeriveFirstName builds a display name from the local part of an email:
// "bob.jones@x.com" becomes "Bob Jones"
func DeriveFirstName(email string) string {
	local := email
	if at := strings.Index(local, "@"); at >= 0 {
		local = local[:at]
	}
	local = localPartSeparators.ReplaceAllString(local, " ")
	local = wordStart.ReplaceAllStringFunc(local, strings.ToUpper)
	name := strings.Join(strings.Fields(local), " ")
	if name == "" {
		return fallbackFirstName
	}
	return name
}

// Materialize turns the table's data rows into contact records. A row whose
// mapped email is empty is dropped. Unmapped or empty optional fields are nil.
func Materialize(table *tabular.Table, mapping domain.FieldMapping) []domain.ContactRecord {
	if table == nil {
		return []domain.ContactRecord{}
	}

	index := func(field domain.ContactField) int {
		col, ok := mapping.Column(field)
		if !ok {
			return -1
		}
		return table.ColumnIndex(col)
	}
	emailIdx := index(domain.ContactFieldEmail)
	firstIdx := index(domain.ContactFieldFirstName)
	lastIdx := index(domain.ContactFieldLastName)
	companyIdx := index(domain.ContactFieldCompany)
	messageIdx := index(domain.ContactFieldCustomMessage)

	optional := func(row []string, idx int) *string {
		v := table.Cell(row, idx)
		if v == "" {
			return nil
		}
		return &v
	}

	records := make([]domain.ContactRecord, 0, len(table.Rows))
	if emailIdx < 0 {
		return records
	}
	for _, row := range table.Rows {
		email := table.Cell(row, emailIdx)
		if email == "" {
			continue
		}
		first := table.Cell(row, firstIdx)
		if first == "" {
			first = DeriveFirstName(email)
		}
		records = append(records, domain.ContactRecord{
			FirstName:     first,
			LastName:      optional(row, lastIdx),
			Email:         email,
			Company:       optional(row, companyIdx),
			CustomMessage: optional(row, messageIdx),
		})
	}
	return records
}

// Warnings reports each mapped optional field that is empty in some, but not all, records
func Warnings(records []domain.ContactRecord, mapping domain.FieldMapping) []domain.ImportWarning {
	warnings := []domain.ImportWarning{}
	total := len(records)
	if total == 0 {
		return warnings
	}
	for _, field := range domain.OptionalFields() {
		if !mapping.IsMapped(field) {
			continue
		}
		missing := 0
		for i := range records {
			if strings.TrimSpace(records[i].Value(field)) == "" {
				missing++
			}
		}
		if missing > 0 && missing < total {
			warnings = append(warnings, domain.ImportWarning{Field: field, Missing: missing, Total: total})
		}
	}
	return warnings
}
