package importer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/pkg/tabular"
)

func strPtr(s string) *string { return &s }

func parse(t *testing.T, text string) *tabular.Table {
	t.Helper()
	table, err := tabular.Parse(text)
	require.NoError(t, err)
	return table
}

func TestDeriveFirstName(t *testing.T) {
	tests := map[string]string{
		"bob.jones@x.com":   "Bob Jones",
		"mary_ann-lee@x.io": "Mary Ann Lee",
		"j@x.com":           "J",
		"...@x.com":         "Contact",
		"o'neil@x.com":      "O'Neil",
		"no-at-sign":        "No At Sign",
	}
	for email, want := range tests {
		assert.Equal(t, want, DeriveFirstName(email), email)
	}
}

func TestMaterialize_DropsRowsWithoutEmail(t *testing.T) {
	table := parse(t, "Email,First Name,Company\na@x.com,Ann,Acme\n,Bob,Beta")
	records := Materialize(table, NewAliasMatcher().Match(table.Headers))

	want := []domain.ContactRecord{{FirstName: "Ann", Email: "a@x.com", Company: strPtr("Acme")}}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestMaterialize_DerivesBlankFirstName(t *testing.T) {
	table := parse(t, "email,name\nbob.jones@x.com,")
	records := Materialize(table, NewAliasMatcher().Match(table.Headers))

	require.Len(t, records, 1)
	assert.Equal(t, "Bob Jones", records[0].FirstName)
	assert.Nil(t, records[0].LastName)
	assert.Nil(t, records[0].Company)
	assert.Nil(t, records[0].CustomMessage)
}

func TestMaterialize_UnmappedEmailYieldsNothing(t *testing.T) {
	table := parse(t, "Name,Company\nAnn,Acme")
	records := Materialize(table, domain.FieldMapping{domain.ContactFieldFirstName: "Name"})
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestMaterialize_ShortRowsAndQuotes(t *testing.T) {
	table := parse(t, "email,first,last,note\n\"a@x.com\",\"Smith, Ann\"\nb@x.com,Ben,Ng,\"hi, there\"")
	records := Materialize(table, NewAliasMatcher().Match(table.Headers))

	require.Len(t, records, 2)
	assert.Equal(t, "Smith, Ann", records[0].FirstName)
	assert.Nil(t, records[0].LastName)
	assert.Equal(t, "Ng", *records[1].LastName)
	assert.Equal(t, "hi, there", *records[1].CustomMessage)
}

func companyTable(total, empty int) string {
	var b strings.Builder
	b.WriteString("email,company\n")
	for i := 0; i < total; i++ {
		company := "Acme"
		if i < empty {
			company = ""
		}
		fmt.Fprintf(&b, "user%d@x.com,%s\n", i, company)
	}
	return b.String()
}

func TestWarnings(t *testing.T) {
	mapping := domain.FieldMapping{domain.ContactFieldEmail: "email", domain.ContactFieldCompany: "company"}

	table := parse(t, companyTable(10, 3))
	warnings := Warnings(Materialize(table, mapping), mapping)
	assert.Equal(t, []domain.ImportWarning{{Field: domain.ContactFieldCompany, Missing: 3, Total: 10}}, warnings)
	assert.Equal(t, "3 of 10 rows are missing company", warnings[0].Message())

	for _, empty := range []int{0, 10} {
		table := parse(t, companyTable(10, empty))
		assert.Empty(t, Warnings(Materialize(table, mapping), mapping), "empty=%d", empty)
	}
}

func TestWarnings_UnmappedFieldsAreIgnored(t *testing.T) {
	table := parse(t, companyTable(4, 2))
	mapping := domain.FieldMapping{domain.ContactFieldEmail: "email"}
	assert.Empty(t, Warnings(Materialize(table, mapping), mapping))
	assert.Empty(t, Warnings(nil, mapping))
}
