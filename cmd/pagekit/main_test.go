package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxor-creek/Personalized-App/internal/domain"
)

const templateJSON = `{
  "name": "Spring outreach",
  "accent_color": "#ff5500",
  "sections": [
    {"id": "s1", "type": "headline", "content": {"text": "Hello {{first_name}} at {{company}}"}, "style": {}}
  ]
}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"first_name=Ann", " company =Acme=Co", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"first_name": "Ann", "company": "Acme=Co", "empty": ""}, got)

	_, err = parseAssignments([]string{"novalue"})
	assert.Error(t, err)
	_, err = parseAssignments([]string{"=x"})
	assert.Error(t, err)
}

func TestCatalogCmd(t *testing.T) {
	out, err := execute(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "TYPE")
	assert.Contains(t, out, "headline")
	assert.Contains(t, out, "Headline")
}

func TestCatalogCmd_JSON(t *testing.T) {
	out, err := execute(t, "catalog", "--json")
	require.NoError(t, err)

	var defs []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &defs))
	require.NotEmpty(t, defs)
	assert.Equal(t, "headline", defs[0]["type"])
}

func TestRenderCmd_Personalizes(t *testing.T) {
	path := writeTemp(t, "page.json", templateJSON)

	out, err := execute(t, "render", path, "--set", "first_name=Ann", "--set", "company=Acme")
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "Spring outreach", doc.Find("title").Text())
	assert.Contains(t, doc.Find("body").Text(), "Hello Ann at Acme")
	assert.NotContains(t, out, "{{first_name}}")
}

func TestRenderCmd_MissingValuesStayLiteral(t *testing.T) {
	path := writeTemp(t, "page.json", templateJSON)

	out, err := execute(t, "render", path, "--set", "first_name=Ann")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello Ann at {{company}}")
}

func TestRenderCmd_BareSectionsAndOutFile(t *testing.T) {
	path := writeTemp(t, "sections.json",
		`[{"id":"s1","type":"headline","content":{"text":"Hi {{first_name}}"},"style":{}}]`)
	outPath := filepath.Join(t.TempDir(), "page.html")

	out, err := execute(t, "render", path, "--set", "first_name=Cy", "--title", "Custom", "-o", outPath)
	require.NoError(t, err)
	assert.Empty(t, out)

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(written), "Hi Cy")
	assert.Contains(t, string(written), "<title>Custom</title>")
}

func TestRenderCmd_InvalidJSON(t *testing.T) {
	path := writeTemp(t, "broken.json", "{not json")

	_, err := execute(t, "render", path)
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestRenderCmd_RequiresFile(t *testing.T) {
	_, err := execute(t, "render")
	assert.Error(t, err)
}

const contactsCSV = "Email,First Name,Company,Work Email\n" +
	"ann@x.com,Ann,Acme,ann@acme.com\n" +
	"cy@x.com,Cy,,cy@beta.com\n"

func TestInspectCmd_AutoMapping(t *testing.T) {
	path := writeTemp(t, "contacts.csv", contactsCSV)

	out, err := execute(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Step:    column_mapping")
	assert.Contains(t, out, "Records: 2")
	assert.Contains(t, out, "warning: 1 of 2 rows are missing company")
}

func TestInspectCmd_OverrideAndPreviewJSON(t *testing.T) {
	path := writeTemp(t, "contacts.csv", contactsCSV)

	out, err := execute(t, "inspect", path, "--map", "email=Work Email", "--preview", "--json")
	require.NoError(t, err)

	var snap domain.ImportSnapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, domain.ImportStepPreview, snap.Step)
	assert.Equal(t, "Work Email", snap.Mapping[domain.ContactFieldEmail])
	require.NotNil(t, snap.Preview)
	require.Len(t, snap.Preview.Records, 2)
	assert.Equal(t, "ann@acme.com", snap.Preview.Selected.Email)
}

func TestInspectCmd_UnknownColumn(t *testing.T) {
	path := writeTemp(t, "contacts.csv", contactsCSV)

	_, err := execute(t, "inspect", path, "--map", "email=Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown column: Nope")
}

func TestInspectCmd_TooLarge(t *testing.T) {
	path := writeTemp(t, "contacts.csv", contactsCSV)

	_, err := execute(t, "inspect", path, "--max-size", "10")
	require.Error(t, err)
	var tooLarge *domain.TooLargeError
	assert.ErrorAs(t, err, &tooLarge)
}

func TestRenderCmd_OnePagePerContact(t *testing.T) {
	page := writeTemp(t, "page.json", templateJSON)
	contacts := writeTemp(t, "contacts.csv", contactsCSV)
	outDir := filepath.Join(t.TempDir(), "pages")

	out, err := execute(t, "render", page, "--contacts", contacts, "--set", "company=Friends", "-o", outDir)
	require.NoError(t, err)
	assert.Equal(t, "001-ann-x-com.html\n002-cy-x-com.html\n", out)

	first, err := os.ReadFile(filepath.Join(outDir, "001-ann-x-com.html"))
	require.NoError(t, err)
	assert.Contains(t, string(first), "Hello Ann at Acme")

	second, err := os.ReadFile(filepath.Join(outDir, "002-cy-x-com.html"))
	require.NoError(t, err)
	assert.Contains(t, string(second), "Hello Cy at Friends")
}

func TestRenderCmd_ContactLimit(t *testing.T) {
	page := writeTemp(t, "page.json", templateJSON)
	contacts := writeTemp(t, "contacts.csv", contactsCSV)
	outDir := t.TempDir()

	out, err := execute(t, "render", page, "--contacts", contacts, "--limit", "1", "-o", outDir)
	require.NoError(t, err)
	assert.Equal(t, "001-ann-x-com.html\n", out)
}

func TestRenderCmd_ContactsRequireOutDir(t *testing.T) {
	page := writeTemp(t, "page.json", templateJSON)
	contacts := writeTemp(t, "contacts.csv", contactsCSV)

	_, err := execute(t, "render", page, "--contacts", contacts)
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestFileSlug(t *testing.T) {
	assert.Equal(t, "ann-x-com", fileSlug("Ann@X.com"))
	assert.Equal(t, "contact", fileSlug("@@"))
}
