package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPage(t *testing.T, ids ...string) *Page {
	t.Helper()
	sections := make([]Section, 0, len(ids))
	for _, id := range ids {
		sections = append(sections, Section{ID: id, Type: SectionTypeHeadline, Block: HeadlineBlock{Text: id}})
	}
	p, err := NewPage(sections)
	require.NoError(t, err)
	return p
}

func pageIDs(p *Page) []string {
	ids := make([]string, 0, p.Len())
	for _, s := range p.Sections {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestNewPage_Validation(t *testing.T) {
	_, err := NewPage([]Section{{ID: "a", Block: SpacerBlock{}}, {ID: "a", Block: SpacerBlock{}}})
	assert.True(t, IsValidationError(err))

	_, err = NewPage([]Section{{ID: "", Block: SpacerBlock{}}})
	assert.True(t, IsValidationError(err))

	p, err := NewPage(nil)
	require.NoError(t, err)
	assert.NotNil(t, p.Sections)
}

func TestPage_Insert(t *testing.T) {
	p := testPage(t, "a", "b")

	require.NoError(t, p.Insert(Section{ID: "x", Block: SpacerBlock{}}, 1))
	require.NoError(t, p.Insert(Section{ID: "first", Block: SpacerBlock{}}, -5))
	require.NoError(t, p.Append(Section{ID: "last", Block: SpacerBlock{}}))
	require.NoError(t, p.Insert(Section{ID: "clamped", Block: SpacerBlock{}}, 99))

	assert.Equal(t, []string{"first", "a", "x", "b", "last", "clamped"}, pageIDs(p))
	assert.True(t, IsValidationError(p.Append(Section{ID: "a", Block: SpacerBlock{}})))
}

func TestPage_Move(t *testing.T) {
	p := testPage(t, "a", "b", "c")

	require.NoError(t, p.Move("b", MoveUp))
	assert.Equal(t, []string{"b", "a", "c"}, pageIDs(p))

	require.NoError(t, p.Move("b", MoveUp), "moving the first section up is a no-op")
	assert.Equal(t, []string{"b", "a", "c"}, pageIDs(p))

	require.NoError(t, p.Move("c", MoveDown), "moving the last section down is a no-op")
	assert.Equal(t, []string{"b", "a", "c"}, pageIDs(p))

	require.NoError(t, p.Move("a", MoveDown))
	assert.Equal(t, []string{"b", "c", "a"}, pageIDs(p))

	assert.True(t, IsNotFound(p.Move("zzz", MoveUp)))
	assert.True(t, IsValidationError(p.Move("a", "sideways")))
}

func TestPage_Duplicate(t *testing.T) {
	p := testPage(t, "a", "b")
	p.Sections[0].Block = FormBlock{FormTitle: "T", FormFields: []string{"Email"}}
	p.Sections[0].Type = SectionTypeForm

	dup, err := p.Duplicate("a", "a2")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a2", "b"}, pageIDs(p))
	assert.Equal(t, "a2", dup.ID)
	assert.Equal(t, p.Sections[0].Block, dup.Block)

	fields := dup.Block.(FormBlock).FormFields
	fields[0] = "changed"
	assert.Equal(t, "Email", p.Sections[0].Block.(FormBlock).FormFields[0], "duplicate shares no content")

	_, err = p.Duplicate("missing", "m2")
	assert.True(t, IsNotFound(err))

	_, err = p.Duplicate("a", "b")
	assert.True(t, IsValidationError(err), "new id must be unique")
}

func TestPage_RemoveAndReplace(t *testing.T) {
	p := testPage(t, "a", "b", "c")

	require.NoError(t, p.Remove("b"))
	assert.Equal(t, []string{"a", "c"}, pageIDs(p))
	assert.True(t, IsNotFound(p.Remove("b")))

	require.NoError(t, p.Replace(Section{ID: "c", Type: SectionTypeBody, Block: BodyBlock{Text: "new"}}))
	assert.Equal(t, BodyBlock{Text: "new"}, p.Sections[1].Block)
	assert.True(t, IsNotFound(p.Replace(Section{ID: "nope", Block: SpacerBlock{}})))
}

func TestPage_UpdateContentAndStyle(t *testing.T) {
	catalog := MustSectionCatalog()
	p := testPage(t, "h")

	s, err := p.UpdateContent(catalog, "h", map[string]json.RawMessage{"text": json.RawMessage(`"Hello {{first_name}}"`)})
	require.NoError(t, err)
	assert.Equal(t, HeadlineBlock{Text: "Hello {{first_name}}"}, s.Block)
	assert.Equal(t, HeadlineBlock{Text: "Hello {{first_name}}"}, p.Sections[0].Block)

	_, err = p.UpdateContent(catalog, "h", map[string]json.RawMessage{"buttonText": json.RawMessage(`"x"`)})
	assert.True(t, IsValidationError(err))

	s, err = p.UpdateStyle(catalog, "h", map[string]json.RawMessage{"fontSize": json.RawMessage(`"64px"`)})
	require.NoError(t, err)
	assert.Equal(t, "64px", s.Style.FontSize)

	_, err = p.UpdateStyle(catalog, "h", map[string]json.RawMessage{"height": json.RawMessage(`"10px"`)})
	assert.True(t, IsValidationError(err))

	_, err = p.UpdateStyle(catalog, "missing", nil)
	assert.True(t, IsNotFound(err))
}
