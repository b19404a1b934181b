package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSections(t *testing.T) {
	raw := []byte(`[
		{"id":"s1","type":"headline","content":{"text":"Hi {{first_name}}","html":"<b>legacy</b>"},"style":{"fontSize":"48px","bogus":"x","overlayOpacity":"0.5"}},
		{"id":"s2","type":"video","content":{"videoId":"76979871"},"style":{}},
		{"id":"s3","type":"form","content":{"formFields":["Email","Message"]}},
		{"id":"s4","type":"spacer","style":{"height":24}}
	]`)

	sections, err := DecodeSections(raw)
	require.NoError(t, err)
	require.Len(t, sections, 4)

	assert.Equal(t, HeadlineBlock{Text: "Hi {{first_name}}"}, sections[0].Block)
	assert.Equal(t, "48px", sections[0].Style.FontSize)
	require.NotNil(t, sections[0].Style.OverlayOpacity)
	assert.Equal(t, 0.5, *sections[0].Style.OverlayOpacity)

	assert.Equal(t, "76979871", sections[1].Block.(VideoBlock).Source())
	assert.Equal(t, []string{"Email", "Message"}, sections[2].Block.(FormBlock).FormFields)
	assert.Equal(t, SpacerBlock{}, sections[3].Block)
	assert.Equal(t, "24", sections[3].Style.Height)
}

func TestDecodeSections_EmptyAndNull(t *testing.T) {
	for _, raw := range []string{"", "null", "[]"} {
		sections, err := DecodeSections([]byte(raw))
		require.NoError(t, err, raw)
		assert.Empty(t, sections)
		assert.NotNil(t, sections)
	}
}

func TestDecodeSections_Errors(t *testing.T) {
	t.Run("unknown variant is a configuration error", func(t *testing.T) {
		_, err := DecodeSections([]byte(`[{"id":"x","type":"carousel","content":{}}]`))
		var cfgErr *ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
	})

	t.Run("not an array", func(t *testing.T) {
		_, err := DecodeSections([]byte(`{"id":"x"}`))
		assert.True(t, IsValidationError(err))
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := DecodeSections([]byte(`[{`))
		assert.True(t, IsValidationError(err))
	})
}

func TestDecodeSections_MistypedContent(t *testing.T) {
	raw := []byte(`[
		{"id":"h","type":"headline","content":{"text":5}},
		{"id":"f","type":"form","content":{"formTitle":"Talk to us","formFields":"Email","formButtonText":["x"]}},
		{"id":"c","type":"cta","content":{"text":"Ready?","buttonLink":{"href":"#"},"buttonText":"Go"}},
		{"id":"i","type":"image","content":{"imageUrls":["https://cdn/a.png",7]}}
	]`)

	sections, err := DecodeSections(raw)
	require.NoError(t, err)
	require.Len(t, sections, 4)

	assert.Equal(t, HeadlineBlock{}, sections[0].Block)
	assert.Equal(t, FormBlock{FormTitle: "Talk to us"}, sections[1].Block)
	assert.Equal(t, CTABlock{Text: "Ready?", ButtonText: "Go"}, sections[2].Block)
	assert.Equal(t, ImageBlock{}, sections[3].Block)
}

func TestApplyContentPatch_RejectsMistypedValue(t *testing.T) {
	_, err := ApplyContentPatch(FormBlock{}, map[string]json.RawMessage{
		"formFields": json.RawMessage(`"Email"`),
	}, []string{"formFields"})
	assert.True(t, IsValidationError(err))
}

func TestSectionJSONRoundTrip(t *testing.T) {
	opacity := 0.4
	s := Section{
		ID:    "b1",
		Type:  SectionTypeBanner,
		Block: BannerBlock{BannerText: "Hello", BannerSubtext: "Sub", ImageURL: "https://img.test/a.png"},
		Style: SectionStyle{BackgroundColor: "#6d54df", OverlayOpacity: &opacity},
	}

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"b1","type":"banner","content":{"bannerText":"Hello","bannerSubtext":"Sub","imageUrl":"https://img.test/a.png"},"style":{"backgroundColor":"#6d54df","overlayOpacity":0.4}}`, string(raw))

	var back Section
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, s, back)
}

func TestSectionMarshalWithoutBlock(t *testing.T) {
	_, err := json.Marshal(Section{ID: "x"})
	assert.Error(t, err)
}

func TestSectionCloneIsDeep(t *testing.T) {
	opacity := 0.2
	s := Section{
		ID:    "f1",
		Type:  SectionTypeForm,
		Block: FormBlock{FormTitle: "T", FormFields: []string{"Email"}},
		Style: SectionStyle{OverlayOpacity: &opacity},
	}
	c, err := s.Clone()
	require.NoError(t, err)

	fields := c.Block.(FormBlock).FormFields
	fields[0] = "changed"
	*c.Style.OverlayOpacity = 0.9

	assert.Equal(t, "Email", s.Block.(FormBlock).FormFields[0])
	assert.Equal(t, 0.2, *s.Style.OverlayOpacity)
}

func TestApplyContentPatch(t *testing.T) {
	b := CTABlock{Text: "Ready?", ButtonText: "Go", ButtonLink: "#"}
	allowed := []string{"text", "buttonText", "buttonLink", "secondaryButtonText", "secondaryButtonLink"}

	out, err := ApplyContentPatch(b, map[string]json.RawMessage{
		"text":       json.RawMessage(`"Ready, {{first_name}}?"`),
		"buttonLink": json.RawMessage(`null`),
	}, allowed)
	require.NoError(t, err)
	assert.Equal(t, CTABlock{Text: "Ready, {{first_name}}?", ButtonText: "Go"}, out)
	assert.Equal(t, "#", b.ButtonLink, "input block is not modified")

	_, err = ApplyContentPatch(b, map[string]json.RawMessage{"videoUrl": json.RawMessage(`"x"`)}, allowed)
	assert.True(t, IsValidationError(err))

	_, err = ApplyContentPatch(nil, nil, allowed)
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}
