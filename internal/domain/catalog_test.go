package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSectionCatalog(t *testing.T) {
	c, err := NewSectionCatalog()
	require.NoError(t, err)

	defs := c.Definitions()
	require.Len(t, defs, len(SectionTypes))
	for i, def := range defs {
		assert.Equal(t, SectionTypes[i], def.Type, "palette order")
		assert.NotEmpty(t, def.Label)
		assert.NotEmpty(t, def.Icon)
	}

	assert.Equal(t, "Call to Action", c.Label(SectionTypeCTA))
}

func TestSectionCatalog_DefaultsFor(t *testing.T) {
	c := MustSectionCatalog()

	block, style, err := c.DefaultsFor(SectionTypeHeadline)
	require.NoError(t, err)
	assert.Equal(t, HeadlineBlock{Text: "Your Headline Here"}, block)
	assert.Equal(t, SectionStyle{
		FontSize:        "48px",
		FontWeight:      "bold",
		TextAlign:       "center",
		TextColor:       "#1a1a1a",
		BackgroundColor: "#ffffff",
		PaddingY:        "48px",
	}, style)

	block, style, err = c.DefaultsFor(SectionTypeBanner)
	require.NoError(t, err)
	assert.Equal(t, "Banner Headline", block.(BannerBlock).BannerText)
	require.NotNil(t, style.OverlayOpacity)
	assert.Equal(t, 0.4, *style.OverlayOpacity)

	block, _, err = c.DefaultsFor(SectionTypeForm)
	require.NoError(t, err)
	assert.Equal(t, FormBlock{
		FormTitle:      "Get in Touch",
		FormSubtitle:   "Fill out the form below and we'll get back to you.",
		FormFields:     []string{"First Name", "Email", "Message"},
		FormButtonText: "Submit",
	}, block)

	_, _, err = c.DefaultsFor("carousel")
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestSectionCatalog_DefaultsAreFreshCopies(t *testing.T) {
	c := MustSectionCatalog()

	block, _, err := c.DefaultsFor(SectionTypeForm)
	require.NoError(t, err)
	block.(FormBlock).FormFields[0] = "mutated"

	again, againStyle, err := c.DefaultsFor(SectionTypeForm)
	require.NoError(t, err)
	assert.Equal(t, "First Name", again.(FormBlock).FormFields[0])
	assert.Equal(t, "#1a1a1a", againStyle.TextColor)
}

func TestSectionCatalog_DefaultsOnlyUseLegalKeys(t *testing.T) {
	c := MustSectionCatalog()
	for _, st := range SectionTypes {
		block, style, err := c.DefaultsFor(st)
		require.NoError(t, err)

		contentKeys, err := c.AllowedContentKeys(st)
		require.NoError(t, err)
		keys, err := blockKeys(block)
		require.NoError(t, err)
		for _, k := range keys {
			assert.Contains(t, contentKeys, k, "%s content", st)
		}

		styleKeys, err := c.AllowedStyleKeys(st)
		require.NoError(t, err)
		for _, k := range style.Keys() {
			assert.Contains(t, styleKeys, k, "%s style", st)
		}
		assert.NoError(t, style.Validate(), "%s default style", st)
	}
}

func TestSectionCatalog_Personalizable(t *testing.T) {
	c := MustSectionCatalog()

	assert.True(t, c.IsPersonalizable(SectionTypeHeadline, "text"))
	assert.True(t, c.IsPersonalizable(SectionTypeBanner, "bannerSubtext"))
	assert.False(t, c.IsPersonalizable(SectionTypeCTA, "buttonText"))
	assert.False(t, c.IsPersonalizable(SectionTypeCTA, "buttonLink"))
	assert.False(t, c.IsPersonalizable(SectionTypeForm, "formFields"))

	keys, err := c.PersonalizableKeys(SectionTypeVideo)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestSectionCatalog_NewSection(t *testing.T) {
	c := MustSectionCatalog()
	a, err := c.NewSection(SectionTypeSpacer)
	require.NoError(t, err)
	b, err := c.NewSection(SectionTypeSpacer)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "48px", a.Style.Height)
}

func TestNewSectionCatalogFromYAML_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "sections: ["},
		{"missing variants", "sections:\n  - type: headline\n    content_keys: [text]\n"},
		{"undeclared default key", "sections:\n  - type: headline\n    content_keys: []\n    content:\n      text: hi\n"},
		{"personalizable not a content key", "sections:\n  - type: headline\n    content_keys: [text]\n    personalizable: [title]\n"},
		{"unknown style key", "sections:\n  - type: headline\n    style_keys: [zIndex]\n"},
		{"unknown variant", "sections:\n  - type: carousel\n"},
		{"duplicate variant", "sections:\n  - type: spacer\n  - type: spacer\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSectionCatalogFromYAML([]byte(tt.yaml))
			var cfgErr *ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "got %v", err)
		})
	}
}
