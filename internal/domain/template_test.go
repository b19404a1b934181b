package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	suffix := "loyw3v28"

	assert.Equal(t, "spring-launch-"+suffix, GenerateSlug("  Spring Launch!! ", now))
	assert.Equal(t, "acme-co-2025-"+suffix, GenerateSlug("ACME & Co. 2025", now))
	assert.Equal(t, "page-"+suffix, GenerateSlug("🚀", now))
}

func TestPageTemplate_Validate(t *testing.T) {
	valid := func() *PageTemplate {
		return &PageTemplate{
			ID:       "t1",
			OwnerID:  "o1",
			Name:     "Launch",
			Slug:     "launch-abc",
			Sections: []Section{{ID: "s1", Type: SectionTypeSpacer, Block: SpacerBlock{}}},
		}
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*PageTemplate)
	}{
		{"missing id", func(p *PageTemplate) { p.ID = "" }},
		{"missing owner", func(p *PageTemplate) { p.OwnerID = "" }},
		{"blank name", func(p *PageTemplate) { p.Name = "  " }},
		{"missing slug", func(p *PageTemplate) { p.Slug = "" }},
		{"bad accent", func(p *PageTemplate) { c := "purple"; p.AccentColor = &c }},
		{"duplicate section ids", func(p *PageTemplate) { p.Sections = append(p.Sections, p.Sections[0]) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := valid()
			tt.mutate(tpl)
			assert.Error(t, tpl.Validate())
		})
	}
}

func TestTemplateRequests_Validate(t *testing.T) {
	assert.NoError(t, (&CreateTemplateRequest{Name: "Launch"}).Validate())
	assert.Error(t, (&CreateTemplateRequest{Name: ""}).Validate())

	assert.Error(t, (&UpdateTemplateRequest{}).Validate())
	empty := ""
	assert.Error(t, (&UpdateTemplateRequest{ID: "t", Name: &empty}).Validate())

	assert.Error(t, (&AddSectionRequest{TemplateID: "t", Type: "carousel"}).Validate())
	assert.NoError(t, (&AddSectionRequest{TemplateID: "t", Type: SectionTypeCTA}).Validate())

	assert.Error(t, (&UpdateSectionRequest{TemplateID: "t", SectionID: "s"}).Validate())
	assert.Error(t, (&MoveSectionRequest{TemplateID: "t", SectionID: "s", Direction: "left"}).Validate())
	assert.Error(t, (&SectionRefRequest{TemplateID: "t"}).Validate())
	assert.Error(t, (&RenderTemplateRequest{}).Validate())
}
