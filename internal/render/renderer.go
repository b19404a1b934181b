// Package render turns page sections and a personalization context into
// presentation views and HTML.
package render

import (
	"strings"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/pkg/personalize"
	"github.com/luxor-creek/Personalized-App/pkg/video"
)

const (
	defaultButtonLink     = "#top"
	defaultFormButtonText = "Submit"
	defaultDocumentButton = "Download PDF"
	defaultLogoHeight     = "40px"
	defaultSpacerHeight   = "48px"
)

// Renderer is stateless apart from the catalog it reads and the parsed HTML
// templates; it is safe for concurrent use.
type Renderer struct {
	catalog *domain.SectionCatalog
	html    *htmlWriter
}

// NewRenderer parses the HTML layouts and returns a renderer over catalog
func NewRenderer(catalog *domain.SectionCatalog) (*Renderer, error) {
	w, err := newHTMLWriter()
	if err != nil {
		return nil, err
	}
	return &Renderer{catalog: catalog, html: w}, nil
}

// RenderPage renders every section in order. The first failing section aborts the page.
func (r *Renderer) RenderPage(sections []domain.Section, pc domain.PersonalizationContext) ([]RenderedSection, error) {
	out := make([]RenderedSection, 0, len(sections))
	for _, s := range sections {
		rs, err := r.RenderSection(s, pc)
		if err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, nil
}

// RenderSection produces the view for one section. Content keys the catalog
// marks personalizable get token substitution; everything else is used as is.
func (r *Renderer) RenderSection(s domain.Section, pc domain.PersonalizationContext) (RenderedSection, error) {
	if s.Block == nil {
		return RenderedSection{}, domain.NewConfigurationError("section %s has no content", s.ID)
	}
	t := s.Block.SectionType()
	allowedStyle, err := r.catalog.AllowedStyleKeys(t)
	if err != nil {
		return RenderedSection{}, err
	}

	apply := r.personalizer(t, pc.Values())

	var view View
	switch b := s.Block.(type) {
	case domain.HeadlineBlock:
		view = HeadlineView{Text: apply("text", b.Text)}
	case domain.BodyBlock:
		view = BodyView{Text: apply("text", b.Text)}
	case domain.VideoBlock:
		v := VideoView{}
		if embed, ok := video.Normalize(b.Source()); ok {
			v.Embed = &embed
		}
		view = v
	case domain.ImageBlock:
		view = imageView(b)
	case domain.BannerBlock:
		view = BannerView{
			Text:     apply("bannerText", b.BannerText),
			Subtext:  apply("bannerSubtext", b.BannerSubtext),
			ImageURL: strings.TrimSpace(b.ImageURL),
		}
	case domain.CTABlock:
		view = ctaView(b, apply)
	case domain.FormBlock:
		view = formView(b, apply)
	case domain.LogoBlock:
		view = LogoView{URL: strings.TrimSpace(b.LogoURL), Height: orDefault(s.Style.Height, defaultLogoHeight)}
	case domain.SpacerBlock:
		view = SpacerView{Height: orDefault(s.Style.Height, defaultSpacerHeight)}
	case domain.DocumentBlock:
		url := strings.TrimSpace(b.DocumentURL)
		view = DocumentView{
			Title:       apply("documentTitle", b.DocumentTitle),
			Description: apply("documentDescription", b.DocumentDescription),
			URL:         buttonLink(url),
			ButtonText:  orDefault(b.DocumentButtonText, defaultDocumentButton),
			Disabled:    url == "",
		}
	default:
		return RenderedSection{}, domain.NewConfigurationError("section type %q has no renderer", t)
	}

	return RenderedSection{
		ID:    s.ID,
		Type:  t,
		Style: s.Style.Restrict(allowedStyle),
		View:  view,
	}, nil
}

func (r *Renderer) personalizer(t domain.SectionType, values personalize.Values) func(key, text string) string {
	return func(key, text string) string {
		if !r.catalog.IsPersonalizable(t, key) {
			return text
		}
		return personalize.Substitute(text, values)
	}
}

func imageView(b domain.ImageBlock) ImageView {
	layout := b.ImageLayout
	if layout == "" {
		layout = domain.ImageLayoutSingle
	}
	v := ImageView{Layout: layout, URLs: []string{}}
	switch layout {
	case domain.ImageLayoutRow:
		for _, u := range b.ImageURLs {
			if u = strings.TrimSpace(u); u != "" {
				v.URLs = append(v.URLs, u)
			}
		}
	default:
		v.Layout = domain.ImageLayoutSingle
		if u := strings.TrimSpace(b.ImageURL); u != "" {
			v.URLs = append(v.URLs, u)
		}
	}
	return v
}

func ctaView(b domain.CTABlock, apply func(key, text string) string) CTAView {
	v := CTAView{Text: apply("text", b.Text)}
	if b.ButtonText != "" {
		v.Primary = &ButtonView{Text: b.ButtonText, Link: buttonLink(b.ButtonLink)}
	}
	if b.SecondaryButtonText != "" {
		v.Secondary = &ButtonView{Text: b.SecondaryButtonText, Link: buttonLink(b.SecondaryButtonLink)}
	}
	return v
}

func formView(b domain.FormBlock, apply func(key, text string) string) FormView {
	v := FormView{
		Title:      apply("formTitle", b.FormTitle),
		Subtitle:   apply("formSubtitle", b.FormSubtitle),
		Fields:     make([]FormFieldView, 0, len(b.FormFields)),
		ButtonText: orDefault(b.FormButtonText, defaultFormButtonText),
	}
	for _, label := range b.FormFields {
		lower := strings.ToLower(label)
		input := FormInputText
		switch {
		case lower == "message":
			input = FormInputTextarea
		case strings.Contains(lower, "email"):
			input = FormInputEmail
		}
		v.Fields = append(v.Fields, FormFieldView{
			Label:       label,
			Name:        domain.NormalizeToken(label),
			InputType:   input,
			Placeholder: "Enter " + lower,
		})
	}
	return v
}

// buttonLink points an empty or bare "#" link at the top of the page.
func buttonLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" || link == "#" {
		return defaultButtonLink
	}
	return link
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// RenderHTML renders sections into a complete HTML document
func (r *Renderer) RenderHTML(sections []domain.Section, pc domain.PersonalizationContext, opts domain.PageOptions) (string, error) {
	rendered, err := r.RenderPage(sections, pc)
	if err != nil {
		return "", err
	}
	return r.html.page(rendered, opts)
}
