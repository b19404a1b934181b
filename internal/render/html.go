package render

import (
	"embed"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/asaskevich/govalidator"
	"github.com/microcosm-cc/bluemonday"
	"github.com/osteele/liquid"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/pkg/video"
)

//go:embed templates/*.liquid
var templateFS embed.FS

const (
	defaultPageTitle   = "Landing Page"
	defaultAccentColor = "#6d54df"
	defaultPaddingX    = "24px"
)

const baseCSS = `*{box-sizing:border-box}` +
	`body{margin:0;font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,Helvetica,Arial,sans-serif}` +
	`.pk-section{position:relative;width:100%}` +
	`.pk-inner{position:relative;margin:0 auto}` +
	`.pk-title,.pk-text,.pk-subtext{margin:0 0 16px}` +
	`.pk-video-frame{position:relative;padding-top:56.25%}` +
	`.pk-video-frame iframe,.pk-video-frame video{position:absolute;inset:0;width:100%;height:100%;border:0}` +
	`.pk-images{display:flex;gap:16px}.pk-images img{display:block;width:100%;min-width:0;object-fit:cover}` +
	`.pk-banner-image{position:absolute;inset:0;width:100%;height:100%;object-fit:cover}` +
	`.pk-banner-overlay{position:absolute;inset:0}` +
	`.pk-buttons{display:flex;gap:12px;justify-content:center;flex-wrap:wrap}` +
	`.pk-button{display:inline-block;padding:12px 28px;border-radius:8px;font-weight:600;text-decoration:none;border:0;cursor:pointer;background-color:var(--pk-accent);color:#ffffff}` +
	`.pk-button-disabled{opacity:.5;cursor:not-allowed}` +
	`.pk-field{display:flex;flex-direction:column;gap:6px;margin-bottom:16px;text-align:left}` +
	`.pk-field input,.pk-field textarea{padding:10px 12px;border:1px solid #d4d4d8;border-radius:6px;font:inherit}` +
	`.pk-placeholder{padding:48px 16px;border:2px dashed #d4d4d8;border-radius:8px;color:#71717a;text-align:center}`

var fontWeights = map[string]string{
	"normal":    "400",
	"medium":    "500",
	"semibold":  "600",
	"bold":      "700",
	"extrabold": "800",
}

// htmlWriter turns rendered views into a sanitized HTML document
type htmlWriter struct {
	sections map[domain.SectionType]*liquid.Template
	layout   *liquid.Template
}

func newHTMLWriter() (*htmlWriter, error) {
	engine := liquid.NewEngine()
	parse := func(name string) (*liquid.Template, error) {
		src, err := templateFS.ReadFile("templates/" + name + ".liquid")
		if err != nil {
			return nil, domain.NewConfigurationError("missing layout %s: %v", name, err)
		}
		tpl, perr := engine.ParseTemplate(src)
		if perr != nil {
			return nil, domain.NewConfigurationError("invalid layout %s: %v", name, perr)
		}
		return tpl, nil
	}

	w := &htmlWriter{sections: make(map[domain.SectionType]*liquid.Template, len(domain.SectionTypes))}
	for _, t := range domain.SectionTypes {
		tpl, err := parse(string(t))
		if err != nil {
			return nil, err
		}
		w.sections[t] = tpl
	}
	layout, err := parse("page")
	if err != nil {
		return nil, err
	}
	w.layout = layout
	return w, nil
}

func (w *htmlWriter) page(sections []RenderedSection, opts domain.PageOptions) (string, error) {
	var body strings.Builder
	for _, rs := range sections {
		fragment, err := w.section(rs)
		if err != nil {
			return "", err
		}
		body.WriteString(fragment)
		body.WriteByte('\n')
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = defaultPageTitle
	}
	accent := defaultAccentColor
	if govalidator.IsHexcolor(opts.AccentColor) {
		accent = opts.AccentColor
	}

	out, err := w.layout.RenderString(liquid.Bindings{
		"title":      title,
		"base_css":   baseCSS,
		"body_style": "--pk-accent:" + accent,
		"body":       sectionPolicy().Sanitize(body.String()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return out, nil
}

func (w *htmlWriter) section(rs RenderedSection) (string, error) {
	tpl, ok := w.sections[rs.Type]
	if !ok {
		return "", domain.NewConfigurationError("section type %q has no layout", rs.Type)
	}
	out, err := tpl.RenderString(sectionBindings(rs))
	if err != nil {
		return "", fmt.Errorf("failed to render section %s: %w", rs.ID, err)
	}
	return out, nil
}

func sectionBindings(rs RenderedSection) liquid.Bindings {
	st := rs.Style
	b := liquid.Bindings{
		"id":                  rs.ID,
		"container_style":     containerStyle(st).String(),
		"inner_style":         innerStyle(st).String(),
		"text_style":          textStyle(st).String(),
		"placeholder":         string(rs.View.Placeholder()),
		"placeholder_message": rs.View.Placeholder().Message(),
	}

	switch v := rs.View.(type) {
	case HeadlineView:
		b["text"] = v.Text
	case BodyView:
		b["paragraphs"] = paragraphs(v.Text)
	case VideoView:
		b["has_embed"] = v.Embed != nil
		if v.Embed != nil {
			b["embed_url"] = v.Embed.URL
			b["is_direct"] = v.Embed.Provider == video.ProviderDirect
		} else {
			b["is_direct"] = false
		}
	case ImageView:
		b["has_images"] = len(v.URLs) > 0
		b["layout"] = string(v.Layout)
		b["urls"] = v.URLs
		var img css
		img.add("border-radius", st.BorderRadius)
		b["image_style"] = img.String()
	case BannerView:
		b["text"] = v.Text
		b["subtext"] = v.Subtext
		b["has_subtext"] = v.Subtext != ""
		b["has_image"] = v.ImageURL != ""
		b["image_url"] = v.ImageURL
		b["overlay_style"] = overlayStyle(st).String()
		var sub css
		sub.add("color", st.TextColor)
		b["subtext_style"] = sub.String()
	case CTAView:
		b["text"] = v.Text
		b["has_primary"] = v.Primary != nil
		b["has_secondary"] = v.Secondary != nil
		if v.Primary != nil {
			b["primary_text"] = v.Primary.Text
			b["primary_link"] = v.Primary.Link
			b["primary_style"] = buttonStyle(st.ButtonColor, st.ButtonTextColor).String()
		}
		if v.Secondary != nil {
			secondary := buttonStyle(st.SecondaryButtonColor, st.SecondaryButtonTextColor)
			secondary.add("border", "2px solid "+orDefault(st.SecondaryButtonTextColor, "currentColor"))
			b["secondary_text"] = v.Secondary.Text
			b["secondary_link"] = v.Secondary.Link
			b["secondary_style"] = secondary.String()
		}
	case FormView:
		b["title"] = v.Title
		b["has_title"] = v.Title != ""
		b["subtitle"] = v.Subtitle
		b["has_subtitle"] = v.Subtitle != ""
		b["button_text"] = v.ButtonText
		b["button_style"] = buttonStyle(st.ButtonColor, st.ButtonTextColor).String()
		var label css
		label.add("color", st.TextColor)
		b["label_style"] = label.String()
		fields := make([]map[string]interface{}, 0, len(v.Fields))
		for i, f := range v.Fields {
			fields = append(fields, map[string]interface{}{
				"id":          rs.ID + "-" + strconv.Itoa(i),
				"label":       f.Label,
				"name":        f.Name,
				"type":        string(f.InputType),
				"multiline":   f.InputType == FormInputTextarea,
				"placeholder": f.Placeholder,
			})
		}
		b["fields"] = fields
	case LogoView:
		b["has_logo"] = v.URL != ""
		b["url"] = v.URL
		var logo css
		logo.add("height", v.Height)
		logo.add("width", "auto")
		b["logo_style"] = logo.String()
	case SpacerView:
		var spacer css
		spacer.add("background-color", st.BackgroundColor)
		spacer.add("height", v.Height)
		b["container_style"] = spacer.String()
	case DocumentView:
		b["title"] = v.Title
		b["has_title"] = v.Title != ""
		b["description"] = v.Description
		b["has_description"] = v.Description != ""
		b["url"] = v.URL
		b["disabled"] = v.Disabled
		b["button_text"] = v.ButtonText
		b["button_style"] = buttonStyle(st.ButtonColor, st.ButtonTextColor).String()
	}
	return b
}

// paragraphs splits body text on newlines, dropping blank lines
func paragraphs(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// css accumulates inline declarations. Values that could break out of the
// declaration are dropped.
type css []string

func (c *css) add(property, value string) {
	if v := cssValue(value); v != "" {
		*c = append(*c, property+":"+v)
	}
}

func (c css) String() string {
	return strings.Join(c, ";")
}

func cssValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.ContainsAny(v, ";{}<>\"'\\") {
		return ""
	}
	lower := strings.ToLower(v)
	if strings.Contains(lower, "url(") || strings.Contains(lower, "expression") {
		return ""
	}
	return v
}

func containerStyle(st domain.SectionStyle) css {
	var c css
	c.add("background-color", st.BackgroundColor)
	c.add("padding-top", st.PaddingY)
	c.add("padding-bottom", st.PaddingY)
	c.add("padding-left", orDefault(st.PaddingX, defaultPaddingX))
	c.add("padding-right", orDefault(st.PaddingX, defaultPaddingX))
	return c
}

func innerStyle(st domain.SectionStyle) css {
	var c css
	c.add("max-width", st.MaxWidth)
	c.add("text-align", st.TextAlign)
	return c
}

func textStyle(st domain.SectionStyle) css {
	var c css
	c.add("color", st.TextColor)
	c.add("font-size", st.FontSize)
	c.add("font-weight", fontWeights[st.FontWeight])
	c.add("font-style", st.FontStyle)
	return c
}

func overlayStyle(st domain.SectionStyle) css {
	var c css
	c.add("background-color", st.OverlayColor)
	if st.OverlayOpacity != nil {
		c.add("opacity", strconv.FormatFloat(*st.OverlayOpacity, 'f', -1, 64))
	}
	return c
}

func buttonStyle(background, foreground string) css {
	var c css
	c.add("background-color", background)
	c.add("color", foreground)
	return c
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// sectionPolicy allows exactly the markup the section layouts produce
func sectionPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowStandardURLs()
		p.RequireNoFollowOnLinks(false)
		p.AllowDataAttributes()
		p.AllowElements("section", "div", "span", "h1", "h2", "p", "form", "label", "button")
		p.AllowAttrs("class", "id", "style").Globally()
		p.AllowAttrs("href", "download").OnElements("a")
		p.AllowAttrs("src", "alt").OnElements("img")
		p.AllowAttrs("src", "title", "allow", "allowfullscreen").OnElements("iframe")
		p.AllowAttrs("src", "controls", "playsinline").OnElements("video")
		p.AllowAttrs("type", "name", "placeholder").OnElements("input")
		p.AllowAttrs("name", "rows", "placeholder").OnElements("textarea")
		p.AllowAttrs("for").OnElements("label")
		p.AllowAttrs("type").OnElements("button")
		policy = p
	})
	return policy
}
