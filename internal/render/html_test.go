package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxor-creek/Personalized-App/internal/domain"
)

func renderDoc(t *testing.T, sections []domain.Section, pc domain.PersonalizationContext, opts domain.PageOptions) *goquery.Document {
	t.Helper()
	r, _ := newTestRenderer(t)
	out, err := r.RenderHTML(sections, pc, opts)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	return doc
}

func TestRenderHTML_DefaultPage(t *testing.T) {
	catalog := domain.MustSectionCatalog()
	var sections []domain.Section
	for _, typ := range domain.SectionTypes {
		s, err := catalog.NewSection(typ)
		require.NoError(t, err)
		sections = append(sections, s)
	}

	doc := renderDoc(t, sections, nil, domain.PageOptions{})

	assert.Equal(t, "Landing Page", doc.Find("title").Text())
	assert.Equal(t, 0, doc.Find(".pk-placeholder").Length())
	assert.Equal(t, len(sections), doc.Find("body > section, body > .pk-spacer").Length())
	assert.Equal(t, 1, doc.Find(".pk-video iframe").Length())
	assert.Equal(t, 1, doc.Find(".pk-image img").Length())
	assert.Equal(t, 1, doc.Find(".pk-logo img").Length())
	assert.Equal(t, 1, doc.Find(".pk-document .pk-button-disabled").Length())
}

func TestRenderHTML_PersonalizesText(t *testing.T) {
	pc := domain.NewPersonalizationContext(map[string]string{"first_name": "Ana", "last_name": "Diaz"})
	doc := renderDoc(t, []domain.Section{
		section("h", domain.HeadlineBlock{Text: "Welcome, {{full_name}}"}, domain.SectionStyle{}),
		section("b", domain.BodyBlock{Text: "Line one {{first_name}}\n\nLine two"}, domain.SectionStyle{}),
	}, pc, domain.PageOptions{Title: "Launch"})

	assert.Equal(t, "Launch", doc.Find("title").Text())
	assert.Equal(t, "Welcome, Ana Diaz", doc.Find("#section-h h1").Text())
	paragraphs := doc.Find("#section-b p")
	require.Equal(t, 2, paragraphs.Length())
	assert.Equal(t, "Line one Ana", paragraphs.First().Text())
	assert.Equal(t, "Line two", paragraphs.Last().Text())
}

func TestRenderHTML_EscapesContent(t *testing.T) {
	pc := domain.NewPersonalizationContext(map[string]string{"first_name": "<img src=x onerror=alert(1)>"})
	doc := renderDoc(t, []domain.Section{
		section("h", domain.HeadlineBlock{Text: "<script>alert(1)</script> {{first_name}}"}, domain.SectionStyle{}),
	}, pc, domain.PageOptions{})

	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Equal(t, 0, doc.Find("h1 img").Length())
	assert.Contains(t, doc.Find("h1").Text(), "<script>alert(1)</script>")
}

func TestRenderHTML_DropsUnsafeLinksAndStyles(t *testing.T) {
	doc := renderDoc(t, []domain.Section{
		section("c", domain.CTABlock{Text: "Go", ButtonText: "Click", ButtonLink: "javascript:alert(1)"},
			domain.SectionStyle{BackgroundColor: "red;position:fixed", ButtonColor: "url(https://evil.test)"}),
	}, nil, domain.PageOptions{})

	link := doc.Find("#section-c a.pk-button-primary")
	require.Equal(t, 1, link.Length())
	_, hasHref := link.Attr("href")
	assert.False(t, hasHref)

	style, _ := doc.Find("#section-c").Attr("style")
	assert.NotContains(t, style, "position")
	buttonStyle, _ := link.Attr("style")
	assert.NotContains(t, buttonStyle, "url(")
}

func TestRenderHTML_DefaultButtonLinkSurvivesSanitizer(t *testing.T) {
	doc := renderDoc(t, []domain.Section{
		section("c1", domain.CTABlock{Text: "Ready?", ButtonText: "Get Started", ButtonLink: "#"}, domain.SectionStyle{}),
		section("c2", domain.CTABlock{Text: "Ready?", ButtonText: "Contact", ButtonLink: "#form", SecondaryButtonText: "Later"}, domain.SectionStyle{}),
	}, nil, domain.PageOptions{})

	href, ok := doc.Find("#section-c1 a.pk-button-primary").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "#top", href)

	href, ok = doc.Find("#section-c2 a.pk-button-primary").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "#form", href)
	href, ok = doc.Find("#section-c2 a.pk-button-secondary").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "#top", href)

	id, _ := doc.Find("body").Attr("id")
	assert.Equal(t, "top", id)
}

func TestRenderHTML_MistypedStoredContent(t *testing.T) {
	sections, err := domain.DecodeSections([]byte(`[
		{"id":"h","type":"headline","content":{"text":5}},
		{"id":"i","type":"image","content":{"imageUrl":{"src":"x"}}},
		{"id":"f","type":"form","content":{"formTitle":"Talk","formFields":"Email"}}
	]`))
	require.NoError(t, err)

	doc := renderDoc(t, sections, nil, domain.PageOptions{})

	assert.Equal(t, 3, doc.Find("body > section").Length())
	assert.Equal(t, "", strings.TrimSpace(doc.Find("#section-h h1").Text()))
	kind, _ := doc.Find("#section-i .pk-placeholder").Attr("data-placeholder")
	assert.Equal(t, string(PlaceholderImage), kind)
	assert.Equal(t, "Talk", doc.Find("#section-f h2").Text())
	assert.Equal(t, 0, doc.Find("#section-f input, #section-f textarea").Length())
}

func TestRenderHTML_VideoPlaceholderAndDirect(t *testing.T) {
	doc := renderDoc(t, []domain.Section{
		section("v1", domain.VideoBlock{}, domain.SectionStyle{}),
		section("v2", domain.VideoBlock{VideoURL: "https://cdn.test/clip.mp4"}, domain.SectionStyle{}),
	}, nil, domain.PageOptions{})

	placeholder := doc.Find("#section-v1 .pk-placeholder")
	require.Equal(t, 1, placeholder.Length())
	kind, _ := placeholder.Attr("data-placeholder")
	assert.Equal(t, "video_missing", kind)
	assert.Equal(t, PlaceholderVideo.Message(), placeholder.Text())

	src, ok := doc.Find("#section-v2 video").Attr("src")
	require.True(t, ok)
	assert.Equal(t, "https://cdn.test/clip.mp4", src)
}

func TestRenderHTML_FormAndStyles(t *testing.T) {
	doc := renderDoc(t, []domain.Section{
		section("f", domain.FormBlock{
			FormTitle:  "Hi {{first_name}}",
			FormFields: []string{"Email", "Message"},
		}, domain.SectionStyle{ButtonColor: "#ff0000", MaxWidth: "600px"}),
		section("h", domain.HeadlineBlock{Text: "T"}, domain.SectionStyle{FontWeight: "extrabold", FontSize: "56px"}),
	}, domain.NewPersonalizationContext(map[string]string{"first_name": "Ana"}), domain.PageOptions{AccentColor: "#123456"})

	assert.Equal(t, "Hi Ana", doc.Find("#section-f h2").Text())
	typ, _ := doc.Find("#section-f input").Attr("type")
	assert.Equal(t, "email", typ)
	assert.Equal(t, 1, doc.Find("#section-f textarea[name=message]").Length())
	assert.Equal(t, "Submit", strings.TrimSpace(doc.Find("#section-f button").Text()))

	buttonStyle, _ := doc.Find("#section-f button").Attr("style")
	assert.Contains(t, buttonStyle, "background-color:#ff0000")
	innerStyle, _ := doc.Find("#section-f .pk-inner").Attr("style")
	assert.Contains(t, innerStyle, "max-width:600px")
	headStyle, _ := doc.Find("#section-h h1").Attr("style")
	assert.Contains(t, headStyle, "font-weight:800")
	assert.Contains(t, headStyle, "font-size:56px")

	bodyStyle, _ := doc.Find("body").Attr("style")
	assert.Equal(t, "--pk-accent:#123456", bodyStyle)
}

func TestRenderHTML_BannerOverlay(t *testing.T) {
	opacity := 0.25
	doc := renderDoc(t, []domain.Section{
		section("b", domain.BannerBlock{BannerText: "Big", ImageURL: "https://a.test/bg.jpg"},
			domain.SectionStyle{OverlayColor: "#000000", OverlayOpacity: &opacity}),
	}, nil, domain.PageOptions{})

	assert.Equal(t, 1, doc.Find("#section-b .pk-banner-image").Length())
	overlay, _ := doc.Find("#section-b .pk-banner-overlay").Attr("style")
	assert.Equal(t, "background-color:#000000;opacity:0.25", overlay)
	assert.Equal(t, 0, doc.Find("#section-b .pk-subtext").Length())
}

func TestCSSValue(t *testing.T) {
	assert.Equal(t, "#fff", cssValue(" #fff "))
	assert.Equal(t, "", cssValue("red;color:blue"))
	assert.Equal(t, "", cssValue("URL(x)"))
	assert.Equal(t, "", cssValue(`"quoted"`))
	assert.Equal(t, "", cssValue("expression(alert(1))"))
}
