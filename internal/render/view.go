package render

import (
	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/pkg/video"
)

// Placeholder marks a section that lacks the content it needs to display
type Placeholder string

const (
	PlaceholderNone  Placeholder = ""
	PlaceholderVideo Placeholder = "video_missing"
	PlaceholderImage Placeholder = "image_missing"
	PlaceholderLogo  Placeholder = "logo_missing"
)

// Message is the hint shown in place of the missing content
func (p Placeholder) Message() string {
	switch p {
	case PlaceholderVideo:
		return "Paste a YouTube, Vimeo, or video URL in properties"
	case PlaceholderImage:
		return "Upload or paste an image URL"
	case PlaceholderLogo:
		return "Upload a logo"
	}
	return ""
}

// View is the presentation model of one rendered section. Every text field
// of a view is already personalized.
type View interface {
	SectionType() domain.SectionType
	Placeholder() Placeholder
}

// RenderedSection pairs a view with the section's id and the style keys legal for its variant
type RenderedSection struct {
	ID    string              `json:"id"`
	Type  domain.SectionType  `json:"type"`
	Style domain.SectionStyle `json:"style"`
	View  View                `json:"view"`
}

type HeadlineView struct {
	Text string `json:"text"`
}

type BodyView struct {
	Text string `json:"text"`
}

type VideoView struct {
	Embed *video.Embed `json:"embed,omitempty"`
}

type ImageView struct {
	Layout domain.ImageLayout `json:"layout"`
	URLs   []string           `json:"urls"`
}

type BannerView struct {
	Text     string `json:"text"`
	Subtext  string `json:"subtext,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type ButtonView struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

type CTAView struct {
	Text      string      `json:"text"`
	Primary   *ButtonView `json:"primary,omitempty"`
	Secondary *ButtonView `json:"secondary,omitempty"`
}

// FormInputType is how a form field is rendered
type FormInputType string

const (
	FormInputText     FormInputType = "text"
	FormInputEmail    FormInputType = "email"
	FormInputTextarea FormInputType = "textarea"
)

type FormFieldView struct {
	Label       string        `json:"label"`
	Name        string        `json:"name"`
	InputType   FormInputType `json:"input_type"`
	Placeholder string        `json:"placeholder"`
}

type FormView struct {
	Title      string          `json:"title,omitempty"`
	Subtitle   string          `json:"subtitle,omitempty"`
	Fields     []FormFieldView `json:"fields"`
	ButtonText string          `json:"button_text"`
}

type LogoView struct {
	URL    string `json:"url,omitempty"`
	Height string `json:"height"`
}

type SpacerView struct {
	Height string `json:"height"`
}

// DocumentView links to a downloadable file. Without a URL the button is shown disabled.
type DocumentView struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	ButtonText  string `json:"button_text"`
	Disabled    bool   `json:"disabled"`
}

func (HeadlineView) SectionType() domain.SectionType { return domain.SectionTypeHeadline }
func (BodyView) SectionType() domain.SectionType     { return domain.SectionTypeBody }
func (VideoView) SectionType() domain.SectionType    { return domain.SectionTypeVideo }
func (ImageView) SectionType() domain.SectionType    { return domain.SectionTypeImage }
func (BannerView) SectionType() domain.SectionType   { return domain.SectionTypeBanner }
func (CTAView) SectionType() domain.SectionType      { return domain.SectionTypeCTA }
func (FormView) SectionType() domain.SectionType     { return domain.SectionTypeForm }
func (LogoView) SectionType() domain.SectionType     { return domain.SectionTypeLogo }
func (SpacerView) SectionType() domain.SectionType   { return domain.SectionTypeSpacer }
func (DocumentView) SectionType() domain.SectionType { return domain.SectionTypeDocument }

func (HeadlineView) Placeholder() Placeholder { return PlaceholderNone }
func (BodyView) Placeholder() Placeholder     { return PlaceholderNone }
func (BannerView) Placeholder() Placeholder   { return PlaceholderNone }
func (CTAView) Placeholder() Placeholder      { return PlaceholderNone }
func (FormView) Placeholder() Placeholder     { return PlaceholderNone }
func (SpacerView) Placeholder() Placeholder   { return PlaceholderNone }
func (DocumentView) Placeholder() Placeholder { return PlaceholderNone }

func (v VideoView) Placeholder() Placeholder {
	if v.Embed == nil {
		return PlaceholderVideo
	}
	return PlaceholderNone
}

func (v ImageView) Placeholder() Placeholder {
	if len(v.URLs) == 0 {
		return PlaceholderImage
	}
	return PlaceholderNone
}

func (v LogoView) Placeholder() Placeholder {
	if v.URL == "" {
		return PlaceholderLogo
	}
	return PlaceholderNone
}
