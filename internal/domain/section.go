package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// SectionType is the variant of a page section
type SectionType string

const (
	SectionTypeHeadline SectionType = "headline"
	SectionTypeBody     SectionType = "body"
	SectionTypeVideo    SectionType = "video"
	SectionTypeImage    SectionType = "image"
	SectionTypeBanner   SectionType = "banner"
	SectionTypeCTA      SectionType = "cta"
	SectionTypeForm     SectionType = "form"
	SectionTypeLogo     SectionType = "logo"
	SectionTypeSpacer   SectionType = "spacer"
	SectionTypeDocument SectionType = "document"
)

// SectionTypes lists every variant in palette order
var SectionTypes = []SectionType{
	SectionTypeHeadline,
	SectionTypeBody,
	SectionTypeVideo,
	SectionTypeImage,
	SectionTypeBanner,
	SectionTypeCTA,
	SectionTypeForm,
	SectionTypeLogo,
	SectionTypeSpacer,
	SectionTypeDocument,
}

func (t SectionType) Validate() error {
	for _, known := range SectionTypes {
		if t == known {
			return nil
		}
	}
	return NewValidationError(fmt.Sprintf("unknown section type: %s", t))
}

// Block is the content of a section. Every variant has its own struct holding
// only the keys that variant understands; the set is closed to this package.
type Block interface {
	SectionType() SectionType
	block()
}

type HeadlineBlock struct {
	Text string `json:"text" yaml:"text"`
}

type BodyBlock struct {
	Text string `json:"text" yaml:"text"`
}

// VideoBlock accepts a URL or a bare id. VideoID is the older key and is
// only consulted when VideoURL is empty.
type VideoBlock struct {
	VideoURL string `json:"videoUrl,omitempty" yaml:"videoUrl,omitempty"`
	VideoID  string `json:"videoId,omitempty" yaml:"videoId,omitempty"`
}

// Source returns the reference to normalize
func (b VideoBlock) Source() string {
	if b.VideoURL != "" {
		return b.VideoURL
	}
	return b.VideoID
}

type ImageLayout string

const (
	ImageLayoutSingle ImageLayout = "single"
	ImageLayoutRow    ImageLayout = "row"
)

type ImageBlock struct {
	ImageLayout ImageLayout `json:"imageLayout,omitempty" yaml:"imageLayout,omitempty"`
	ImageURL    string      `json:"imageUrl" yaml:"imageUrl"`
	ImageURLs   []string    `json:"imageUrls,omitempty" yaml:"imageUrls,omitempty"`
}

type BannerBlock struct {
	BannerText    string `json:"bannerText" yaml:"bannerText"`
	BannerSubtext string `json:"bannerSubtext" yaml:"bannerSubtext"`
	ImageURL      string `json:"imageUrl" yaml:"imageUrl"`
}

type CTABlock struct {
	Text                string `json:"text" yaml:"text"`
	ButtonText          string `json:"buttonText" yaml:"buttonText"`
	ButtonLink          string `json:"buttonLink" yaml:"buttonLink"`
	SecondaryButtonText string `json:"secondaryButtonText" yaml:"secondaryButtonText"`
	SecondaryButtonLink string `json:"secondaryButtonLink" yaml:"secondaryButtonLink"`
}

type FormBlock struct {
	FormTitle      string   `json:"formTitle" yaml:"formTitle"`
	FormSubtitle   string   `json:"formSubtitle" yaml:"formSubtitle"`
	FormFields     []string `json:"formFields" yaml:"formFields"`
	FormButtonText string   `json:"formButtonText" yaml:"formButtonText"`
}

type LogoBlock struct {
	LogoURL string `json:"logoUrl" yaml:"logoUrl"`
}

type SpacerBlock struct{}

type DocumentBlock struct {
	DocumentTitle       string `json:"documentTitle" yaml:"documentTitle"`
	DocumentDescription string `json:"documentDescription" yaml:"documentDescription"`
	DocumentURL         string `json:"documentUrl" yaml:"documentUrl"`
	DocumentButtonText  string `json:"documentButtonText" yaml:"documentButtonText"`
}

func (HeadlineBlock) SectionType() SectionType { return SectionTypeHeadline }
func (BodyBlock) SectionType() SectionType     { return SectionTypeBody }
func (VideoBlock) SectionType() SectionType    { return SectionTypeVideo }
func (ImageBlock) SectionType() SectionType    { return SectionTypeImage }
func (BannerBlock) SectionType() SectionType   { return SectionTypeBanner }
func (CTABlock) SectionType() SectionType      { return SectionTypeCTA }
func (FormBlock) SectionType() SectionType     { return SectionTypeForm }
func (LogoBlock) SectionType() SectionType     { return SectionTypeLogo }
func (SpacerBlock) SectionType() SectionType   { return SectionTypeSpacer }
func (DocumentBlock) SectionType() SectionType { return SectionTypeDocument }

func (HeadlineBlock) block() {}
func (BodyBlock) block()     {}
func (VideoBlock) block()    {}
func (ImageBlock) block()    {}
func (BannerBlock) block()   {}
func (CTABlock) block()      {}
func (FormBlock) block()     {}
func (LogoBlock) block()     {}
func (SpacerBlock) block()   {}
func (DocumentBlock) block() {}

// newBlock returns a pointer to an empty block of type t, ready to be decoded into
func newBlock(t SectionType) (interface{}, error) {
	switch t {
	case SectionTypeHeadline:
		return &HeadlineBlock{}, nil
	case SectionTypeBody:
		return &BodyBlock{}, nil
	case SectionTypeVideo:
		return &VideoBlock{}, nil
	case SectionTypeImage:
		return &ImageBlock{}, nil
	case SectionTypeBanner:
		return &BannerBlock{}, nil
	case SectionTypeCTA:
		return &CTABlock{}, nil
	case SectionTypeForm:
		return &FormBlock{}, nil
	case SectionTypeLogo:
		return &LogoBlock{}, nil
	case SectionTypeSpacer:
		return &SpacerBlock{}, nil
	case SectionTypeDocument:
		return &DocumentBlock{}, nil
	}
	return nil, NewConfigurationError("section type %q is not registered", t)
}

// derefBlock turns the pointer returned by newBlock into the value stored in Section
func derefBlock(p interface{}) Block {
	switch b := p.(type) {
	case *HeadlineBlock:
		return *b
	case *BodyBlock:
		return *b
	case *VideoBlock:
		return *b
	case *ImageBlock:
		return *b
	case *BannerBlock:
		return *b
	case *CTABlock:
		return *b
	case *FormBlock:
		return *b
	case *LogoBlock:
		return *b
	case *SpacerBlock:
		return *b
	case *DocumentBlock:
		return *b
	}
	return nil
}

// DecodeBlock decodes JSON content for variant t. Keys the variant does not
// know are ignored.
func DecodeBlock(t SectionType, raw []byte) (Block, error) {
	target, err := newBlock(t)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 && gjson.ValidBytes(raw) && gjson.ParseBytes(raw).IsObject() {
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, NewValidationError(fmt.Sprintf("invalid %s content: %v", t, err))
		}
	}
	return derefBlock(target), nil
}

// decodeStoredBlock decodes persisted content for variant t one key at a
// time. A key whose value does not fit its field is dropped, leaving the
// zero value in place.
func decodeStoredBlock(t SectionType, raw []byte) (Block, error) {
	target, err := newBlock(t)
	if err != nil {
		return nil, err
	}
	obj := gjson.ParseBytes(raw)
	if len(raw) == 0 || !gjson.ValidBytes(raw) || !obj.IsObject() {
		return derefBlock(target), nil
	}
	obj.ForEach(func(key, value gjson.Result) bool {
		single, err := json.Marshal(map[string]json.RawMessage{key.String(): json.RawMessage(value.Raw)})
		if err != nil {
			return true
		}
		scratch, _ := newBlock(t)
		if json.Unmarshal(single, scratch) != nil {
			return true
		}
		_ = json.Unmarshal(single, target)
		return true
	})
	return derefBlock(target), nil
}

// CloneBlock returns a deep copy of b
func CloneBlock(b Block) (Block, error) {
	if b == nil {
		return nil, NewConfigurationError("section has no content")
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to copy %s content: %w", b.SectionType(), err)
	}
	return DecodeBlock(b.SectionType(), raw)
}

// Section is one content block of a page
type Section struct {
	ID    string       `json:"id"`
	Type  SectionType  `json:"type"`
	Block Block        `json:"-"`
	Style SectionStyle `json:"-"`
}

// NewSectionID mints an identifier for a new section
func NewSectionID() string {
	return uuid.NewString()
}

type sectionJSON struct {
	ID      string       `json:"id"`
	Type    SectionType  `json:"type"`
	Content Block        `json:"content"`
	Style   SectionStyle `json:"style"`
}

func (s Section) MarshalJSON() ([]byte, error) {
	if s.Block == nil {
		return nil, NewConfigurationError("section %s has no content", s.ID)
	}
	return json.Marshal(sectionJSON{
		ID:      s.ID,
		Type:    s.Block.SectionType(),
		Content: s.Block,
		Style:   s.Style,
	})
}

func (s *Section) UnmarshalJSON(data []byte) error {
	decoded, err := decodeSection(gjson.ParseBytes(data))
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

func decodeSection(obj gjson.Result) (Section, error) {
	if !obj.IsObject() {
		return Section{}, NewValidationError("section must be an object")
	}
	t := SectionType(obj.Get("type").String())
	block, err := decodeStoredBlock(t, []byte(obj.Get("content").Raw))
	if err != nil {
		return Section{}, err
	}
	style, err := DecodeStyle([]byte(obj.Get("style").Raw))
	if err != nil {
		return Section{}, err
	}
	return Section{
		ID:    obj.Get("id").String(),
		Type:  t,
		Block: block,
		Style: style,
	}, nil
}

// DecodeSections decodes a stored JSON array of sections. A null or empty
// document is an empty page.
func DecodeSections(raw []byte) ([]Section, error) {
	if len(raw) == 0 {
		return []Section{}, nil
	}
	if !gjson.ValidBytes(raw) {
		return nil, NewValidationError("sections must be valid JSON")
	}
	doc := gjson.ParseBytes(raw)
	if doc.Type == gjson.Null {
		return []Section{}, nil
	}
	if !doc.IsArray() {
		return nil, NewValidationError("sections must be a JSON array")
	}

	var (
		sections  []Section
		decodeErr error
	)
	doc.ForEach(func(_, value gjson.Result) bool {
		s, err := decodeSection(value)
		if err != nil {
			decodeErr = err
			return false
		}
		sections = append(sections, s)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	if sections == nil {
		sections = []Section{}
	}
	return sections, nil
}

// Clone returns a deep copy of the section with the same id
func (s Section) Clone() (Section, error) {
	block, err := CloneBlock(s.Block)
	if err != nil {
		return Section{}, err
	}
	return Section{
		ID:    s.ID,
		Type:  s.Type,
		Block: block,
		Style: s.Style.Clone(),
	}, nil
}

// SectionType returns the variant, derived from the block when present
func (s Section) SectionType() SectionType {
	if s.Block != nil {
		return s.Block.SectionType()
	}
	return s.Type
}
