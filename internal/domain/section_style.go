package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/asaskevich/govalidator"
	"github.com/tidwall/gjson"
)

// Style keys
const (
	StyleBackgroundColor          = "backgroundColor"
	StyleTextColor                = "textColor"
	StyleFontSize                 = "fontSize"
	StyleFontWeight               = "fontWeight"
	StyleFontStyle                = "fontStyle"
	StyleTextAlign                = "textAlign"
	StylePaddingY                 = "paddingY"
	StylePaddingX                 = "paddingX"
	StyleMaxWidth                 = "maxWidth"
	StyleBorderRadius             = "borderRadius"
	StyleOverlayColor             = "overlayColor"
	StyleOverlayOpacity           = "overlayOpacity"
	StyleButtonColor              = "buttonColor"
	StyleButtonTextColor          = "buttonTextColor"
	StyleSecondaryButtonColor     = "secondaryButtonColor"
	StyleSecondaryButtonTextColor = "secondaryButtonTextColor"
	StyleHeight                   = "height"
)

// Bounded style options offered by the editor
var (
	FontSizes      = []string{"14px", "16px", "18px", "20px", "24px", "28px", "32px", "36px", "40px", "48px", "56px", "64px", "72px"}
	FontWeights    = []string{"normal", "medium", "semibold", "bold", "extrabold"}
	FontStyles     = []string{"normal", "italic"}
	TextAligns     = []string{"left", "center", "right"}
	PaddingOptions = []string{"0px", "16px", "24px", "32px", "48px", "64px", "80px", "96px", "128px"}
)

// SectionStyle holds the presentational attributes of a section.
// Empty strings and a nil OverlayOpacity mean "not set".
type SectionStyle struct {
	BackgroundColor          string   `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	TextColor                string   `json:"textColor,omitempty" yaml:"textColor,omitempty"`
	FontSize                 string   `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	FontWeight               string   `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty"`
	FontStyle                string   `json:"fontStyle,omitempty" yaml:"fontStyle,omitempty"`
	TextAlign                string   `json:"textAlign,omitempty" yaml:"textAlign,omitempty"`
	PaddingY                 string   `json:"paddingY,omitempty" yaml:"paddingY,omitempty"`
	PaddingX                 string   `json:"paddingX,omitempty" yaml:"paddingX,omitempty"`
	MaxWidth                 string   `json:"maxWidth,omitempty" yaml:"maxWidth,omitempty"`
	BorderRadius             string   `json:"borderRadius,omitempty" yaml:"borderRadius,omitempty"`
	OverlayColor             string   `json:"overlayColor,omitempty" yaml:"overlayColor,omitempty"`
	OverlayOpacity           *float64 `json:"overlayOpacity,omitempty" yaml:"overlayOpacity,omitempty"`
	ButtonColor              string   `json:"buttonColor,omitempty" yaml:"buttonColor,omitempty"`
	ButtonTextColor          string   `json:"buttonTextColor,omitempty" yaml:"buttonTextColor,omitempty"`
	SecondaryButtonColor     string   `json:"secondaryButtonColor,omitempty" yaml:"secondaryButtonColor,omitempty"`
	SecondaryButtonTextColor string   `json:"secondaryButtonTextColor,omitempty" yaml:"secondaryButtonTextColor,omitempty"`
	Height                   string   `json:"height,omitempty" yaml:"height,omitempty"`
}

// stringFields exposes the string attributes by key
func (s *SectionStyle) stringFields() map[string]*string {
	return map[string]*string{
		StyleBackgroundColor:          &s.BackgroundColor,
		StyleTextColor:                &s.TextColor,
		StyleFontSize:                 &s.FontSize,
		StyleFontWeight:               &s.FontWeight,
		StyleFontStyle:                &s.FontStyle,
		StyleTextAlign:                &s.TextAlign,
		StylePaddingY:                 &s.PaddingY,
		StylePaddingX:                 &s.PaddingX,
		StyleMaxWidth:                 &s.MaxWidth,
		StyleBorderRadius:             &s.BorderRadius,
		StyleOverlayColor:             &s.OverlayColor,
		StyleButtonColor:              &s.ButtonColor,
		StyleButtonTextColor:          &s.ButtonTextColor,
		StyleSecondaryButtonColor:     &s.SecondaryButtonColor,
		StyleSecondaryButtonTextColor: &s.SecondaryButtonTextColor,
		StyleHeight:                   &s.Height,
	}
}

// IsStyleKey reports whether key names a style attribute
func IsStyleKey(key string) bool {
	if key == StyleOverlayOpacity {
		return true
	}
	_, ok := (&SectionStyle{}).stringFields()[key]
	return ok
}

// DecodeStyle reads a style object leniently: unknown keys are dropped,
// numbers given for string attributes are stringified and a numeric string
// is accepted for overlayOpacity.
func DecodeStyle(raw []byte) (SectionStyle, error) {
	var style SectionStyle
	if len(raw) == 0 {
		return style, nil
	}
	if !gjson.ValidBytes(raw) {
		return style, NewValidationError("style must be valid JSON")
	}
	obj := gjson.ParseBytes(raw)
	if obj.Type == gjson.Null {
		return style, nil
	}
	if !obj.IsObject() {
		return style, NewValidationError("style must be an object")
	}

	fields := style.stringFields()
	obj.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if k == StyleOverlayOpacity {
			if f, ok := parseOpacity(value); ok {
				style.OverlayOpacity = &f
			}
			return true
		}
		if dst, ok := fields[k]; ok && (value.Type == gjson.String || value.Type == gjson.Number) {
			*dst = value.String()
		}
		return true
	})
	return style, nil
}

func parseOpacity(value gjson.Result) (float64, bool) {
	switch value.Type {
	case gjson.Number:
		return value.Float(), true
	case gjson.String:
		f, err := strconv.ParseFloat(value.String(), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Clone returns a copy that shares no pointers with s
func (s SectionStyle) Clone() SectionStyle {
	out := s
	if s.OverlayOpacity != nil {
		v := *s.OverlayOpacity
		out.OverlayOpacity = &v
	}
	return out
}

// Keys returns the keys that are set, sorted
func (s SectionStyle) Keys() []string {
	var keys []string
	for k, v := range s.stringFields() {
		if *v != "" {
			keys = append(keys, k)
		}
	}
	if s.OverlayOpacity != nil {
		keys = append(keys, StyleOverlayOpacity)
	}
	sort.Strings(keys)
	return keys
}

// Restrict returns a copy with every key outside allowed cleared
func (s SectionStyle) Restrict(allowed []string) SectionStyle {
	keep := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		keep[k] = true
	}
	out := s.Clone()
	for k, v := range out.stringFields() {
		if !keep[k] {
			*v = ""
		}
	}
	if !keep[StyleOverlayOpacity] {
		out.OverlayOpacity = nil
	}
	return out
}

// ApplyStylePatch sets the given keys on a copy of s. A JSON null or empty
// string clears the key. Keys outside allowed are rejected.
func ApplyStylePatch(s SectionStyle, patch map[string]json.RawMessage, allowed []string) (SectionStyle, error) {
	permitted := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		permitted[k] = true
	}

	out := s.Clone()
	fields := out.stringFields()
	for key, raw := range patch {
		if !permitted[key] {
			return s, NewValidationError(fmt.Sprintf("style key %q is not allowed for this section", key))
		}
		value := gjson.ParseBytes(raw)
		if key == StyleOverlayOpacity {
			if value.Type == gjson.Null || (value.Type == gjson.String && value.String() == "") {
				out.OverlayOpacity = nil
				continue
			}
			f, ok := parseOpacity(value)
			if !ok {
				return s, NewValidationError("overlayOpacity must be a number")
			}
			out.OverlayOpacity = &f
			continue
		}
		switch value.Type {
		case gjson.Null:
			*fields[key] = ""
		case gjson.String, gjson.Number:
			*fields[key] = value.String()
		default:
			return s, NewValidationError(fmt.Sprintf("style key %q must be a string", key))
		}
	}
	if err := out.Validate(); err != nil {
		return s, err
	}
	return out, nil
}

// Validate checks bounded attributes against the editor's option lists and colours for hex form
func (s SectionStyle) Validate() error {
	bounded := []struct {
		key     string
		value   string
		options []string
	}{
		{StyleFontSize, s.FontSize, FontSizes},
		{StyleFontWeight, s.FontWeight, FontWeights},
		{StyleFontStyle, s.FontStyle, FontStyles},
		{StyleTextAlign, s.TextAlign, TextAligns},
		{StylePaddingY, s.PaddingY, PaddingOptions},
		{StylePaddingX, s.PaddingX, PaddingOptions},
	}
	for _, b := range bounded {
		if b.value != "" && !govalidator.IsIn(b.value, b.options...) {
			return NewValidationError(fmt.Sprintf("%s must be one of %v", b.key, b.options))
		}
	}

	colors := map[string]string{
		StyleBackgroundColor:          s.BackgroundColor,
		StyleTextColor:                s.TextColor,
		StyleOverlayColor:             s.OverlayColor,
		StyleButtonColor:              s.ButtonColor,
		StyleButtonTextColor:          s.ButtonTextColor,
		StyleSecondaryButtonColor:     s.SecondaryButtonColor,
		StyleSecondaryButtonTextColor: s.SecondaryButtonTextColor,
	}
	for key, c := range colors {
		if c != "" && c != "transparent" && !govalidator.IsHexcolor(c) {
			return NewValidationError(fmt.Sprintf("%s must be a hex colour or transparent", key))
		}
	}

	if s.OverlayOpacity != nil && (*s.OverlayOpacity < 0 || *s.OverlayOpacity > 1) {
		return NewValidationError("overlayOpacity must be between 0 and 1")
	}
	return nil
}
