package domain

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// SectionDefinition describes one variant: how it appears in the palette,
// which keys it accepts and what a new section of it contains.
type SectionDefinition struct {
	Type               SectionType  `json:"type"`
	Label              string       `json:"label"`
	Icon               string       `json:"icon"`
	ContentKeys        []string     `json:"content_keys"`
	StyleKeys          []string     `json:"style_keys"`
	PersonalizableKeys []string     `json:"personalizable_keys"`
	Content            Block        `json:"content"`
	Style              SectionStyle `json:"style"`
}

// SectionCatalog is the registry of section variants. Build it once at
// startup and share it; it is read-only after construction.
type SectionCatalog struct {
	order []SectionType
	defs  map[SectionType]*SectionDefinition
}

type catalogFile struct {
	Sections []catalogEntry `yaml:"sections"`
}

type catalogEntry struct {
	Type           SectionType  `yaml:"type"`
	Label          string       `yaml:"label"`
	Icon           string       `yaml:"icon"`
	ContentKeys    []string     `yaml:"content_keys"`
	StyleKeys      []string     `yaml:"style_keys"`
	Personalizable []string     `yaml:"personalizable"`
	Content        yaml.Node    `yaml:"content"`
	Style          SectionStyle `yaml:"style"`
}

// NewSectionCatalog loads the built-in catalog
func NewSectionCatalog() (*SectionCatalog, error) {
	return NewSectionCatalogFromYAML(defaultCatalogYAML)
}

// MustSectionCatalog is NewSectionCatalog for callers that cannot recover
func MustSectionCatalog() *SectionCatalog {
	c, err := NewSectionCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// NewSectionCatalogFromYAML loads a catalog and checks that it is consistent:
// every variant appears once, defaults only use legal keys and personalizable
// keys are content keys.
func NewSectionCatalogFromYAML(data []byte) (*SectionCatalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, NewConfigurationError("failed to parse section catalog: %v", err)
	}

	c := &SectionCatalog{defs: make(map[SectionType]*SectionDefinition, len(file.Sections))}
	for _, entry := range file.Sections {
		if _, dup := c.defs[entry.Type]; dup {
			return nil, NewConfigurationError("section type %q is defined twice", entry.Type)
		}
		def, err := entry.definition()
		if err != nil {
			return nil, err
		}
		c.defs[entry.Type] = def
		c.order = append(c.order, entry.Type)
	}

	for _, t := range SectionTypes {
		if _, ok := c.defs[t]; !ok {
			return nil, NewConfigurationError("section type %q has no catalog entry", t)
		}
	}
	return c, nil
}

func (e catalogEntry) definition() (*SectionDefinition, error) {
	target, err := newBlock(e.Type)
	if err != nil {
		return nil, err
	}
	if e.Content.Kind != 0 {
		if err := e.Content.Decode(target); err != nil {
			return nil, NewConfigurationError("invalid default content for %s: %v", e.Type, err)
		}
	}
	block := derefBlock(target)

	contentKeys := toSet(e.ContentKeys)
	defaultKeys, err := blockKeys(block)
	if err != nil {
		return nil, err
	}
	for _, k := range defaultKeys {
		if !contentKeys[k] {
			return nil, NewConfigurationError("default content key %q is not declared for %s", k, e.Type)
		}
	}
	for _, k := range e.Personalizable {
		if !contentKeys[k] {
			return nil, NewConfigurationError("personalizable key %q is not a content key of %s", k, e.Type)
		}
	}
	styleKeys := toSet(e.StyleKeys)
	for _, k := range e.StyleKeys {
		if !IsStyleKey(k) {
			return nil, NewConfigurationError("unknown style key %q in %s", k, e.Type)
		}
	}
	for _, k := range e.Style.Keys() {
		if !styleKeys[k] {
			return nil, NewConfigurationError("default style key %q is not declared for %s", k, e.Type)
		}
	}

	return &SectionDefinition{
		Type:               e.Type,
		Label:              e.Label,
		Icon:               e.Icon,
		ContentKeys:        nonNil(e.ContentKeys),
		StyleKeys:          nonNil(e.StyleKeys),
		PersonalizableKeys: nonNil(e.Personalizable),
		Content:            block,
		Style:              e.Style,
	}, nil
}

// blockKeys returns the JSON keys a block serializes
func blockKeys(b Block) ([]string, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s content: %w", b.SectionType(), err)
	}
	m := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to encode %s content: %w", b.SectionType(), err)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys, nil
}

func toSet(keys []string) map[string]bool {
	out := make(map[string]bool, len(keys))
	for _, k := range keys {
		out[k] = true
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string(nil), s...)
}

func (c *SectionCatalog) definition(t SectionType) (*SectionDefinition, error) {
	def, ok := c.defs[t]
	if !ok {
		return nil, NewConfigurationError("section type %q is not registered", t)
	}
	return def, nil
}

// Definitions returns the variants in palette order
func (c *SectionCatalog) Definitions() []SectionDefinition {
	out := make([]SectionDefinition, 0, len(c.order))
	for _, t := range c.order {
		def := *c.defs[t]
		def.Content, _ = CloneBlock(def.Content)
		def.Style = def.Style.Clone()
		out = append(out, def)
	}
	return out
}

// DefaultsFor returns fresh copies of the starting content and style for t
func (c *SectionCatalog) DefaultsFor(t SectionType) (Block, SectionStyle, error) {
	def, err := c.definition(t)
	if err != nil {
		return nil, SectionStyle{}, err
	}
	block, err := CloneBlock(def.Content)
	if err != nil {
		return nil, SectionStyle{}, err
	}
	return block, def.Style.Clone(), nil
}

// NewSection returns a section of type t seeded with defaults and a fresh id
func (c *SectionCatalog) NewSection(t SectionType) (Section, error) {
	block, style, err := c.DefaultsFor(t)
	if err != nil {
		return Section{}, err
	}
	return Section{
		ID:    NewSectionID(),
		Type:  t,
		Block: block,
		Style: style,
	}, nil
}

// Label returns the palette label for t
func (c *SectionCatalog) Label(t SectionType) string {
	if def, ok := c.defs[t]; ok {
		return def.Label
	}
	return string(t)
}

func (c *SectionCatalog) AllowedContentKeys(t SectionType) ([]string, error) {
	def, err := c.definition(t)
	if err != nil {
		return nil, err
	}
	return nonNil(def.ContentKeys), nil
}

func (c *SectionCatalog) AllowedStyleKeys(t SectionType) ([]string, error) {
	def, err := c.definition(t)
	if err != nil {
		return nil, err
	}
	return nonNil(def.StyleKeys), nil
}

// PersonalizableKeys returns the content keys that receive token substitution
func (c *SectionCatalog) PersonalizableKeys(t SectionType) ([]string, error) {
	def, err := c.definition(t)
	if err != nil {
		return nil, err
	}
	return nonNil(def.PersonalizableKeys), nil
}

// IsPersonalizable reports whether key of variant t receives token substitution
func (c *SectionCatalog) IsPersonalizable(t SectionType, key string) bool {
	def, ok := c.defs[t]
	if !ok {
		return false
	}
	for _, k := range def.PersonalizableKeys {
		if k == key {
			return true
		}
	}
	return false
}
