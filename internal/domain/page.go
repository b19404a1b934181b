package domain

import (
	"encoding/json"
	"fmt"
)

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

func (d MoveDirection) Validate() error {
	if d != MoveUp && d != MoveDown {
		return NewValidationError("direction must be up or down")
	}
	return nil
}

// Page is the ordered list of sections of one template. Order is the
// render order. Methods keep section ids unique.
type Page struct {
	Sections []Section
}

// NewPage wraps sections, rejecting duplicate or empty ids
func NewPage(sections []Section) (*Page, error) {
	p := &Page{Sections: sections}
	if p.Sections == nil {
		p.Sections = []Section{}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks id uniqueness and that every section has content
func (p *Page) Validate() error {
	seen := make(map[string]struct{}, len(p.Sections))
	for i, s := range p.Sections {
		if s.ID == "" {
			return NewValidationError(fmt.Sprintf("section at position %d has no id", i))
		}
		if _, dup := seen[s.ID]; dup {
			return NewValidationError(fmt.Sprintf("duplicate section id: %s", s.ID))
		}
		seen[s.ID] = struct{}{}
		if s.Block == nil {
			return NewConfigurationError("section %s has no content", s.ID)
		}
	}
	return nil
}

// Len returns the number of sections
func (p *Page) Len() int {
	return len(p.Sections)
}

// Index returns the position of id, or -1
func (p *Page) Index(id string) int {
	for i, s := range p.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the section with id
func (p *Page) Find(id string) (*Section, error) {
	i := p.Index(id)
	if i < 0 {
		return nil, NewNotFoundError("section", id)
	}
	return &p.Sections[i], nil
}

// Append adds s at the end
func (p *Page) Append(s Section) error {
	return p.Insert(s, len(p.Sections))
}

// Insert places s at index, clamped to the page bounds
func (p *Page) Insert(s Section, index int) error {
	if s.ID == "" {
		return NewValidationError("section id is required")
	}
	if p.Index(s.ID) >= 0 {
		return NewValidationError(fmt.Sprintf("duplicate section id: %s", s.ID))
	}
	if index < 0 {
		index = 0
	}
	if index > len(p.Sections) {
		index = len(p.Sections)
	}
	p.Sections = append(p.Sections, Section{})
	copy(p.Sections[index+1:], p.Sections[index:])
	p.Sections[index] = s
	return nil
}

// Move swaps the section with its neighbour. Moving past either end leaves the page unchanged.
func (p *Page) Move(id string, dir MoveDirection) error {
	if err := dir.Validate(); err != nil {
		return err
	}
	i := p.Index(id)
	if i < 0 {
		return NewNotFoundError("section", id)
	}
	j := i - 1
	if dir == MoveDown {
		j = i + 1
	}
	if j < 0 || j >= len(p.Sections) {
		return nil
	}
	p.Sections[i], p.Sections[j] = p.Sections[j], p.Sections[i]
	return nil
}

// Duplicate deep-copies the section with id, gives the copy newID and inserts
// it directly after the original.
func (p *Page) Duplicate(id, newID string) (*Section, error) {
	i := p.Index(id)
	if i < 0 {
		return nil, NewNotFoundError("section", id)
	}
	copied, err := p.Sections[i].Clone()
	if err != nil {
		return nil, err
	}
	copied.ID = newID
	if err := p.Insert(copied, i+1); err != nil {
		return nil, err
	}
	return &p.Sections[i+1], nil
}

// Remove deletes the section with id
func (p *Page) Remove(id string) error {
	i := p.Index(id)
	if i < 0 {
		return NewNotFoundError("section", id)
	}
	p.Sections = append(p.Sections[:i], p.Sections[i+1:]...)
	return nil
}

// Replace swaps in an updated version of an existing section, keeping its position
func (p *Page) Replace(s Section) error {
	i := p.Index(s.ID)
	if i < 0 {
		return NewNotFoundError("section", s.ID)
	}
	p.Sections[i] = s
	return nil
}

// UpdateContent applies a field-level content patch to the section with id
func (p *Page) UpdateContent(catalog *SectionCatalog, id string, patch map[string]json.RawMessage) (*Section, error) {
	s, err := p.Find(id)
	if err != nil {
		return nil, err
	}
	allowed, err := catalog.AllowedContentKeys(s.SectionType())
	if err != nil {
		return nil, err
	}
	block, err := ApplyContentPatch(s.Block, patch, allowed)
	if err != nil {
		return nil, err
	}
	s.Block = block
	return s, nil
}

// UpdateStyle applies a field-level style patch to the section with id
func (p *Page) UpdateStyle(catalog *SectionCatalog, id string, patch map[string]json.RawMessage) (*Section, error) {
	s, err := p.Find(id)
	if err != nil {
		return nil, err
	}
	allowed, err := catalog.AllowedStyleKeys(s.SectionType())
	if err != nil {
		return nil, err
	}
	style, err := ApplyStylePatch(s.Style, patch, allowed)
	if err != nil {
		return nil, err
	}
	s.Style = style
	return s, nil
}
