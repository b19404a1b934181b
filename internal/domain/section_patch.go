package domain

import (
	"encoding/json"
	"fmt"
)

// ApplyContentPatch sets the given content keys on a copy of b and returns it.
// Keys outside allowed are rejected; values are type-checked by decoding into
// the variant's block.
func ApplyContentPatch(b Block, patch map[string]json.RawMessage, allowed []string) (Block, error) {
	if b == nil {
		return nil, NewConfigurationError("section has no content")
	}
	permitted := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		permitted[k] = true
	}

	raw, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s content: %w", b.SectionType(), err)
	}
	current := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &current); err != nil {
		return nil, fmt.Errorf("failed to encode %s content: %w", b.SectionType(), err)
	}

	for key, value := range patch {
		if !permitted[key] {
			return nil, NewValidationError(fmt.Sprintf("content key %q is not allowed for %s sections", key, b.SectionType()))
		}
		current[key] = value
	}

	merged, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s content: %w", b.SectionType(), err)
	}
	return DecodeBlock(b.SectionType(), merged)
}
