package assets

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
)

// ProfilesJSON contains the built-in threshold profiles keyed by name. Each
// profile is a partial config document applied on top of the defaults.
//
//go:embed profiles.json
var ProfilesJSON []byte

// Profiles decodes the embedded profile set into raw per-profile documents.
func Profiles() (map[string]json.RawMessage, error) {
	if len(ProfilesJSON) == 0 {
		return nil, fmt.Errorf("embedded profiles.json is empty")
	}
	out := make(map[string]json.RawMessage)
	dec := json.NewDecoder(bytes.NewReader(ProfilesJSON))
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode profiles.json: %w", err)
	}
	return out, nil
}
