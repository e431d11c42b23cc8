package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/petrijr/flowlight/pkg/api"
)

// State lists are stored in a single column as a JSON array of kinds. An
// empty or nil list is stored as the empty string.

func encodeStates(kinds []api.StateKind) (string, error) {
	if len(kinds) == 0 {
		return "", nil
	}
	data, err := json.Marshal(kinds)
	if err != nil {
		return "", fmt.Errorf("encode states: %w", err)
	}
	return string(data), nil
}

func decodeStates(s string) ([]api.StateKind, error) {
	if s == "" {
		return nil, nil
	}
	var kinds []api.StateKind
	if err := json.Unmarshal([]byte(s), &kinds); err != nil {
		return nil, fmt.Errorf("decode states %q: %w", s, err)
	}
	return kinds, nil
}
