package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type listEnvelope struct {
	Results []json.RawMessage `json:"results"`
}

// DecodeList returns the items of a list response. The backend answers either
// with a bare array or with a paginated object carrying the items in "results";
// an object without results is an empty list.
func DecodeList(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []json.RawMessage{}, nil
	}

	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	case '{':
		var envelope listEnvelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("decode list envelope: %w", err)
		}
		if envelope.Results == nil {
			return []json.RawMessage{}, nil
		}
		return envelope.Results, nil
	default:
		return nil, fmt.Errorf("decode list: unexpected payload %q", truncate(string(data), 32))
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
