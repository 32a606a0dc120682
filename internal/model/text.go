package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Text decodes a JSON string, list of strings or null into a single string.
// Lists are joined with ",".
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	list, err := decodeStrings(data)
	if err != nil {
		return err
	}
	*t = Text(strings.Join(list, ","))
	return nil
}

// List decodes a JSON string, list of strings or null into a list.
// A single non-empty string becomes a one-element list.
type List []string

func (l *List) UnmarshalJSON(data []byte) error {
	list, err := decodeStrings(data)
	if err != nil {
		return err
	}
	*l = list
	return nil
}

func (l List) Join(sep string) string {
	return strings.Join(l, sep)
}

func decodeStrings(data []byte) ([]string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		return []string{s}, nil
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		out := make([]string, 0, len(raw))
		for _, r := range raw {
			var s string
			if err := json.Unmarshal(r, &s); err != nil {
				// numbers and other scalars are kept in their JSON form
				s = string(bytes.TrimSpace(r))
			}
			if s != "" && s != "null" {
				out = append(out, s)
			}
		}
		return out, nil
	default:
		var v interface{}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return []string{fmt.Sprint(v)}, nil
	}
}
