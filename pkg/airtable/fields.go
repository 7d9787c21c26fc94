package airtable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList reads a field that may be a scalar or a list (lookup and
// linked-record fields come back as arrays).
type StringList []string

// UnmarshalJSON accepts null, a string, a number, a bool or an array of those.
func (s *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*s = nil
		return nil
	}
	if b[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		out := make(StringList, 0, len(items))
		for _, it := range items {
			v, err := scalar(it)
			if err != nil {
				return err
			}
			out = append(out, v)
		}
		*s = out
		return nil
	}
	v, err := scalar(b)
	if err != nil {
		return err
	}
	*s = StringList{v}
	return nil
}

func scalar(b json.RawMessage) (string, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return "", err
	}
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case float64, bool:
		return fmt.Sprint(x), nil
	default:
		return "", fmt.Errorf("unsupported list element %s", string(b))
	}
}

// String joins the values for display.
func (s StringList) String() string {
	return strings.Join(s, ", ")
}

// First returns the first value, or "".
func (s StringList) First() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
