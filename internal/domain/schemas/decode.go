package schemas

import (
	"bytes"
	"encoding/json"
	"errors"
)

const rootField = "details"

// decodeObject unmarshals raw into v. Payloads must be JSON objects; type
// mismatches are reported as the offending field path.
func decodeObject(raw json.RawMessage, v any) []string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return []string{rootField}
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return []string{typeErr.Field}
		}
		return []string{rootField}
	}
	return nil
}

// IsEmpty reports whether raw carries no payload at all ("", null or {}).
func IsEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return false
	}
	return len(m) == 0
}

// Canonical compacts raw so that storing and reloading yields the same bytes.
func Canonical(raw json.RawMessage) (json.RawMessage, error) {
	if IsEmpty(raw) {
		return json.RawMessage("{}"), nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}
