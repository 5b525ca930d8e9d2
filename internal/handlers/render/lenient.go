package render

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"unicode"
)

// normalizeKeys reads a JSON object and folds top-level camelCase keys onto
// their snake_case spelling. A snake_case key always wins over its camelCase
// twin, so well-behaved clients are never affected. Non-object payloads pass
// through untouched.
func normalizeKeys(body io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	// Commands with only optional fields are often sent with no body at all
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err != nil {
		// Not an object (array, scalar, invalid); let the real decoder
		// produce the error message
		return raw, nil
	}

	normalized := make(map[string]json.RawMessage, len(object))
	for key, value := range object {
		canonical := snakeCase(key)
		if _, taken := normalized[canonical]; taken && canonical != key {
			continue
		}
		if canonical != key {
			if _, explicit := object[canonical]; explicit {
				continue
			}
		}
		normalized[canonical] = value
	}

	return json.Marshal(normalized)
}

func snakeCase(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)

	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
