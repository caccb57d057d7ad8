package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Field is one projected key/value pair. Value keeps the original JSON
// encoding untouched.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Project returns the top-level key/value pairs of raw whose key is in
// keys, preserving the record's original key order. The filter is flat:
// nested objects are never descended into. raw may be a single object
// or an array of objects; for an array the per-record projections are
// concatenated in record order.
func Project(raw json.RawMessage, keys ...string) ([]Field, error) {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}

	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode record list: %w", err)
		}
		var out []Field
		for _, rec := range records {
			fields, err := projectObject(rec, want)
			if err != nil {
				return nil, err
			}
			out = append(out, fields...)
		}
		return out, nil
	}

	return projectObject(trimmed, want)
}

func projectObject(raw json.RawMessage, want map[string]bool) ([]Field, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("decode record: expected object, got %v", tok)
	}

	var out []Field
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode record key: %w", err)
		}
		key := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode value of %q: %w", key, err)
		}
		if want[key] {
			out = append(out, Field{Key: key, Value: value})
		}
	}
	return out, nil
}

// FindFirst returns the first record whose top-level field equals want,
// or nil when no record matches. String values compare unquoted; other
// values compare by their raw JSON text.
func FindFirst(records []json.RawMessage, field, want string) json.RawMessage {
	for _, rec := range records {
		fields, err := Project(rec, field)
		if err != nil || len(fields) == 0 {
			continue
		}
		if rawEquals(fields[0].Value, want) {
			return rec
		}
	}
	return nil
}

func rawEquals(value json.RawMessage, want string) bool {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s == want
	}
	return strings.TrimSpace(string(value)) == want
}
