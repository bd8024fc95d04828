package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"
)

// NowISO returns the current UTC time in the ISO-8601 form used by every
// persisted timestamp in the collections.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// knownKeys collects the JSON field names of v's struct type so that
// unmarshalling can separate recognized fields from the rest.
func knownKeys(v any) map[string]struct{} {
	t := reflect.Indirect(reflect.ValueOf(v)).Type()
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		keys[name] = struct{}{}
	}
	return keys
}

// unmarshalWithExtra decodes data into v and captures any top-level fields
// the struct does not declare. Records written by older or newer versions of
// the collections keep their unknown fields across a read-modify-write cycle.
func unmarshalWithExtra(data []byte, v any, extra *map[string]json.RawMessage) error {
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range knownKeys(v) {
		delete(raw, k)
	}
	if len(raw) > 0 {
		*extra = raw
	}
	return nil
}

// marshalWithExtra encodes v and merges back any preserved unknown fields.
// Declared fields win on a name collision.
func marshalWithExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	base, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return base, nil
	}
	merged := make(map[string]json.RawMessage, len(extra)+8)
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, val := range extra {
		if _, ok := merged[k]; !ok {
			merged[k] = val
		}
	}
	return json.Marshal(merged)
}
