package rtbhouse

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// decodeRecord unmarshals one JSON object into T. Fields the record type does
// not declare are kept in its Extras bag under their wire names.
func decodeRecord[T any](data json.RawMessage) (T, error) {
	var rec T
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("decoding %T: %w", rec, err)
	}
	if setter, ok := any(&rec).(extraSetter); ok {
		extra, err := extraFields(data, reflect.TypeOf(rec))
		if err != nil {
			return rec, fmt.Errorf("decoding %T: %w", rec, err)
		}
		if len(extra) > 0 {
			setter.setExtra(extra)
		}
	}
	return rec, nil
}

// decodeRecords unmarshals a JSON array of objects into []T.
func decodeRecords[T any](data json.RawMessage) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var zero T
		return nil, fmt.Errorf("decoding list of %T: %w", zero, err)
	}
	out := make([]T, 0, len(raw))
	for _, item := range raw {
		rec, err := decodeRecord[T](item)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// extraFields returns the object's members whose names do not match any json
// tag of t.
func extraFields(data json.RawMessage, t reflect.Type) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	known := knownFields(t)
	for name := range raw {
		if _, ok := known[name]; ok {
			delete(raw, name)
		}
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

var knownFieldsCache sync.Map // reflect.Type -> map[string]struct{}

// knownFields collects the wire names a struct type declares via json tags,
// including promoted fields from embedded structs.
func knownFields(t reflect.Type) map[string]struct{} {
	if cached, ok := knownFieldsCache.Load(t); ok {
		return cached.(map[string]struct{})
	}
	names := map[string]struct{}{}
	collectFieldNames(t, names)
	knownFieldsCache.Store(t, names)
	return names
}

func collectFieldNames(t reflect.Type, names map[string]struct{}) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			collectFieldNames(field.Type, names)
			continue
		}
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}
		names[name] = struct{}{}
	}
}
