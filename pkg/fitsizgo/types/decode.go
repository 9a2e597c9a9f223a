package types

import (
	"encoding/json"
	"reflect"
)

// decodeObject decodes a JSON object into known and returns its raw keys.
// A key whose value doesn't fit the Go field is left unset instead of
// failing the whole record; its raw value is still in the returned map.
func decodeObject(data []byte, known any) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, known); err == nil {
		return fields, nil
	}
	reflect.ValueOf(known).Elem().SetZero()
	for key, value := range fields {
		single, err := json.Marshal(map[string]json.RawMessage{key: value})
		if err != nil {
			continue
		}
		_ = json.Unmarshal(single, known)
	}
	return fields, nil
}

// DecodeList decodes a JSON array element by element, dropping elements
// that aren't objects.
func DecodeList[T any](data []byte) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	items := make([]T, 0, len(raw))
	for _, element := range raw {
		var item T
		if err := json.Unmarshal(element, &item); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
