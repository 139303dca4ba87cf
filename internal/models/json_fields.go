package models

import (
	"bytes"
	"encoding/json"
)

// DecodeStringList decodes raw as a JSON array of strings. It reports false
// for absent input and for any other JSON shape, in which case callers keep
// their stored value as is.
func DecodeStringList(raw json.RawMessage) ([]string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}

	var list []string
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, false
	}
	if list == nil {
		list = []string{}
	}

	return list, true
}

// DecodeStringListValue is DecodeStringList for values that were already
// decoded into interface{} (e.g. fields of a provider response).
func DecodeStringListValue(v interface{}) ([]string, bool) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}

	list := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		list = append(list, s)
	}

	return list, true
}
