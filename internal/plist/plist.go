// Package plist is a thin wrapper around howett.net/plist that decodes
// either XML or binary property lists into a generic map and reads string
// values out of it.
package plist

import "howett.net/plist"

// Decode parses XML or binary property list data (format is auto-detected
// by the underlying decoder) into a generic key-value map.
func Decode(data []byte) (map[string]interface{}, error) {
	var v map[string]interface{}
	if _, err := plist.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// String returns the string value stored under key in m, or ("", false) if
// the key is absent or its value isn't a string.
func String(m map[string]interface{}, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
