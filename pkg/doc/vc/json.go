/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vc

import (
	"encoding/json"
	"fmt"
)

// CustomFields is a map of extra fields of struct build when unmarshalling JSON which are not
// mapped to the struct fields.
type CustomFields map[string]interface{}

// marshalWithCustomFields marshals value merged with custom fields defined in the map into JSON bytes.
func marshalWithCustomFields(v interface{}, cf map[string]interface{}) ([]byte, error) {
	vm, err := toMap(v)
	if err != nil {
		return nil, err
	}

	for k, val := range cf {
		if _, exists := vm[k]; !exists {
			vm[k] = val
		}
	}

	return json.Marshal(vm)
}

// unmarshalWithCustomFields unmarshals JSON into value v and puts all JSON fields which do not belong to value
// into custom fields map cf.
func unmarshalWithCustomFields(data []byte, v interface{}, cf map[string]interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}

	vData, err := json.Marshal(v)
	if err != nil {
		return err
	}

	var vf map[string]interface{}

	if err = json.Unmarshal(vData, &vf); err != nil {
		return err
	}

	var af map[string]interface{}

	if err = json.Unmarshal(data, &af); err != nil {
		return err
	}

	for k, val := range af {
		if _, ok := vf[k]; !ok {
			cf[k] = val
		}
	}

	return nil
}

func toMap(v interface{}) (map[string]interface{}, error) {
	var (
		b   []byte
		err error
	)

	switch cv := v.(type) {
	case []byte:
		b = cv
	case string:
		b = []byte(cv)
	default:
		b, err = json.Marshal(v)
		if err != nil {
			return nil, err
		}
	}

	var m map[string]interface{}

	if err = json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("convert to map: %w", err)
	}

	return m, nil
}

// stringOrArray decodes a JSON value that is either a single string or an array of strings.
func stringOrArray(v interface{}) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{t}, nil
	case []string:
		return t, nil
	case []interface{}:
		result := make([]string, 0, len(t))

		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("array item is not a string: %v", item)
			}

			result = append(result, s)
		}

		return result, nil
	default:
		return nil, fmt.Errorf("value is neither a string nor an array: %T", v)
	}
}

// singleOrArray returns a single item as itself and several items as a slice.
func singleOrArray(items []string) interface{} {
	if len(items) == 0 {
		return nil
	}

	if len(items) == 1 {
		return items[0]
	}

	return items
}
