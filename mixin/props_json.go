package mixin

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ParseProps converts a JSON object into a property mapping suitable for a
// static provider.
func ParseProps(data []byte) (map[string]Value, error) {
	raw, err := decodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("mixin: props parse failed: %w", err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("mixin: props must be a JSON object, got %T", raw)
	}
	props := make(map[string]Value, len(obj))
	for key, item := range obj {
		val, err := jsonValueToValue(item)
		if err != nil {
			return nil, fmt.Errorf("mixin: props key %s: %w", key, err)
		}
		props[key] = val
	}
	return props, nil
}

// ParseValue converts a single JSON value into a Value. Input with trailing
// data after the value is rejected, so "1.5.2" is an error rather than 1.5.
func ParseValue(data []byte) (Value, error) {
	raw, err := decodeJSON(data)
	if err != nil {
		return NewNil(), fmt.Errorf("mixin: value parse failed: %w", err)
	}
	val, err := jsonValueToValue(raw)
	if err != nil {
		return NewNil(), fmt.Errorf("mixin: %w", err)
	}
	return val, nil
}

var errTrailingData = errors.New("trailing data after value")

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return raw, nil
}

func jsonValueToValue(val any) (Value, error) {
	switch v := val.(type) {
	case nil:
		return NewNil(), nil
	case bool:
		return NewBool(v), nil
	case string:
		return NewString(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return NewInt(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return NewNil(), fmt.Errorf("invalid number %q", v.String())
		}
		return NewFloat(f), nil
	case float64:
		return NewFloat(v), nil
	case []any:
		arr := make([]Value, len(v))
		for i, item := range v {
			converted, err := jsonValueToValue(item)
			if err != nil {
				return NewNil(), err
			}
			arr[i] = converted
		}
		return NewArray(arr), nil
	case map[string]any:
		obj := make(map[string]Value, len(v))
		for key, item := range v {
			converted, err := jsonValueToValue(item)
			if err != nil {
				return NewNil(), err
			}
			obj[key] = converted
		}
		return NewHash(obj), nil
	default:
		return NewNil(), fmt.Errorf("unsupported value type %T", val)
	}
}
