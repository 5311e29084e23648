// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package profile

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"

	"github.com/propmap/propmap/pkg/types"
)

var (
	allowedValuesType = reflect.TypeOf([]types.AllowedValue{})
	defaultValuesType = reflect.TypeOf([]types.DefaultValue{})
	specialFlagType   = reflect.TypeOf(types.SpecialFlag{})
)

// Decode copies a raw export value into out. CMS exports carry numbers and
// flags as strings, so scalars are coerced loosely.
func Decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			allowedValuesHook,
			defaultValuesHook,
			specialFlagHook,
			scalarHook,
		),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("failed to decode: %w", err)
	}
	return nil
}

// DecodeFlags decodes content type settings. Each setting is either a
// scalar default or a map of SpecialFlag attributes.
func DecodeFlags(raw map[string]any) (*types.ContentTypeFlags, error) {
	flags := &types.ContentTypeFlags{}
	if raw == nil {
		return flags, nil
	}
	if err := Decode(raw, flags); err != nil {
		return nil, fmt.Errorf("failed to decode content type settings: %w", err)
	}
	return flags, nil
}

// AllowedValues converts an option list into ordered key/label pairs. Maps
// are ordered by key, numeric keys first.
func AllowedValues(data any) ([]types.AllowedValue, error) {
	var out []types.AllowedValue
	if data == nil {
		return out, nil
	}
	if err := Decode(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func allowedValuesHook(from, to reflect.Type, data any) (any, error) {
	if to != allowedValuesType {
		return data, nil
	}

	v := reflect.ValueOf(data)
	switch from.Kind() {
	case reflect.Map:
		entries := make([]any, 0, v.Len())
		for _, k := range sortedKeys(v) {
			label, err := cast.ToStringE(v.MapIndex(k).Interface())
			if err != nil {
				return nil, fmt.Errorf("invalid label for option %v: %w", k.Interface(), err)
			}
			entries = append(entries, map[string]any{"key": cast.ToString(k.Interface()), "label": label})
		}
		return entries, nil

	case reflect.Slice, reflect.Array:
		entries := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			item := v.Index(i).Interface()
			if isScalar(item) {
				s := cast.ToString(item)
				item = map[string]any{"key": s, "label": s}
			}
			entries = append(entries, item)
		}
		return entries, nil
	}

	return data, nil
}

func defaultValuesHook(from, to reflect.Type, data any) (any, error) {
	if to != defaultValuesType {
		return data, nil
	}

	switch from.Kind() {
	case reflect.Map:
		return []any{data}, nil

	case reflect.Slice, reflect.Array:
		v := reflect.ValueOf(data)
		entries := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			item := v.Index(i).Interface()
			if isScalar(item) {
				item = map[string]any{"value": cast.ToString(item)}
			}
			entries = append(entries, item)
		}
		return entries, nil
	}

	if isScalar(data) {
		return []any{map[string]any{"value": cast.ToString(data)}}, nil
	}
	return data, nil
}

func specialFlagHook(from, to reflect.Type, data any) (any, error) {
	if to != specialFlagType || from.Kind() == reflect.Map {
		return data, nil
	}
	return map[string]any{"default_value": cast.ToString(data)}, nil
}

// scalarHook coerces string and numeric scalars across kinds.
func scalarHook(from, to reflect.Type, data any) (any, error) {
	if !isScalar(data) {
		return data, nil
	}

	switch to.Kind() {
	case reflect.Bool:
		if s, ok := data.(string); ok {
			switch strings.ToLower(strings.TrimSpace(s)) {
			case "", "0", "false", "no", "off":
				return false, nil
			case "1", "true", "yes", "on":
				return true, nil
			}
		}
		return cast.ToBoolE(data)

	case reflect.Int, reflect.Int64, reflect.Int32:
		if s, ok := data.(string); ok && strings.TrimSpace(s) == "" {
			return 0, nil
		}
		if from.Kind() == reflect.String || isFloat(from.Kind()) || from.Kind() == reflect.Bool {
			n, err := cast.ToInt64E(strings.TrimSpace(cast.ToString(data)))
			if err != nil {
				return nil, err
			}
			return n, nil
		}

	case reflect.String:
		if from.Kind() != reflect.String {
			return cast.ToStringE(data)
		}
	}

	return data, nil
}

func isScalar(data any) bool {
	switch data.(type) {
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// sortedKeys orders map keys numerically where possible, then lexically.
func sortedKeys(v reflect.Value) []reflect.Value {
	keys := v.MapKeys()
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := cast.ToString(keys[i].Interface()), cast.ToString(keys[j].Interface())
		na, errA := strconv.Atoi(a)
		nb, errB := strconv.Atoi(b)
		switch {
		case errA == nil && errB == nil:
			return na < nb
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return a < b
	})
	return keys
}
