// Package normalize deep-converts transport responses into plain values:
// map[string]any, []any and primitives only. The remote service's responses
// arrive in uneven shapes (enveloped or not, original camelCase keys or
// snake_case variants), so downstream code normalizes once and applies a
// single access pattern.
package normalize

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
)

// Plainer is implemented by values that know their own plain-map form.
// Plain delegates to it and then recurses over the result.
type Plainer interface {
	PlainMap() map[string]any
}

// Plain converts v into a value built only from map[string]any, []any and
// primitives, preserving logical shape and key names. Input must be acyclic
// (a decoded JSON-like payload). Idempotent and side-effect free.
func Plain(v any) any {
	if v == nil {
		return nil
	}

	if p, ok := v.(Plainer); ok {
		return plainMap(reflect.ValueOf(p.PlainMap()))
	}
	if t, ok := v.(time.Time); ok {
		return t.UTC().Format(time.RFC3339)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return Plain(rv.Elem().Interface())
	case reflect.Map:
		return plainMap(rv)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Plain(rv.Index(i).Interface())
		}
		return out
	case reflect.Struct:
		return plainStruct(rv)
	default:
		return v
	}
}

func plainMap(rv reflect.Value) map[string]any {
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key()
		var name string
		if key.Kind() == reflect.String {
			name = key.String()
		} else {
			name = fmt.Sprint(key.Interface())
		}
		out[name] = Plain(iter.Value().Interface())
	}
	return out
}

func plainStruct(rv reflect.Value) map[string]any {
	t := rv.Type()
	out := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		out[name] = Plain(rv.Field(i).Interface())
	}
	return out
}

var (
	firstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
	allCap   = regexp.MustCompile("([a-z0-9])([A-Z])")
)

// SnakeCase converts a camelCase field name to its snake_case variant, the
// locally-adapted casing some response shapes use.
func SnakeCase(name string) string {
	s := firstCap.ReplaceAllString(name, "${1}_${2}")
	s = allCap.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}
