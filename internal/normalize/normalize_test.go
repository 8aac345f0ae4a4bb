package normalize_test

import (
	"reflect"
	"testing"

	"mcbulk/internal/normalize"
)

type wrapped struct {
	inner map[string]any
}

func (w wrapped) PlainMap() map[string]any { return w.inner }

type record struct {
	UUID    string         `json:"uuid"`
	Nested  map[string]any `json:"nested"`
	Skipped string         `json:"-"`
	hidden  int
}

func TestPlainTotality(t *testing.T) {
	input := map[string]any{
		"wrapper": wrapped{inner: map[string]any{
			"list": []any{wrapped{inner: map[string]any{"n": 1}}, "plain"},
		}},
		"struct": record{UUID: "m-1", Nested: map[string]any{"k": "v"}, Skipped: "x", hidden: 7},
		"tuple":  [2]any{"a", wrapped{inner: map[string]any{"b": true}}},
		"null":   nil,
	}

	got := normalize.Plain(input)

	want := map[string]any{
		"wrapper": map[string]any{
			"list": []any{map[string]any{"n": 1}, "plain"},
		},
		"struct": map[string]any{
			"uuid":   "m-1",
			"nested": map[string]any{"k": "v"},
		},
		"tuple": []any{"a", map[string]any{"b": true}},
		"null":  nil,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected result:\n got: %#v\nwant: %#v", got, want)
	}
}

func TestPlainIdempotence(t *testing.T) {
	input := map[string]any{
		"data": map[string]any{
			"getMonitors": []any{
				map[string]any{"uuid": "a", "alertIds": []any{"1", "2"}},
			},
		},
		"count": float64(2),
	}
	once := normalize.Plain(input)
	twice := normalize.Plain(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalizing twice changed the value:\n once: %#v\ntwice: %#v", once, twice)
	}
}

func TestPlainNil(t *testing.T) {
	if got := normalize.Plain(nil); got != nil {
		t.Fatalf("expected nil, got %#v", got)
	}
	var m map[string]any
	got, ok := normalize.Plain(m).(map[string]any)
	if !ok || len(got) != 0 {
		t.Fatalf("nil map should normalize to an empty map, got %#v", got)
	}
}

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"updateMonitorsSchedules":     "update_monitors_schedules",
		"updateMonitorDescription":    "update_monitor_description",
		"createOrUpdateCustomSqlRule": "create_or_update_custom_sql_rule",
		"uuid":                        "uuid",
		"alertIds":                    "alert_ids",
	}
	for in, want := range cases {
		if got := normalize.SnakeCase(in); got != want {
			t.Fatalf("SnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
