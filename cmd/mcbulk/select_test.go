package main

import (
	"testing"

	"mcbulk/internal/monitor"
)

func TestParseSelectionAll(t *testing.T) {
	monitors := []monitor.Summary{{UUID: "a"}, {UUID: "b"}}
	got, err := parseSelection("ALL", monitors)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected all monitors, got %d", len(got))
	}
}

func TestParseSelectionIndices(t *testing.T) {
	monitors := []monitor.Summary{{UUID: "a"}, {UUID: "b"}, {UUID: "c"}}
	got, err := parseSelection(" 3, 1 ", monitors)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(got) != 2 || got[0].UUID != "c" || got[1].UUID != "a" {
		t.Fatalf("unexpected selection: %+v", got)
	}
}

func TestParseSelectionDropsOutOfRange(t *testing.T) {
	monitors := []monitor.Summary{{UUID: "a"}}
	got, err := parseSelection("1,5,0", monitors)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(got) != 1 || got[0].UUID != "a" {
		t.Fatalf("unexpected selection: %+v", got)
	}
}

func TestParseSelectionRejectsGarbage(t *testing.T) {
	if _, err := parseSelection("1,x", []monitor.Summary{{UUID: "a"}}); err == nil {
		t.Fatalf("expected error for non-numeric token")
	}
}

func TestSplitUUIDs(t *testing.T) {
	got := splitUUIDs(" a, b ,,c ")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected uuids: %v", got)
	}
}
