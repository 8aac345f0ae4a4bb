package monitor_test

import (
	"context"
	"strings"
	"testing"

	"mcbulk/internal/logging"
	"mcbulk/internal/monitor"
)

// fakeTransport records every operation and answers from a scripted respond
// function.
type fakeTransport struct {
	calls   []transportCall
	respond func(operation string, variables map[string]any) (map[string]any, error)
}

type transportCall struct {
	operation string
	variables map[string]any
}

func (f *fakeTransport) Execute(_ context.Context, operation string, variables map[string]any) (map[string]any, error) {
	f.calls = append(f.calls, transportCall{operation: operation, variables: variables})
	if f.respond == nil {
		return map[string]any{"data": map[string]any{}}, nil
	}
	return f.respond(operation, variables)
}

func monitorRows(rows ...map[string]any) map[string]any {
	list := make([]any, len(rows))
	for i, row := range rows {
		list[i] = row
	}
	return map[string]any{"data": map[string]any{"getMonitors": list}}
}

func TestListBuildsVariablesAndDecodesRows(t *testing.T) {
	transport := &fakeTransport{
		respond: func(_ string, _ map[string]any) (map[string]any, error) {
			return monitorRows(
				map[string]any{"uuid": "a", "monitorType": "VALIDATION", "name": "first", "alertIds": []any{"x"}},
				map[string]any{"uuid": "b", "monitorType": "COMPARISON", "name": "second"},
			), nil
		},
	}
	catalog := monitor.NewCatalog(transport, logging.Discard())

	got, err := catalog.List(context.Background(), monitor.ListOptions{
		Limit: 10,
		Types: []monitor.Type{monitor.TypeValidation},
		UUIDs: []string{"a", "b"},
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 monitors, got %d", len(got))
	}
	if got[0].UUID != "a" || got[0].MonitorType != monitor.TypeValidation || got[0].AlertIDs[0] != "x" {
		t.Fatalf("unexpected first summary: %+v", got[0])
	}

	vars := transport.calls[0].variables
	if vars["limit"] != 10 {
		t.Fatalf("limit not passed: %v", vars)
	}
	if _, ok := vars["monitorTypes"]; !ok {
		t.Fatalf("monitorTypes not passed: %v", vars)
	}
	if _, ok := vars["labels"]; ok {
		t.Fatalf("empty filters must be omitted: %v", vars)
	}
}

func TestListHandlesBareEnvelope(t *testing.T) {
	transport := &fakeTransport{
		respond: func(_ string, _ map[string]any) (map[string]any, error) {
			return map[string]any{"getMonitors": []any{
				map[string]any{"uuid": "c", "monitorType": "STATS"},
			}}, nil
		},
	}
	catalog := monitor.NewCatalog(transport, logging.Discard())

	got, err := catalog.List(context.Background(), monitor.ListOptions{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 || got[0].UUID != "c" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestSelectByUUIDSkipsUnknown(t *testing.T) {
	catalog := monitor.NewCatalog(&fakeTransport{}, logging.Discard())
	monitors := []monitor.Summary{{UUID: "a"}, {UUID: "b"}}

	got := catalog.SelectByUUID(monitors, []string{"b", "c"})
	if len(got) != 1 || got[0].UUID != "b" {
		t.Fatalf("unexpected selection: %+v", got)
	}
}

func TestListDefaultLimit(t *testing.T) {
	transport := &fakeTransport{}
	catalog := monitor.NewCatalog(transport, logging.Discard())

	if _, err := catalog.List(context.Background(), monitor.ListOptions{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if transport.calls[0].variables["limit"] != 100 {
		t.Fatalf("expected default limit 100, got %v", transport.calls[0].variables["limit"])
	}
	if !strings.Contains(transport.calls[0].operation, "getMonitors") {
		t.Fatalf("unexpected operation: %s", transport.calls[0].operation)
	}
}
