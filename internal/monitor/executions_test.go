package monitor_test

import (
	"context"
	"testing"

	"mcbulk/internal/logging"
	"mcbulk/internal/monitor"
)

func TestJobExecutionsWalksEdges(t *testing.T) {
	transport := &fakeTransport{
		respond: func(_ string, variables map[string]any) (map[string]any, error) {
			if variables["monitorUuid"] != "m-1" || variables["historyDays"] != 7 {
				t.Fatalf("unexpected variables: %v", variables)
			}
			return map[string]any{"data": map[string]any{"getJobExecutions": map[string]any{
				"pageInfo": map[string]any{"endCursor": "abc", "hasNextPage": true},
				"edges": []any{
					map[string]any{"node": map[string]any{"jobExecutionUuid": "e-1", "status": "SUCCESS"}},
					map[string]any{"node": map[string]any{"jobExecutionUuid": "e-2", "status": "FAILED"}},
				},
			}}}, nil
		},
	}
	catalog := monitor.NewCatalog(transport, logging.Discard())

	page, err := catalog.JobExecutions(context.Background(), monitor.ExecutionOptions{
		MonitorUUID: "m-1",
		HistoryDays: 7,
	})
	if err != nil {
		t.Fatalf("job executions failed: %v", err)
	}
	if len(page.Executions) != 2 || page.Executions[1]["status"] != "FAILED" {
		t.Fatalf("unexpected executions: %v", page.Executions)
	}
	if page.EndCursor != "abc" || !page.HasNextPage {
		t.Fatalf("unexpected page info: %+v", page)
	}
}

func TestJobExecutionsDefaults(t *testing.T) {
	transport := &fakeTransport{
		respond: func(_ string, variables map[string]any) (map[string]any, error) {
			if variables["historyDays"] != 30 || variables["first"] != 100 {
				t.Fatalf("defaults not applied: %v", variables)
			}
			if _, ok := variables["cursor"]; ok {
				t.Fatalf("empty cursor must be omitted: %v", variables)
			}
			return map[string]any{"data": map[string]any{"getJobExecutions": map[string]any{}}}, nil
		},
	}
	catalog := monitor.NewCatalog(transport, logging.Discard())

	page, err := catalog.JobExecutions(context.Background(), monitor.ExecutionOptions{})
	if err != nil {
		t.Fatalf("job executions failed: %v", err)
	}
	if len(page.Executions) != 0 || page.HasNextPage {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestJobExecutionsEmptyResponseErrors(t *testing.T) {
	transport := &fakeTransport{
		respond: func(string, map[string]any) (map[string]any, error) {
			return map[string]any{"data": map[string]any{}}, nil
		},
	}
	catalog := monitor.NewCatalog(transport, logging.Discard())

	if _, err := catalog.JobExecutions(context.Background(), monitor.ExecutionOptions{}); err == nil {
		t.Fatalf("expected error on missing envelope")
	}
}
