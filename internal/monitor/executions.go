package monitor

import (
	"context"
	"fmt"
)

const getJobExecutionsQuery = `
query getJobExecutions($customRuleUuid: String,
                       $monitorUuid: String,
                       $historyDays: Int,
                       $cursor: String,
                       $first: Int) {
  getJobExecutions(customRuleUuid: $customRuleUuid,
                   monitorUuid: $monitorUuid,
                   historyDays: $historyDays,
                   after: $cursor,
                   first: $first) {
    pageInfo {
      endCursor
      hasNextPage
    }
    edges {
      node {
        jobExecutionUuid
        startTime
        endTime
        status
        exceptions
        exceptionsDetail {
          type
          description
          sqlQuery
        }
      }
    }
  }
}`

// ExecutionOptions select a monitor's run history window.
type ExecutionOptions struct {
	MonitorUUID    string
	CustomRuleUUID string
	HistoryDays    int
	First          int
	Cursor         string
}

// ExecutionPage is one page of run history.
type ExecutionPage struct {
	Executions  []map[string]any
	EndCursor   string
	HasNextPage bool
}

// JobExecutions returns a page of monitor run executions.
func (c *Catalog) JobExecutions(ctx context.Context, opts ExecutionOptions) (*ExecutionPage, error) {
	historyDays := opts.HistoryDays
	if historyDays <= 0 {
		historyDays = 30
	}
	first := opts.First
	if first <= 0 {
		first = 100
	}
	variables := map[string]any{
		"historyDays": historyDays,
		"first":       first,
	}
	if opts.MonitorUUID != "" {
		variables["monitorUuid"] = opts.MonitorUUID
	}
	if opts.CustomRuleUUID != "" {
		variables["customRuleUuid"] = opts.CustomRuleUUID
	}
	if opts.Cursor != "" {
		variables["cursor"] = opts.Cursor
	}

	res, err := c.transport.Execute(ctx, getJobExecutionsQuery, variables)
	if err != nil {
		return nil, fmt.Errorf("get job executions: %w", err)
	}

	envelope := objectAt(res, "getJobExecutions")
	if envelope == nil {
		return nil, fmt.Errorf("get job executions: empty response")
	}

	page := &ExecutionPage{}
	if edges, ok := envelope["edges"].([]any); ok {
		for _, edge := range edges {
			edgeMap, ok := edge.(map[string]any)
			if !ok {
				continue
			}
			if node, ok := edgeMap["node"].(map[string]any); ok {
				page.Executions = append(page.Executions, node)
			}
		}
	}
	if info, ok := envelope["pageInfo"].(map[string]any); ok {
		page.EndCursor, _ = info["endCursor"].(string)
		page.HasNextPage, _ = info["hasNextPage"].(bool)
	}
	return page, nil
}
