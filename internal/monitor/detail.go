package monitor

import (
	"context"
	"fmt"
)

const getCustomRuleQuery = `
query getCustomRule($ruleId: String!) {
  getCustomRule(ruleId: $ruleId) {
    intervalMinutes
    comparisons {
      comparisonType
      metric
      operator
      threshold
    }
    description
    timezone
    startTime
    customSql
  }
}`

const validationDetailQuery = `
query getMonitorByUuid($uuids: [String]) {
  getMonitors(uuids: $uuids) {
    uuid
    name
    description
    monitorType
    consolidatedMonitorStatus
    dataQualityDimension
    createdTime
    prevExecutionTime
  }
}`

const comparisonRuleQuery = `
query getComparisonRule($uuids: [String]) {
  getMonitors(uuids: $uuids) {
    uuid
    name
    description
    monitorType
    consolidatedMonitorStatus
    dataQualityDimension
    createdTime
    prevExecutionTime
  }
}`

// statsRuleQuery reuses the comparison query shape: the API does not expose
// metric-specific sub-fields through this path yet.
const statsRuleQuery = `
query getMetricMonitor($uuids: [String]) {
  getMonitors(uuids: $uuids) {
    uuid
    name
    description
    monitorType
    consolidatedMonitorStatus
    dataQualityDimension
    createdTime
    prevExecutionTime
  }
}`

// Details fetches a monitor's full configuration through the query shape its
// type requires. Types without a dedicated query pass the summary through
// unchanged. An empty result means "skip this monitor": it is logged here and
// must never crash a caller.
func (c *Catalog) Details(ctx context.Context, m Summary) (Detail, error) {
	if m.UUID == "" {
		return nil, ErrMissingIdentifier
	}

	switch m.MonitorType {
	case TypeCustomSQL:
		detail, err := c.CustomRule(ctx, m.UUID)
		if err != nil {
			return nil, err
		}
		c.logger.Info("retrieved custom SQL monitor details", "uuid", m.UUID)
		return detail, nil
	case TypeValidation:
		return c.validationDetails(ctx, m)
	case TypeComparison:
		detail, err := c.monitorRow(ctx, comparisonRuleQuery, m.UUID)
		if err != nil {
			return nil, err
		}
		c.logger.Info("retrieved comparison monitor details", "uuid", m.UUID)
		return detail, nil
	case TypeMetric, TypeStats:
		detail, err := c.monitorRow(ctx, statsRuleQuery, m.UUID)
		if err != nil {
			return nil, err
		}
		c.logger.Info("retrieved monitor details", "type", m.MonitorType, "uuid", m.UUID)
		return detail, nil
	default:
		c.logger.Info("no detail query for monitor type, using summary", "type", m.MonitorType, "uuid", m.UUID)
		return m.AsDetail(), nil
	}
}

// CustomRule fetches the underlying configuration of a custom SQL monitor.
func (c *Catalog) CustomRule(ctx context.Context, ruleID string) (Detail, error) {
	res, err := c.transport.Execute(ctx, getCustomRuleQuery, map[string]any{"ruleId": ruleID})
	if err != nil {
		return nil, fmt.Errorf("get custom rule %s: %w", ruleID, err)
	}
	rule := objectAt(res, "getCustomRule")
	if rule == nil {
		c.logger.Error("custom rule not found", "uuid", ruleID)
		return nil, nil
	}
	rule["uuid"] = ruleID
	rule["monitorType"] = string(TypeCustomSQL)
	return rule, nil
}

// validationDetails seeds the detail with the summary fields and merges the
// refined query's row on top; refined fields win on key collision. A failed
// refinement falls back to the seeded fields.
func (c *Catalog) validationDetails(ctx context.Context, m Summary) (Detail, error) {
	detail := Detail{
		"uuid":        m.UUID,
		"name":        m.Name,
		"description": m.Description,
		"monitorType": string(TypeValidation),
	}

	row, err := c.monitorRow(ctx, validationDetailQuery, m.UUID)
	if err != nil {
		c.logger.Error("validation detail query failed, using basic info", "uuid", m.UUID, "error", err)
		return detail, nil
	}
	for key, value := range row {
		detail[key] = value
	}
	c.logger.Info("retrieved validation monitor details", "uuid", m.UUID)
	return detail, nil
}

// monitorRow runs a single-monitor query and returns its first row.
func (c *Catalog) monitorRow(ctx context.Context, query, uuid string) (Detail, error) {
	res, err := c.transport.Execute(ctx, query, map[string]any{"uuids": []string{uuid}})
	if err != nil {
		return nil, err
	}
	rows := rowsAt(res, "getMonitors")
	if len(rows) == 0 {
		c.logger.Error("monitor not found", "uuid", uuid)
		return nil, nil
	}
	return rows[0], nil
}
