package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"mcbulk/internal/normalize"
)

const updateSchedulesMutation = `
mutation updateMonitorsSchedules($monitorUuids: [UUID!]!, $scheduleConfig: ScheduleConfigInput!) {
  updateMonitorsSchedules(
    monitorUuids: $monitorUuids
    scheduleConfig: $scheduleConfig
  ) {
    success
  }
}`

const updateDescriptionMutation = `
mutation updateMonitorDescription($monitorUuid: UUID!, $description: String!) {
  updateMonitorDescription(monitorUuid: $monitorUuid, description: $description) {
    success
  }
}`

const createOrUpdateComparisonMutation = `
mutation createOrUpdateComparisonRule($input: CreateOrUpdateComparisonRuleInput!) {
  createOrUpdateComparisonRule(input: $input) {
    comparisonRule {
      uuid
    }
  }
}`

const createOrUpdateCustomSQLMutation = `
mutation createOrUpdateCustomSqlRule($input: CreateOrUpdateCustomSqlRuleInput!) {
  createOrUpdateCustomSqlRule(input: $input) {
    customRule {
      uuid
      creatorId
      description
    }
  }
}`

const createOrUpdateMetricMonitorMutation = `
mutation createOrUpdateMetricMonitor($input: CreateOrUpdateMetricMonitorInput!) {
  createOrUpdateMetricMonitor(input: $input) {
    metricMonitor {
      uuid
      name
      description
      createdBy {
        email
      }
    }
  }
}`

// ApplyUpdate merges updates into a monitor's detailed configuration and
// routes the result to the mutation its type requires. The returned mapping
// summarizes the applied state. No transport or parsing failure escapes as a
// panic; everything converts to an error local to this monitor.
func (c *Catalog) ApplyUpdate(ctx context.Context, detail Detail, updates Updates) (map[string]any, error) {
	uuid, _ := detail["uuid"].(string)
	if uuid == "" {
		return nil, ErrMissingIdentifier
	}

	merged := make(Detail, len(detail)+len(updates))
	for key, value := range detail {
		merged[key] = value
	}
	for key, value := range updates {
		merged[key] = value
	}
	merged["uuid"] = uuid

	monitorType, _ := detail["monitorType"].(string)
	switch Type(monitorType) {
	case TypeValidation:
		return c.updateValidation(ctx, uuid, merged, updates)
	case TypeCustomSQL:
		return c.CreateOrUpdateCustomSQLRule(ctx, merged)
	case TypeComparison:
		return c.updateComparison(ctx, merged)
	case TypeMetric, TypeStats:
		return c.CreateOrUpdateMetricMonitor(ctx, merged)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, monitorType)
	}
}

// updateValidation issues up to two independent mutations, one per updatable
// field present in updates. Partial success counts as success; zero attempted
// operations is a warned no-op, not a failure.
func (c *Catalog) updateValidation(ctx context.Context, uuid string, merged Detail, updates Updates) (map[string]any, error) {
	attempted, succeeded := 0, 0

	if scheduleRaw, ok := updates["scheduleConfig"]; ok {
		attempted++
		schedule, _ := normalize.Plain(scheduleRaw).(map[string]any)
		variables := map[string]any{
			"monitorUuids":   []string{uuid},
			"scheduleConfig": scheduleInput(schedule),
		}
		res, err := c.transport.Execute(ctx, updateSchedulesMutation, variables)
		switch {
		case err != nil:
			c.logger.Error("schedule update failed", "uuid", uuid, "error", err)
		case successSignal(res, "updateMonitorsSchedules"):
			c.logger.Info("updated schedule", "uuid", uuid)
			succeeded++
		default:
			c.logger.Error("schedule update rejected", "uuid", uuid)
		}
	}

	if description, ok := updates["description"]; ok {
		attempted++
		variables := map[string]any{
			"monitorUuid": uuid,
			"description": description,
		}
		res, err := c.transport.Execute(ctx, updateDescriptionMutation, variables)
		switch {
		case err != nil:
			c.logger.Error("description update failed", "uuid", uuid, "error", err)
		case successSignal(res, "updateMonitorDescription"):
			c.logger.Info("updated description", "uuid", uuid)
			succeeded++
		default:
			c.logger.Error("description update rejected", "uuid", uuid)
		}
	}

	if attempted == 0 {
		c.logger.Warn("no update operations attempted", "uuid", uuid)
		return map[string]any{"uuid": uuid}, nil
	}
	if succeeded == 0 {
		return nil, fmt.Errorf("validation monitor %s: %w", uuid, ErrRejected)
	}

	c.logger.Info("validation update complete", "uuid", uuid, "succeeded", succeeded, "attempted", attempted)
	return map[string]any{
		"uuid":           uuid,
		"description":    merged["description"],
		"scheduleConfig": normalize.Plain(merged["scheduleConfig"]),
	}, nil
}

// updateComparison sends the full merged configuration; success is judged
// solely by the absence of an errors key in the normalized response.
func (c *Catalog) updateComparison(ctx context.Context, merged Detail) (map[string]any, error) {
	uuid, _ := merged["uuid"].(string)
	input := normalize.Plain(merged)
	res, err := c.transport.Execute(ctx, createOrUpdateComparisonMutation, map[string]any{"input": input})
	if err != nil {
		return nil, fmt.Errorf("update comparison rule %s: %w", uuid, err)
	}
	if hasErrors(res) {
		return nil, fmt.Errorf("comparison rule %s: %w", uuid, ErrRejected)
	}
	c.logger.Info("updated comparison rule", "uuid", uuid)
	return map[string]any{
		"uuid":        uuid,
		"description": merged["description"],
	}, nil
}

// CreateOrUpdateCustomSQLRule creates or updates a custom SQL monitor. All
// mandatory fields must be present simultaneously or the call fails before
// touching the transport. A present uuid selects update semantics server-side.
func (c *Catalog) CreateOrUpdateCustomSQLRule(ctx context.Context, params Detail) (map[string]any, error) {
	input := map[string]any{}
	for _, field := range []string{"description", "dwId", "sql", "scheduleConfig", "alertCondition"} {
		value := normalize.Plain(params[field])
		if missing(value) {
			return nil, fmt.Errorf("%w: %s", ErrMissingRequiredFields, field)
		}
		input[field] = value
	}
	uuid, _ := params["uuid"].(string)
	if uuid != "" {
		input["uuid"] = uuid
	}

	res, err := c.transport.Execute(ctx, createOrUpdateCustomSQLMutation, map[string]any{"input": input})
	if err != nil {
		return nil, fmt.Errorf("create or update custom SQL rule: %w", err)
	}
	rule := entityFromResponse(res, "createOrUpdateCustomSqlRule", "customRule")
	if rule == nil {
		return nil, fmt.Errorf("custom SQL rule %s: %w", uuid, ErrRejected)
	}
	c.logger.Info("custom SQL rule saved", "uuid", rule["uuid"])
	return rule, nil
}

// CreateOrUpdateMetricMonitor creates or updates a metric/stats monitor.
// Success is judged by the presence of a returned monitor identifier.
func (c *Catalog) CreateOrUpdateMetricMonitor(ctx context.Context, params Detail) (map[string]any, error) {
	input := normalize.Plain(params)
	res, err := c.transport.Execute(ctx, createOrUpdateMetricMonitorMutation, map[string]any{"input": input})
	if err != nil {
		return nil, fmt.Errorf("create or update metric monitor: %w", err)
	}
	mon := entityFromResponse(res, "createOrUpdateMetricMonitor", "metricMonitor")
	if mon == nil || mon["uuid"] == nil || mon["uuid"] == "" {
		uuid, _ := params["uuid"].(string)
		return nil, fmt.Errorf("metric monitor %s: %w", uuid, ErrRejected)
	}
	c.logger.Info("metric monitor saved", "uuid", mon["uuid"])
	return mon, nil
}

// scheduleInput fills schedule defaults the way the service expects them:
// fixed cadence, daily interval, 02:00 UTC start.
func scheduleInput(schedule map[string]any) map[string]any {
	input := map[string]any{
		"scheduleType":    "FIXED",
		"intervalMinutes": 1440,
		"startTime":       DefaultStartTime(),
	}
	for _, key := range []string{"scheduleType", "intervalMinutes", "startTime"} {
		if value, ok := schedule[key]; ok && value != nil {
			input[key] = value
		}
	}
	return input
}

// DefaultStartTime returns today at 02:00 UTC in the wire format the
// schedule input expects.
func DefaultStartTime() string {
	return time.Now().UTC().Format("2006-01-02") + "T02:00:00Z"
}

// successSignal extracts a mutation's boolean success from its normalized
// response. The response shape is not contractually stable upstream, so the
// probe order is deliberate and must not change: the data envelope under the
// original mutation name, a _data envelope under the same name, then the
// snake_case variant whose success value may itself be wrapped one level in
// _data on either side. The first value found wins, coerced to a boolean;
// nothing found means failure.
func successSignal(res map[string]any, mutation string) bool {
	raw, err := json.Marshal(normalize.Plain(res))
	if err != nil {
		return false
	}
	snake := normalize.SnakeCase(mutation)
	paths := []string{
		"data." + mutation + ".success",
		"_data." + mutation + ".success",
		snake + ".success",
		snake + "._data.success",
	}
	for _, path := range paths {
		value := gjson.GetBytes(raw, path)
		if !value.Exists() {
			continue
		}
		if value.IsObject() {
			if inner := value.Get("_data"); inner.Exists() {
				return truthy(inner)
			}
		}
		return truthy(value)
	}
	return false
}

// entityFromResponse pulls the created/updated entity object out of a
// create-or-update mutation response, tolerating the same shape drift as
// successSignal.
func entityFromResponse(res map[string]any, mutation, entity string) map[string]any {
	raw, err := json.Marshal(normalize.Plain(res))
	if err != nil {
		return nil
	}
	paths := []string{
		"data." + mutation + "." + entity,
		mutation + "." + entity,
		normalize.SnakeCase(mutation) + "." + normalize.SnakeCase(entity),
	}
	for _, path := range paths {
		value := gjson.GetBytes(raw, path)
		if !value.IsObject() {
			continue
		}
		if obj, ok := value.Value().(map[string]any); ok {
			return obj
		}
	}
	return nil
}

// hasErrors reports whether a normalized response carries a GraphQL errors
// key at the top level.
func hasErrors(res map[string]any) bool {
	plain, _ := normalize.Plain(res).(map[string]any)
	if plain == nil {
		return true
	}
	_, found := plain["errors"]
	return found
}

// missing reports whether a normalized value cannot serve as a mandatory
// mutation input.
func missing(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case map[string]any:
		return len(value) == 0
	case []any:
		return len(value) == 0
	default:
		return false
	}
}

// truthy coerces a probed value to the boolean the success signal means.
func truthy(value gjson.Result) bool {
	switch value.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return value.Num != 0
	case gjson.String:
		return value.Str != ""
	case gjson.JSON:
		if value.IsArray() {
			return len(value.Array()) > 0
		}
		return len(value.Map()) > 0
	default:
		return false
	}
}
