package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"mcbulk/internal/normalize"
)

const getMonitorsQuery = `
query getMonitors($alertedOnly: Boolean,
                  $consolidatedStatusTypes: [ConsolidatedMonitorStatusType],
                  $domainId: UUID,
                  $includeOotbMonitors: Boolean,
                  $labels: [String],
                  $limit: Int,
                  $mcons: [String],
                  $monitorTypes: [UserDefinedMonitors],
                  $tags: [TagKeyValuePairInput!],
                  $uuids: [String]) {
  getMonitors(alertedOnly: $alertedOnly,
              consolidatedStatusTypes: $consolidatedStatusTypes,
              domainId: $domainId,
              includeOotbMonitors: $includeOotbMonitors,
              labels: $labels,
              limit: $limit,
              mcons: $mcons,
              monitorTypes: $monitorTypes,
              tags: $tags,
              uuids: $uuids) {
    uuid
    monitorType
    name
    description
    prevExecutionTime
    dataQualityDimension
    alertIds
    createdTime
    consolidatedMonitorStatus
  }
}`

// Catalog lists, inspects and updates monitors through an injected Transport.
type Catalog struct {
	transport  Transport
	logger     *slog.Logger
	pauseDelay time.Duration
}

// NewCatalog wires a Catalog to its transport. The pause/unpause courtesy
// delay defaults to two seconds; SetPauseDelay overrides it.
func NewCatalog(transport Transport, logger *slog.Logger) *Catalog {
	return &Catalog{
		transport:  transport,
		logger:     logger,
		pauseDelay: 2 * time.Second,
	}
}

// SetPauseDelay overrides the delay between the pause and unpause mutations.
func (c *Catalog) SetPauseDelay(d time.Duration) { c.pauseDelay = d }

// TagPair filters monitors by a tag key/value.
type TagPair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ListOptions filter the monitor listing. Zero values are omitted from the
// query variables.
type ListOptions struct {
	Limit                   int
	Types                   []Type
	MCONs                   []string
	UUIDs                   []string
	Labels                  []string
	Tags                    []TagPair
	DomainID                string
	ConsolidatedStatusTypes []string
	IncludeOOTB             *bool
	AlertedOnly             *bool
}

// List returns monitor summaries matching the options.
func (c *Catalog) List(ctx context.Context, opts ListOptions) ([]Summary, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	variables := map[string]any{"limit": limit}
	if len(opts.Types) > 0 {
		variables["monitorTypes"] = opts.Types
	}
	if len(opts.MCONs) > 0 {
		variables["mcons"] = opts.MCONs
	}
	if len(opts.UUIDs) > 0 {
		variables["uuids"] = opts.UUIDs
	}
	if len(opts.Labels) > 0 {
		variables["labels"] = opts.Labels
	}
	if len(opts.Tags) > 0 {
		variables["tags"] = opts.Tags
	}
	if opts.DomainID != "" {
		variables["domainId"] = opts.DomainID
	}
	if len(opts.ConsolidatedStatusTypes) > 0 {
		variables["consolidatedStatusTypes"] = opts.ConsolidatedStatusTypes
	}
	if opts.IncludeOOTB != nil {
		variables["includeOotbMonitors"] = *opts.IncludeOOTB
	}
	if opts.AlertedOnly != nil {
		variables["alertedOnly"] = *opts.AlertedOnly
	}

	res, err := c.transport.Execute(ctx, getMonitorsQuery, variables)
	if err != nil {
		return nil, fmt.Errorf("list monitors: %w", err)
	}

	rows := rowsAt(res, "getMonitors")
	summaries := make([]Summary, 0, len(rows))
	for _, row := range rows {
		s, err := summaryFromMap(row)
		if err != nil {
			c.logger.Warn("skipping malformed monitor row", "error", err)
			continue
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// SelectByUUID picks monitors from a listed set by uuid, in requested order.
// Unknown uuids are logged and skipped, never an error.
func (c *Catalog) SelectByUUID(monitors []Summary, uuids []string) []Summary {
	byUUID := make(map[string]Summary, len(monitors))
	for _, m := range monitors {
		if m.UUID != "" {
			byUUID[m.UUID] = m
		}
	}
	selected := make([]Summary, 0, len(uuids))
	for _, uuid := range uuids {
		m, ok := byUUID[uuid]
		if !ok {
			c.logger.Warn("monitor not found", "uuid", uuid)
			continue
		}
		selected = append(selected, m)
	}
	return selected
}

// rowsAt extracts a list of row mappings for field from a normalized
// response, probing the data envelope, the bare field, and its snake_case
// variant in that order.
func rowsAt(res map[string]any, field string) []map[string]any {
	plain, _ := normalize.Plain(res).(map[string]any)
	if plain == nil {
		return nil
	}
	candidates := []any{}
	if data, ok := plain["data"].(map[string]any); ok {
		candidates = append(candidates, data[field])
	}
	candidates = append(candidates, plain[field], plain[normalize.SnakeCase(field)])

	for _, candidate := range candidates {
		list, ok := candidate.([]any)
		if !ok {
			continue
		}
		rows := make([]map[string]any, 0, len(list))
		for _, item := range list {
			if row, ok := item.(map[string]any); ok {
				rows = append(rows, row)
			}
		}
		return rows
	}
	return nil
}

// objectAt extracts a single object for field, probing the same shapes as
// rowsAt.
func objectAt(res map[string]any, field string) map[string]any {
	plain, _ := normalize.Plain(res).(map[string]any)
	if plain == nil {
		return nil
	}
	if data, ok := plain["data"].(map[string]any); ok {
		if obj, ok := data[field].(map[string]any); ok {
			return obj
		}
	}
	if obj, ok := plain[field].(map[string]any); ok {
		return obj
	}
	if obj, ok := plain[normalize.SnakeCase(field)].(map[string]any); ok {
		return obj
	}
	return nil
}

func summaryFromMap(row map[string]any) (Summary, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return Summary{}, err
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// AsDetail converts a summary into the passthrough detail mapping used for
// monitor types without a dedicated detail query.
func (s Summary) AsDetail() Detail {
	detail, _ := normalize.Plain(s).(map[string]any)
	return detail
}
