// Package monitor implements the monitor-type dispatch and update layer:
// listing and selecting monitors, fetching type-specific detail, merging
// partial updates and routing them to the correct per-type mutation, and
// running bulk updates that never abort on a single failure.
//
// One policy deserves a flag: VALIDATION monitors have no combined update
// mutation, so their update issues up to two independent mutations (schedule,
// description) and the overall call succeeds when at least one attempted
// operation succeeds. A failed schedule update paired with a successful
// description update therefore reports success while leaving the schedule
// unchanged. This mirrors the upstream tool's behavior on purpose.
package monitor

import (
	"context"
	"errors"
)

// Type classifies a monitor and decides which detail-fetch and update code
// path applies. The enumeration is closed for updates; unknown types are
// listed and passed through but cannot be updated.
type Type string

const (
	TypeValidation Type = "VALIDATION"
	TypeCustomSQL  Type = "CUSTOM_SQL"
	TypeComparison Type = "COMPARISON"
	TypeMetric     Type = "METRIC"
	TypeStats      Type = "STATS"
)

// Summary is the fixed projection the listing query returns for every
// monitor regardless of type.
type Summary struct {
	UUID                      string   `json:"uuid"`
	MonitorType               Type     `json:"monitorType"`
	Name                      string   `json:"name"`
	Description               string   `json:"description"`
	PrevExecutionTime         string   `json:"prevExecutionTime"`
	DataQualityDimension      string   `json:"dataQualityDimension"`
	AlertIDs                  []string `json:"alertIds"`
	CreatedTime               string   `json:"createdTime"`
	ConsolidatedMonitorStatus string   `json:"consolidatedMonitorStatus"`
}

// Detail is a monitor's merged, type-specific configuration. Kept as a plain
// mapping because the per-type shapes share only a few fields.
type Detail = map[string]any

// Updates maps recognized field names to new values. Nil values must be
// filtered out before dispatch; FilterNulls does that.
type Updates = map[string]any

// Transport executes a GraphQL operation against the remote service and
// returns the decoded response envelope. Implementations must surface
// network, auth and server failures as errors; this package never retries
// them.
type Transport interface {
	Execute(ctx context.Context, operation string, variables map[string]any) (map[string]any, error)
}

var (
	// ErrMissingIdentifier reports a monitor without a uuid; detected
	// locally, no transport call is made.
	ErrMissingIdentifier = errors.New("monitor has no uuid")

	// ErrMissingRequiredFields reports a custom SQL create-or-update
	// missing one of its mandatory fields; detected locally.
	ErrMissingRequiredFields = errors.New("missing required fields for custom SQL monitor")

	// ErrUnsupportedType reports an update request for a monitor type
	// outside the implemented set.
	ErrUnsupportedType = errors.New("unsupported monitor type")

	// ErrRejected reports a response that decoded fine but carried an
	// errors key or a false success signal.
	ErrRejected = errors.New("update rejected by service")
)
