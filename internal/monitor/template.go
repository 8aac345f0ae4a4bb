package monitor

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// TemplateField is one updatable field in a template scaffold: whether the
// user opted in, and the default-shaped value to start from.
type TemplateField struct {
	Enabled bool `json:"enabled"`
	Value   any  `json:"value"`
}

// Template scaffolds the updates a monitor type accepts. It is never sent to
// the service itself; producers turn it into an Updates mapping.
type Template map[string]TemplateField

// NewTemplate builds the update template for a monitor type. Description and
// schedule are common to every type; the alert field shape depends on it.
func NewTemplate(t Type) Template {
	template := Template{
		"description": {Value: ""},
		"scheduleConfig": {Value: map[string]any{
			"scheduleType":    "FIXED",
			"intervalMinutes": 1440,
			"startTime":       DefaultStartTime(),
		}},
	}

	switch t {
	case TypeValidation:
		template["alertConfig"] = TemplateField{Value: map[string]any{
			"alertOnDiff":   true,
			"diffThreshold": 5,
		}}
	case TypeComparison:
		template["alertCondition"] = TemplateField{Value: map[string]any{
			"type":      "THRESHOLD",
			"operator":  "GT",
			"threshold": 10,
		}}
	case TypeMetric, TypeStats:
		template["alertConditions"] = TemplateField{Value: []any{
			map[string]any{
				"type":     "threshold",
				"operator": "AUTO",
				"metric":   "ROW_COUNT_CHANGE",
				"fields":   []any{},
			},
		}}
	case TypeCustomSQL:
		template["alertCondition"] = TemplateField{Value: map[string]any{
			"type":      "THRESHOLD",
			"operator":  "GT",
			"threshold": 0,
		}}
	}
	return template
}

// FilterNulls strips nil-valued entries; an Updates mapping must never carry
// nulls into dispatch.
func FilterNulls(updates Updates) Updates {
	filtered := make(Updates, len(updates))
	for key, value := range updates {
		if value == nil {
			continue
		}
		filtered[key] = value
	}
	return filtered
}

// ScheduleProducer is a canned producer: daily cadence starting 02:00 UTC.
func ScheduleProducer(Detail) Updates {
	return Updates{
		"scheduleConfig": map[string]any{
			"scheduleType":    "FIXED",
			"intervalMinutes": 1440,
			"startTime":       DefaultStartTime(),
		},
	}
}

// DescriptionProducer is a canned producer: appends a dated marker to the
// current description.
func DescriptionProducer(detail Detail) Updates {
	current, _ := detail["description"].(string)
	return Updates{
		"description": fmt.Sprintf("%s (Updated on %s)", current, time.Now().Format("2006-01-02")),
	}
}

// AlertThresholdProducer is a canned producer: resets the alert threshold
// field matching the monitor's type, when the detail carries one.
func AlertThresholdProducer(detail Detail) Updates {
	monitorType, _ := detail["monitorType"].(string)
	switch Type(monitorType) {
	case TypeValidation:
		if _, ok := detail["alertConfig"]; ok {
			return Updates{"alertConfig": map[string]any{
				"alertOnDiff":   true,
				"diffThreshold": 5,
			}}
		}
	case TypeComparison:
		if _, ok := detail["alertCondition"]; ok {
			return Updates{"alertCondition": map[string]any{
				"type":      "THRESHOLD",
				"operator":  "GT",
				"threshold": 10,
			}}
		}
	case TypeMetric, TypeStats:
		if _, ok := detail["alertConditions"]; ok {
			return Updates{"alertConditions": []any{
				map[string]any{
					"type":     "threshold",
					"operator": "AUTO",
					"metric":   "ROW_COUNT_CHANGE",
					"fields":   []any{},
				},
			}}
		}
	case TypeCustomSQL:
		if _, ok := detail["alertCondition"]; ok {
			return Updates{"alertCondition": map[string]any{
				"type":      "THRESHOLD",
				"operator":  "GT",
				"threshold": 0,
			}}
		}
	}
	return nil
}

// templateFileSchema constrains --template-file documents. Nulls are allowed
// per field because FilterNulls strips them; unknown fields are rejected so a
// typo cannot silently become a mutation input.
const templateFileSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "description": {"type": ["string", "null"]},
    "scheduleConfig": {
      "type": ["object", "null"],
      "properties": {
        "scheduleType": {"type": "string"},
        "intervalMinutes": {"type": "integer", "minimum": 1},
        "startTime": {"type": "string"}
      }
    },
    "alertConfig": {
      "type": ["object", "null"],
      "properties": {
        "alertOnDiff": {"type": "boolean"},
        "diffThreshold": {"type": "number"}
      }
    },
    "alertCondition": {
      "type": ["object", "null"],
      "properties": {
        "type": {"type": "string"},
        "operator": {"type": "string"},
        "threshold": {"type": "number"}
      }
    },
    "alertConditions": {
      "type": ["array", "null"],
      "items": {"type": "object"}
    }
  }
}`

// FileProducer loads a static JSON update document, validates it against the
// template schema, and returns a producer applying it verbatim (minus nulls)
// to every monitor. Validation failures surface before any monitor is
// touched.
func FileProducer(path string) (Producer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template file: %w", err)
	}

	var document any
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("parse template file %s: %w", path, err)
	}

	schema, err := jsonschema.CompileString("template.schema.json", templateFileSchema)
	if err != nil {
		return nil, fmt.Errorf("compile template schema: %w", err)
	}
	if err := schema.Validate(document); err != nil {
		return nil, fmt.Errorf("invalid template file %s: %w", path, err)
	}

	updates, ok := document.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("template file %s: expected a JSON object", path)
	}
	updates = FilterNulls(updates)

	return func(Detail) Updates {
		copied := make(Updates, len(updates))
		for key, value := range updates {
			copied[key] = value
		}
		return copied
	}, nil
}
