package monitor

import (
	"log/slog"
	"strconv"
)

// Asker collects free-text answers from the user. The prompt package provides
// the terminal implementation; tests provide scripted ones.
type Asker interface {
	Ask(prompt string) (string, error)
	Confirm(prompt string) (bool, error)
}

// InteractiveProducer builds a template for each monitor's type and walks the
// user through it field by field. Only fields the user opts into appear in
// the result; a blank answer keeps the template default for sub-fields.
func InteractiveProducer(ask Asker, logger *slog.Logger) Producer {
	return func(detail Detail) Updates {
		monitorType, _ := detail["monitorType"].(string)
		template := NewTemplate(Type(monitorType))
		updates := Updates{}

		if _, ok := template["description"]; ok {
			yes, err := ask.Confirm("Update description?")
			if err != nil {
				logger.Error("prompt failed", "error", err)
				return updates
			}
			if yes {
				value, err := ask.Ask("Enter new description: ")
				if err != nil {
					logger.Error("prompt failed", "error", err)
					return updates
				}
				updates["description"] = value
			}
		}

		if field, ok := template["scheduleConfig"]; ok {
			yes, err := ask.Confirm("Update schedule?")
			if err != nil {
				logger.Error("prompt failed", "error", err)
				return updates
			}
			if yes {
				defaults, _ := field.Value.(map[string]any)
				schedule := map[string]any{
					"scheduleType": "FIXED",
					"startTime":    defaults["startTime"],
				}
				answer, err := ask.Ask("Enter interval in minutes (e.g. 1440 for daily, blank for default): ")
				if err != nil {
					logger.Error("prompt failed", "error", err)
					return updates
				}
				if interval, convErr := strconv.Atoi(answer); convErr == nil {
					schedule["intervalMinutes"] = interval
				} else {
					schedule["intervalMinutes"] = defaults["intervalMinutes"]
				}
				updates["scheduleConfig"] = schedule
			}
		}

		if field, ok := template["alertConfig"]; ok {
			yes, err := ask.Confirm("Update alert config?")
			if err != nil {
				logger.Error("prompt failed", "error", err)
				return updates
			}
			if yes {
				defaults, _ := field.Value.(map[string]any)
				alertConfig := map[string]any{"alertOnDiff": defaults["alertOnDiff"]}
				if answer, err := ask.Ask("Alert on difference? (true/false, blank for default): "); err == nil && answer != "" {
					alertConfig["alertOnDiff"] = answer == "true"
				}
				alertConfig["diffThreshold"] = defaults["diffThreshold"]
				if answer, err := ask.Ask("Enter difference threshold % (blank for default): "); err == nil && answer != "" {
					if threshold, convErr := strconv.ParseFloat(answer, 64); convErr == nil {
						alertConfig["diffThreshold"] = threshold
					}
				}
				updates["alertConfig"] = alertConfig
			}
		}

		if field, ok := template["alertCondition"]; ok {
			yes, err := ask.Confirm("Update alert condition?")
			if err != nil {
				logger.Error("prompt failed", "error", err)
				return updates
			}
			if yes {
				defaults, _ := field.Value.(map[string]any)
				condition := map[string]any{
					"type":      defaults["type"],
					"operator":  defaults["operator"],
					"threshold": defaults["threshold"],
				}
				if answer, err := ask.Ask("Enter threshold value (blank for default): "); err == nil && answer != "" {
					if threshold, convErr := strconv.ParseFloat(answer, 64); convErr == nil {
						condition["threshold"] = threshold
					}
				}
				updates["alertCondition"] = condition
			}
		}

		if field, ok := template["alertConditions"]; ok {
			yes, err := ask.Confirm("Update alert conditions?")
			if err != nil {
				logger.Error("prompt failed", "error", err)
				return updates
			}
			if yes {
				// The API exposes no per-condition update surface yet;
				// apply the template defaults.
				updates["alertConditions"] = field.Value
			}
		}

		return FilterNulls(updates)
	}
}
