package main

import (
	"fmt"
	"strconv"
	"strings"

	"mcbulk/internal/monitor"
)

// parseSelection resolves an interactive answer against the listed monitors.
// "all" selects everything; otherwise the answer is a comma-separated list of
// 1-based indices. Out-of-range indices are dropped; a non-numeric entry
// invalidates the whole selection.
func parseSelection(answer string, monitors []monitor.Summary) ([]monitor.Summary, error) {
	answer = strings.TrimSpace(answer)
	if strings.EqualFold(answer, "all") {
		return monitors, nil
	}

	var selected []monitor.Summary
	for _, token := range strings.Split(answer, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		index, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("invalid selection %q", token)
		}
		if index < 1 || index > len(monitors) {
			continue
		}
		selected = append(selected, monitors[index-1])
	}
	return selected, nil
}

// splitUUIDs parses the --uuids flag value.
func splitUUIDs(value string) []string {
	var uuids []string
	for _, token := range strings.Split(value, ",") {
		if token = strings.TrimSpace(token); token != "" {
			uuids = append(uuids, token)
		}
	}
	return uuids
}
