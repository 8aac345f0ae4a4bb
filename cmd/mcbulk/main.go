package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"mcbulk/internal/api"
	"mcbulk/internal/config"
	"mcbulk/internal/introspect"
	"mcbulk/internal/logging"
	"mcbulk/internal/monitor"
	"mcbulk/internal/prompt"
)

// Version is stamped at build time.
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	profile := flag.String("profile", "", "Credential profile name")
	mcdID := flag.String("mcd-id", "", "API key id")
	mcdToken := flag.String("mcd-token", "", "API key token")
	limit := flag.Int("limit", 100, "Maximum monitors to list")
	monitorType := flag.String("type", "", "Filter by monitor type")
	uuids := flag.String("uuids", "", "Comma-separated monitor UUIDs to update")
	updateType := flag.String("update-type", "interactive", "Update kind: schedule, description, alerts, interactive")
	templateFile := flag.String("template-file", "", "JSON document with updates")
	getSchema := flag.Bool("get-schema", false, "Dump the GraphQL schema and exit")
	endpoint := flag.String("endpoint", "", "GraphQL endpoint override")
	configPath := flag.String("config", config.DefaultPath(), "Settings file path")
	insecure := flag.Bool("insecure", false, "Skip TLS certificate verification")
	pauseDelay := flag.Int("pause-delay", 0, "Seconds between pause and unpause")
	logFormat := flag.String("log-format", "text", "Log output format: text, json")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	logger := logging.Setup(*logFormat, *logLevel)
	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("config load failed", "error", err)
		return 1
	}
	if *endpoint != "" {
		cfg.Endpoint = *endpoint
	}
	if *insecure {
		cfg.Insecure = true
	}
	if *pauseDelay > 0 {
		cfg.PauseDelaySeconds = *pauseDelay
	}

	creds, source, err := config.LoadCredentials(config.ProfilesPath(), *profile, *mcdID, *mcdToken)
	if err != nil {
		logger.Error("credential resolution failed", "error", err)
		return 1
	}
	logger.Info("authenticated", "source", source, "endpoint", cfg.Endpoint)

	client := api.NewClient(cfg.Endpoint, api.Credentials(creds), api.Options{
		Timeout:  time.Duration(cfg.TimeoutSeconds) * time.Second,
		Retries:  cfg.Retries,
		Insecure: cfg.Insecure,
	}, logger)

	catalog := monitor.NewCatalog(client, logger)
	catalog.SetPauseDelay(time.Duration(cfg.PauseDelaySeconds) * time.Second)

	monitors, err := catalog.List(ctx, monitor.ListOptions{
		Limit: *limit,
		Types: typeFilter(*monitorType),
	})
	if err != nil {
		logger.Error("listing monitors failed", "error", err)
		return 1
	}
	if len(monitors) == 0 {
		logger.Info("no monitors found")
		return 0
	}
	printMonitors(monitors)

	if *getSchema {
		if err := introspect.Dump(ctx, client, ".", logger); err != nil {
			logger.Error("schema dump failed", "error", err)
			return 1
		}
		return 0
	}

	selected, err := selectMonitors(catalog, monitors, *uuids)
	if err != nil {
		logger.Error("selection failed", "error", err)
		return 1
	}
	if len(selected) == 0 {
		logger.Info("no monitors selected")
		return 0
	}
	logger.Info("monitors selected", "count", len(selected))

	produce, err := chooseProducer(*updateType, *templateFile, logger)
	if err != nil {
		logger.Error("producer setup failed", "error", err)
		return 1
	}

	tally := catalog.BulkUpdate(ctx, selected, produce)
	fmt.Printf("\nBulk update complete: %d succeeded, %d failed\n", tally.Succeeded, tally.Failed)
	if tally.Failed > 0 && tally.Succeeded == 0 {
		return 1
	}
	return 0
}

// typeFilter maps the --type flag to the list filter.
func typeFilter(value string) []monitor.Type {
	if value == "" {
		return nil
	}
	return []monitor.Type{monitor.Type(value)}
}

// printMonitors renders the listing with the 1-based indices the interactive
// selection refers to.
func printMonitors(monitors []monitor.Summary) {
	fmt.Printf("\nFound %d monitors:\n", len(monitors))
	for i, m := range monitors {
		name := m.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("%3d. [%s] %s\n", i+1, m.MonitorType, name)
		fmt.Printf("     uuid: %s", m.UUID)
		if m.ConsolidatedMonitorStatus != "" {
			fmt.Printf("  status: %s", m.ConsolidatedMonitorStatus)
		}
		fmt.Println()
	}
}

// selectMonitors resolves the working set: an explicit --uuids list, or an
// interactive pick when stdin is a terminal.
func selectMonitors(catalog *monitor.Catalog, monitors []monitor.Summary, uuidsFlag string) ([]monitor.Summary, error) {
	if uuidsFlag != "" {
		return catalog.SelectByUUID(monitors, splitUUIDs(uuidsFlag)), nil
	}
	if !prompt.IsInteractive() {
		return nil, fmt.Errorf("stdin is not a terminal; pass --uuids to select monitors")
	}
	answer, err := prompt.Stdin().Ask("\nSelect monitors to update (comma-separated indices, or 'all'): ")
	if err != nil {
		return nil, err
	}
	return parseSelection(answer, monitors)
}

// chooseProducer maps the --update-type flag to an update producer. A template
// file overrides interactive filling.
func chooseProducer(updateType, templateFile string, logger *slog.Logger) (monitor.Producer, error) {
	if templateFile != "" {
		return monitor.FileProducer(templateFile)
	}
	switch updateType {
	case "schedule":
		return monitor.ScheduleProducer, nil
	case "description":
		return monitor.DescriptionProducer, nil
	case "alerts":
		return monitor.AlertThresholdProducer, nil
	case "interactive":
		if !prompt.IsInteractive() {
			return nil, fmt.Errorf("stdin is not a terminal; use --template-file or a non-interactive --update-type")
		}
		return monitor.InteractiveProducer(prompt.Stdin(), logger), nil
	default:
		return nil, fmt.Errorf("unknown update type %q", updateType)
	}
}
