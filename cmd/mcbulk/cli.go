package main

import (
	"flag"
	"fmt"
	"os"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "mcbulk v%s\n", Version)
		fmt.Fprintf(os.Stderr, "Bulk inspect and edit data-observability monitors over GraphQL\n\n")
		fmt.Fprintf(os.Stderr, "Usage: mcbulk [options]\n\n")
		fmt.Fprintf(os.Stderr, "Credentials:\n")
		fmt.Fprintf(os.Stderr, "  --profile <name>            Credential profile from ~/.mcd/profiles.ini\n")
		fmt.Fprintf(os.Stderr, "  --mcd-id <id>               API key id (bypasses the profile store)\n")
		fmt.Fprintf(os.Stderr, "  --mcd-token <token>         API key token (bypasses the profile store)\n\n")
		fmt.Fprintf(os.Stderr, "Selection:\n")
		fmt.Fprintf(os.Stderr, "  --limit <n>                 Maximum monitors to list (default: 100)\n")
		fmt.Fprintf(os.Stderr, "  --type <type>               Filter by monitor type, e.g. VALIDATION, CUSTOM_SQL\n")
		fmt.Fprintf(os.Stderr, "  --uuids <a,b,c>             Update only these monitor UUIDs\n")
		fmt.Fprintf(os.Stderr, "                              Without --uuids, selection is interactive\n\n")
		fmt.Fprintf(os.Stderr, "Updates:\n")
		fmt.Fprintf(os.Stderr, "  --update-type <kind>        schedule, description, alerts or interactive\n")
		fmt.Fprintf(os.Stderr, "                              (default: interactive)\n")
		fmt.Fprintf(os.Stderr, "  --template-file <path>      JSON document with the updates to apply to\n")
		fmt.Fprintf(os.Stderr, "                              every selected monitor\n\n")
		fmt.Fprintf(os.Stderr, "Transport:\n")
		fmt.Fprintf(os.Stderr, "  --endpoint <url>            GraphQL endpoint override\n")
		fmt.Fprintf(os.Stderr, "  --config <path>             Settings file (default: ~/.mcbulk/config.yaml)\n")
		fmt.Fprintf(os.Stderr, "  --insecure                  Skip TLS certificate verification\n")
		fmt.Fprintf(os.Stderr, "  --pause-delay <seconds>     Delay between pause and unpause (default: 2)\n\n")
		fmt.Fprintf(os.Stderr, "Other:\n")
		fmt.Fprintf(os.Stderr, "  --get-schema                Dump the GraphQL schema and exit\n")
		fmt.Fprintf(os.Stderr, "  --log-format <format>       Log output format: text, json (default: text)\n")
		fmt.Fprintf(os.Stderr, "  --log-level <level>         Log level: debug, info, warn, error (default: info)\n")
		fmt.Fprintf(os.Stderr, "  --help, -h                  Show this help message\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  # List monitors and pick interactively\n")
		fmt.Fprintf(os.Stderr, "  mcbulk --profile prod\n\n")
		fmt.Fprintf(os.Stderr, "  # Reset schedules for two monitors\n")
		fmt.Fprintf(os.Stderr, "  mcbulk --uuids 1111-aaaa,2222-bbbb --update-type schedule\n\n")
		fmt.Fprintf(os.Stderr, "  # Apply a prepared update document to VALIDATION monitors\n")
		fmt.Fprintf(os.Stderr, "  mcbulk --type VALIDATION --template-file updates.json\n")
	}
}
