// Package introspect dumps the service's GraphQL schema to disk for offline
// inspection of available mutations and input types.
package introspect

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"mcbulk/internal/normalize"
)

const introspectionQuery = `
query IntrospectionQuery {
  __schema {
    queryType {
      name
      fields {
        name
        description
        args {
          name
          description
          type {
            name
            kind
            ofType {
              name
              kind
            }
          }
        }
      }
    }
    mutationType {
      name
      fields {
        name
        description
        args {
          name
          description
          type {
            name
            kind
            ofType {
              name
              kind
            }
          }
        }
      }
    }
    types {
      name
      kind
      description
      fields {
        name
        description
        type {
          name
          kind
          ofType {
            name
            kind
          }
        }
      }
      inputFields {
        name
        description
        type {
          name
          kind
          ofType {
            name
            kind
          }
        }
      }
    }
  }
}`

// SchemaFile and MutationsFile are the dump artifacts written into the
// target directory.
const (
	SchemaFile    = "mc_graphql_schema.json"
	MutationsFile = "mc_mutations.json"
)

// Transport executes one GraphQL operation.
type Transport interface {
	Execute(ctx context.Context, operation string, variables map[string]any) (map[string]any, error)
}

// Dump runs the introspection query, writes the full schema and a
// mutations-only extract under dir, and logs the monitor, alert and rule
// related mutations and input types it found.
func Dump(ctx context.Context, transport Transport, dir string, logger *slog.Logger) error {
	res, err := transport.Execute(ctx, introspectionQuery, nil)
	if err != nil {
		return fmt.Errorf("introspection query: %w", err)
	}

	raw, err := json.MarshalIndent(normalize.Plain(res), "", "  ")
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	schemaPath := filepath.Join(dir, SchemaFile)
	if err := os.WriteFile(schemaPath, raw, 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	logger.Info("schema saved", "path", schemaPath)

	schema := gjson.GetBytes(raw, "data.__schema")
	if !schema.Exists() {
		logger.Warn("response carried no __schema; mutations extract skipped")
		return nil
	}

	if mutations := schema.Get("mutationType.fields"); mutations.IsArray() {
		mutationsPath := filepath.Join(dir, MutationsFile)
		if err := os.WriteFile(mutationsPath, []byte(mutations.Raw), 0o644); err != nil {
			return fmt.Errorf("write mutations: %w", err)
		}
		logger.Info("mutations saved", "path", mutationsPath)

		for _, mutation := range mutations.Array() {
			name := mutation.Get("name").Str
			if !monitorRelated(name) {
				continue
			}
			args := make([]string, 0)
			for _, arg := range mutation.Get("args").Array() {
				args = append(args, arg.Get("name").Str)
			}
			logger.Info("mutation", "name", name, "args", strings.Join(args, ", "))
		}
	}

	for _, typ := range schema.Get("types").Array() {
		if typ.Get("kind").Str != "INPUT_OBJECT" || !monitorRelated(typ.Get("name").Str) {
			continue
		}
		fields := typ.Get("inputFields")
		if !fields.IsArray() || len(fields.Array()) == 0 {
			fields = typ.Get("fields")
		}
		names := make([]string, 0)
		for _, field := range fields.Array() {
			names = append(names, field.Get("name").Str)
		}
		logger.Info("input type", "name", typ.Get("name").Str, "fields", strings.Join(names, ", "))
	}
	return nil
}

// monitorRelated matches the schema names worth surfacing for this tool.
func monitorRelated(name string) bool {
	lower := strings.ToLower(name)
	for _, term := range []string{"monitor", "alert", "rule"} {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
