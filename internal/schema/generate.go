// Package schema describes the vocal TOML configuration as JSON Schema, for
// editors and for "vocal debug schema".
package schema

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"

	"github.com/vocal-dev/vocal/pkg/config"
)

const draft202012 = "https://json-schema.org/draft/2020-12/schema"

const description = "Settings for the vocal hook binary. Read from " +
	"$XDG_CONFIG_HOME/vocal/config.toml, then .vocal/config.toml or vocal.toml " +
	"in the project, then VOCAL_* environment variables. Policy entries can " +
	"only block more tool calls, never fewer."

// Generate reflects config.Config.
func Generate() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{ExpandedStruct: true}

	s := reflector.Reflect(&config.Config{})
	s.Version = draft202012
	s.Title = "vocal configuration"
	s.Description = description

	return s
}

// GenerateJSON renders Generate as JSON ending in a newline, indented
// unless compact output is wanted.
func GenerateJSON(indent bool) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if indent {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(Generate()); err != nil {
		return nil, errors.Wrap(err, "encoding config schema")
	}

	return buf.Bytes(), nil
}
