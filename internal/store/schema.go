package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled JSON schemas by document name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

var bucketSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"right":                map[string]any{"type": "integer", "minimum": 0},
		"wrong":                map[string]any{"type": "integer", "minimum": 0},
		"streak":               map[string]any{"type": "integer", "minimum": 0},
		"pw_right":             map[string]any{"type": "integer", "minimum": 0},
		"pw_wrong":             map[string]any{"type": "integer", "minimum": 0},
		"pw_streak":            map[string]any{"type": "integer", "minimum": 0},
		"pw_last_seen":         map[string]any{"type": "integer", "minimum": 0},
		"pw_last_seen_session": map[string]any{"type": "integer", "minimum": 0},
		"mastery":              map[string]any{"type": "number", "minimum": 0, "maximum": 100},
		"mastery_streak":       map[string]any{"type": "integer", "minimum": 0},
		"mastery_last_seen":    map[string]any{"type": "integer", "minimum": 0},
	},
}

var modeSetSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": bucketSchema,
}

// statsSchema validates the stats document: item key → record with a
// lifetime counter and a bucket set per classification system.
var statsSchema = map[string]any{
	"type": "object",
	"additionalProperties": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"total_encounters": map[string]any{"type": "integer", "minimum": 0},
			"JLPT":             modeSetSchema,
			"WaniKani":         modeSetSchema,
		},
	},
}

// profileSchema validates the profile document. Unknown fields are allowed
// so older and newer profiles both pass.
var profileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"username": map[string]any{"type": "string"},
		"pfp_path": map[string]any{"type": "string"},
		"xp": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "integer", "minimum": 0},
			},
		},
		"pw_question_counter": map[string]any{"type": "integer", "minimum": 0},
		"pw_session_counter":  map[string]any{"type": "integer", "minimum": 0},
	},
}

// validateDocument validates raw JSON against the given schema definition.
func validateDocument(name string, def map[string]any, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := getCompiledSchema(name, def)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw
	// bytes. Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
