package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigValidator checks widget configurations beyond the structural
// rules each variant enforces itself.
type ConfigValidator interface {
	ValidateWidget(w WidgetConfig) error
}

// JSONSchemaValidator validates a widget's wire form against the
// schema for its type. Schemas compile lazily and are cached.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[WidgetType]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[WidgetType]*jsonschema.Schema),
	}
}

// ValidateWidget checks the widget's serialized form against its type
// schema.
func (v *JSONSchemaValidator) ValidateWidget(w WidgetConfig) error {
	if w == nil {
		return fmt.Errorf("dashboard: widget is nil")
	}
	schema, err := v.schemaFor(w.Type())
	if err != nil {
		return err
	}
	data, err := json.Marshal(encodeWidget(w))
	if err != nil {
		return fmt.Errorf("dashboard: marshal widget %s: %w", w.Meta().ID, err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("dashboard: normalize widget %s: %w", w.Meta().ID, err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("dashboard: widget %s failed validation: %w", w.Meta().ID, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(t WidgetType) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[t]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	raw, ok := widgetSchemas[t]
	if !ok {
		return nil, fmt.Errorf("dashboard: no schema for widget type %q", t)
	}
	compiler := jsonschema.NewCompiler()
	name := string(t) + ".json"
	if err := compiler.AddResource(name, bytes.NewReader([]byte(raw))); err != nil {
		return nil, fmt.Errorf("dashboard: load schema %s: %w", t, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile schema %s: %w", t, err)
	}
	v.mu.Lock()
	v.compiled[t] = compiled
	v.mu.Unlock()
	return compiled, nil
}

type noopConfigValidator struct{}

func (noopConfigValidator) ValidateWidget(WidgetConfig) error { return nil }

// widgetSchemas holds one JSON Schema per widget type, keyed to the
// wire envelope form produced by encodeWidget.
var widgetSchemas = map[WidgetType]string{
	TypeCompanyOverview: `{
		"type": "object",
		"required": ["id", "type", "title", "params"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"type": {"const": "COMPANY_OVERVIEW"},
			"title": {"type": "string", "minLength": 1},
			"refreshInterval": {"type": "integer", "minimum": 1},
			"params": {
				"type": "object",
				"required": ["symbol"],
				"properties": {
					"symbol": {"type": "string", "minLength": 1}
				}
			},
			"selectedFields": {"type": "array", "items": {"type": "string"}}
		}
	}`,
	TypeChart: `{
		"type": "object",
		"required": ["id", "type", "title", "params"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"type": {"const": "CHART"},
			"title": {"type": "string", "minLength": 1},
			"refreshInterval": {"type": "integer", "minimum": 1},
			"params": {
				"type": "object",
				"required": ["symbol"],
				"properties": {
					"symbol": {"type": "string", "minLength": 1}
				}
			},
			"selectedFields": {"type": "array", "items": {"type": "string"}}
		}
	}`,
	TypeTable: `{
		"type": "object",
		"required": ["id", "type", "title", "apiUrl", "selectedFields"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"type": {"const": "TABLE"},
			"title": {"type": "string", "minLength": 1},
			"apiUrl": {"type": "string", "minLength": 1},
			"refreshInterval": {"type": "integer", "minimum": 1},
			"displayMode": {"const": "table"},
			"params": {
				"type": "object",
				"properties": {
					"symbols": {"type": "array", "items": {"type": "string"}},
					"category": {"type": "string"}
				}
			},
			"selectedFields": {
				"type": "array",
				"items": {"type": "string"},
				"minItems": 1
			}
		}
	}`,
	TypeFinanceCard: `{
		"type": "object",
		"required": ["id", "type", "title", "apiUrl", "params"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"type": {"const": "FINANCE_CARD"},
			"title": {"type": "string", "minLength": 1},
			"apiUrl": {"type": "string", "minLength": 1},
			"refreshInterval": {"type": "integer", "minimum": 1},
			"displayMode": {"enum": ["card", "list"]},
			"params": {
				"type": "object",
				"required": ["category"],
				"properties": {
					"category": {
						"enum": ["watchlist", "gainers", "performance", "financial"]
					}
				}
			},
			"selectedFields": {"type": "array", "items": {"type": "string"}}
		}
	}`,
}
