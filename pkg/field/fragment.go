package field

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
	"gopkg.in/yaml.v3"
)

// probeFieldName is the single property of the throwaway model used for
// fragment derivation.
const probeFieldName = "value"

// deriveFragment generates the schema fragment for a declared
// representation type. It wraps the type in a throwaway single-field
// struct, feeds it to the schema generator, and extracts the property's
// fragment. The generator's own title entry, when present, belongs to the
// enclosing field name and is stripped.
func deriveFragment(declared reflect.Type) (map[string]any, error) {
	if declared == nil {
		return nil, fmt.Errorf("field: declared type is required for derivation")
	}

	wrapper := reflect.StructOf([]reflect.StructField{{
		Name: "Value",
		Type: declared,
		Tag:  `json:"value"`,
	}})
	probe := reflect.New(wrapper).Interface()

	ref, err := openapi3gen.NewSchemaRefForValue(probe, make(openapi3.Schemas))
	if err != nil {
		return nil, fmt.Errorf("field: derive fragment for %s: %w", declared, err)
	}
	if ref == nil || ref.Value == nil || ref.Value.Properties == nil {
		return nil, fmt.Errorf("field: derive fragment for %s: generator returned no properties", declared)
	}
	property, ok := ref.Value.Properties[probeFieldName]
	if !ok || property == nil || property.Value == nil {
		return nil, fmt.Errorf("field: derive fragment for %s: probe property missing", declared)
	}

	raw, err := property.Value.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("field: derive fragment for %s: %w", declared, err)
	}
	var fragment map[string]any
	if err := json.Unmarshal(raw, &fragment); err != nil {
		return nil, fmt.Errorf("field: derive fragment for %s: %w", declared, err)
	}

	delete(fragment, "title")
	return fragment, nil
}

// mergeFragment layers overrides onto a derived or explicit fragment,
// override keys winning on conflict.
func mergeFragment(base, overrides map[string]any) map[string]any {
	if len(base) == 0 && len(overrides) == 0 {
		return nil
	}

	merged := make(map[string]any, len(base)+len(overrides))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range overrides {
		merged[key] = value
	}
	return merged
}

// cloneFragment returns a deep copy of a fragment through its JSON form so
// callers cannot mutate a cached class's fragment in place.
func cloneFragment(fragment map[string]any) map[string]any {
	if len(fragment) == 0 {
		return nil
	}

	raw, err := json.Marshal(fragment)
	if err != nil {
		// Non-JSON values only appear in hand-built overrides; fall back
		// to a shallow copy rather than losing them.
		clone := make(map[string]any, len(fragment))
		for key, value := range fragment {
			clone[key] = value
		}
		return clone
	}
	var clone map[string]any
	if err := json.Unmarshal(raw, &clone); err != nil {
		return fragment
	}
	return clone
}

// canonicalFragment renders a fragment deterministically for registry
// keys. encoding/json sorts map keys, which is exactly the property the
// key needs.
func canonicalFragment(fragment map[string]any) string {
	if len(fragment) == 0 {
		return ""
	}
	raw, err := json.Marshal(fragment)
	if err != nil {
		return fmt.Sprintf("%v", fragment)
	}
	return string(raw)
}

// OverridesFromYAML parses an explicit override fragment from YAML (or
// JSON, which YAML subsumes).
func OverridesFromYAML(data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("field: overrides payload is empty")
	}

	var overrides map[string]any
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("field: parse overrides: %w", err)
	}
	return overrides, nil
}
