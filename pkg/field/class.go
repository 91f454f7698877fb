package field

import (
	"reflect"

	"github.com/stefco/lazytype/pkg/proxy"
)

// Class is a proxy class carrying a schema fragment, letting the target
// participate as a typed field in an external validation model without
// importing the target's module up front.
type Class struct {
	*proxy.Class

	declared reflect.Type
	fragment map[string]any
}

// DeclaredType returns the external representation type the fragment was
// derived from, or nil when the fragment was supplied explicitly.
func (c *Class) DeclaredType() reflect.Type {
	return c.declared
}

// Fragment returns a copy of the schema fragment.
func (c *Class) Fragment() map[string]any {
	return cloneFragment(c.fragment)
}

// Validator returns the hook the validation model calls with a raw field
// value: it constructs a proxy instance from that value as the sole
// constructor argument.
func (c *Class) Validator() func(raw any) (*proxy.Instance, error) {
	return func(raw any) (*proxy.Instance, error) {
		return c.New(raw)
	}
}

// ContributeSchema merges the fragment into the field's place inside the
// enclosing model's schema document.
func (c *Class) ContributeSchema(doc map[string]any, name string) {
	if doc == nil || name == "" {
		return
	}

	properties, _ := doc["properties"].(map[string]any)
	if properties == nil {
		properties = make(map[string]any)
	}
	properties[name] = cloneFragment(c.fragment)
	doc["properties"] = properties
}
