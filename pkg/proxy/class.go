package proxy

import (
	"reflect"
	"sync"

	"github.com/stefco/lazytype/pkg/symbol"
)

// Class is a proxy type standing in for a not-yet-loaded target. One Class
// exists per distinct spec key; the factory guarantees identity reuse. The
// only mutation a Class undergoes is its target slot flipping, once, from
// unresolved to resolved.
type Class struct {
	spec     symbol.Spec
	resolver *symbol.Resolver

	mu     sync.Mutex
	target *symbol.Symbol
}

func newClass(spec symbol.Spec, resolver *symbol.Resolver) *Class {
	return &Class{spec: spec, resolver: resolver}
}

// Spec returns a deep copy of the normalized key the class was built
// from; mutating it cannot reach the class.
func (c *Class) Spec() symbol.Spec {
	return c.spec.Clone()
}

// QualifiedName returns the target's dotted name.
func (c *Class) QualifiedName() symbol.QualifiedName {
	return c.spec.Name
}

// Name returns the proxy class name, derived from the target's trailing
// segment.
func (c *Class) Name() string {
	return "Lazy" + c.spec.Name.Symbol()
}

// Resolved reports whether the target has been loaded.
func (c *Class) Resolved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.target != nil
}

// Target returns the resolved symbol without forcing resolution.
func (c *Class) Target() (symbol.Symbol, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.target == nil {
		return symbol.Symbol{}, false
	}
	return *c.target, true
}

// Resolve loads the target symbol, memoizing it on the class so later
// constructions and identity checks are free. Safe for concurrent first
// use.
func (c *Class) Resolve() (symbol.Symbol, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.target != nil {
		return *c.target, nil
	}

	resolved, err := c.resolver.Resolve(c.spec.Name)
	if err != nil {
		return symbol.Symbol{}, err
	}
	c.target = &resolved
	return resolved, nil
}

// New resolves the target if needed and constructs an instance wrapping
// it. Errors from the underlying constructor propagate unchanged.
func (c *Class) New(args ...any) (*Instance, error) {
	target, err := c.Resolve()
	if err != nil {
		return nil, err
	}

	value, err := target.Construct(args...)
	if err != nil {
		return nil, err
	}

	held, err := box(target.Type, value)
	if err != nil {
		return nil, err
	}
	return &Instance{class: c, held: held}, nil
}

// InstanceOf tests a value against the resolved target type, resolving on
// demand. Proxies wrapping the target, raw target values, and pointers to
// the target all pass, so code written against the eventually-loaded type
// can check either form uniformly.
func (c *Class) InstanceOf(value any) (bool, error) {
	target, err := c.Resolve()
	if err != nil {
		return false, err
	}

	var t reflect.Type
	if instance, ok := value.(*Instance); ok {
		t = instance.HeldType()
	} else {
		t = reflect.TypeOf(value)
	}
	return typeMatches(t, target.Type), nil
}

// AssignableFrom tests a type against the resolved target type, the
// subclass-check counterpart of InstanceOf.
func (c *Class) AssignableFrom(t reflect.Type) (bool, error) {
	target, err := c.Resolve()
	if err != nil {
		return false, err
	}
	return typeMatches(t, target.Type), nil
}

func typeMatches(t, target reflect.Type) bool {
	if t == nil || target == nil {
		return false
	}
	if t == target {
		return true
	}
	if target.Kind() == reflect.Interface && t.Implements(target) {
		return true
	}
	if t.Kind() == reflect.Pointer && t.Elem() == target {
		return true
	}
	return t.AssignableTo(target)
}
