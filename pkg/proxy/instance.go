package proxy

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/stefco/lazytype/internal/forward"
)

// Instance wraps one constructed value of a class's target type. Reads,
// calls, and item access forward to the held value; attribute writes stay
// on the proxy, so proxy state can diverge from the wrapped object by
// design of the construction protocol.
type Instance struct {
	class *Class
	held  reflect.Value
	attrs map[string]any
}

// Class returns the proxy class the instance belongs to.
func (i *Instance) Class() *Class {
	return i.class
}

// Unwrap returns the held value. Callers needing target members outside
// the forwarding surface go through this escape hatch explicitly.
func (i *Instance) Unwrap() any {
	return i.held.Elem().Interface()
}

// HeldType returns the dynamic type of the held value.
func (i *Instance) HeldType() reflect.Type {
	return i.held.Elem().Type()
}

// Get reads an attribute: proxy-local attributes written through Set win,
// then exported fields and methods of the held value. Absent names fail
// with AttributeError.
func (i *Instance) Get(name string) (any, error) {
	if value, ok := i.attrs[name]; ok {
		return value, nil
	}
	if value, ok := forward.Attribute(i.held, name); ok {
		return value, nil
	}
	return nil, AttributeError{Name: name, Target: i.class.QualifiedName().String()}
}

// Set writes an attribute on the proxy object itself, never on the held
// instance.
func (i *Instance) Set(name string, value any) {
	if i.attrs == nil {
		i.attrs = make(map[string]any)
	}
	i.attrs[name] = value
}

// SetHeld writes an exported field on the held instance itself, the
// explicit opt-in counterpart to Set. Like Unwrap, it names the escape
// hatch out loud; absent or unexported fields fail with AttributeError.
func (i *Instance) SetHeld(name string, value any) error {
	found, err := forward.SetAttribute(i.held, name, value)
	if err != nil {
		return err
	}
	if !found {
		return AttributeError{Name: name, Target: i.class.QualifiedName().String()}
	}
	return nil
}

// Call invokes a method on the held value by name. Results are returned as
// a plain slice; errors the method itself returns are results, not call
// failures.
func (i *Instance) Call(name string, args ...any) ([]any, error) {
	results, found, err := forward.Call(i.held, name, args)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, AttributeError{Name: name, Target: i.class.QualifiedName().String()}
	}
	return results, nil
}

// Item forwards held[key] for container targets.
func (i *Instance) Item(key any) (any, error) {
	return forward.Item(i.held, key)
}

// SetItem forwards held[key] = value; the write lands on the held
// instance.
func (i *Instance) SetItem(key, value any) error {
	return forward.SetItem(i.held, key, value)
}

// DeleteItem forwards deletion of held[key].
func (i *Instance) DeleteItem(key any) error {
	return forward.DeleteItem(i.held, key)
}

// Members returns the sorted, deduplicated union of the proxy's own
// surface, proxy-local attributes, and the held value's fields and
// methods.
func (i *Instance) Members() []string {
	seen := make(map[string]struct{})

	t := reflect.TypeOf(i)
	for idx := 0; idx < t.NumMethod(); idx++ {
		seen[t.Method(idx).Name] = struct{}{}
	}
	for name := range i.attrs {
		seen[name] = struct{}{}
	}
	for _, name := range forward.Members(i.held) {
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the held value's own string form behind a wrapping
// marker, indenting continuation lines to align under the first.
func (i *Instance) String() string {
	prefix := "<" + i.class.Name() + " "
	body := fmt.Sprintf("%v", i.held.Elem().Interface())

	lines := strings.Split(body, "\n")
	if len(lines) > 1 {
		pad := strings.Repeat(" ", len(prefix))
		for idx := 1; idx < len(lines); idx++ {
			lines[idx] = pad + lines[idx]
		}
	}
	return prefix + strings.Join(lines, "\n") + ">"
}

// box normalizes a constructed value into a pointer to the target type so
// pointer-receiver methods and in-place container writes work against it.
func box(target reflect.Type, value any) (reflect.Value, error) {
	if target == nil {
		return reflect.Value{}, fmt.Errorf("proxy: target type is not set")
	}

	ptr := reflect.New(target)
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return ptr, nil
	}
	if rv.Kind() == reflect.Pointer && rv.Type().Elem() == target {
		return rv, nil
	}
	if rv.Type().AssignableTo(target) {
		ptr.Elem().Set(rv)
		return ptr, nil
	}
	if rv.Type().ConvertibleTo(target) {
		ptr.Elem().Set(rv.Convert(target))
		return ptr, nil
	}
	return reflect.Value{}, fmt.Errorf("proxy: constructor for %s returned %s", target, rv.Type())
}
