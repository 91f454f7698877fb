package field

import (
	"fmt"
	"reflect"

	"github.com/stefco/lazytype/pkg/proxy"
	"github.com/stefco/lazytype/pkg/registry"
	"github.com/stefco/lazytype/pkg/symbol"
)

// Declared pairs a representation type with explicit fragment overrides,
// the range-like first element of a field subscript key. Type may be a
// reflect.Type or any value used as a type witness; a nil Type with
// overrides supplies the fragment explicitly, skipping derivation.
type Declared struct {
	Type      any
	Overrides map[string]any
}

// Factory builds and caches field classes. Field classes carry fragment
// state, so the table is independent of the plain proxy registry even
// though both share the same cache mechanism.
type Factory struct {
	proxies *proxy.Factory
	fields  *registry.Cache[string, *Class]
}

// NewFactory wires a field factory over the proxy factory it builds
// underlying classes with.
func NewFactory(proxies *proxy.Factory) *Factory {
	if proxies == nil {
		panic("field: proxy factory is required")
	}
	return &Factory{
		proxies: proxies,
		fields:  registry.New[string, *Class](),
	}
}

// Lookup returns the field class for a subscript-style key: a declared
// type (or Declared pair) followed by the qualified name and modifiers.
// Repeated lookups of one key return the same class object.
func (f *Factory) Lookup(key ...any) (*Class, error) {
	if len(key) < 2 {
		return nil, symbol.InvalidSpecError{Reason: "field key must pair a declared type with a qualified name"}
	}

	declared, overrides, err := splitDeclared(key[0])
	if err != nil {
		return nil, err
	}
	spec, err := symbol.ParseKey(key[1:]...)
	if err != nil {
		return nil, err
	}
	if declared == nil && len(overrides) == 0 {
		return nil, symbol.InvalidSpecError{Reason: "field key needs a declared type or explicit overrides"}
	}

	cacheKey := fieldCacheKey(declared, overrides, spec)
	return f.fields.GetOrCreate(cacheKey, func() (*Class, error) {
		base, err := f.proxies.LookupSpec(spec)
		if err != nil {
			return nil, err
		}

		var fragment map[string]any
		if declared != nil {
			fragment, err = deriveFragment(declared)
			if err != nil {
				return nil, err
			}
		}
		fragment = mergeFragment(fragment, overrides)

		return &Class{Class: base, declared: declared, fragment: fragment}, nil
	})
}

// MustLookup panics on lookup failure.
func (f *Factory) MustLookup(key ...any) *Class {
	class, err := f.Lookup(key...)
	if err != nil {
		panic(err)
	}
	return class
}

// Len returns the number of cached field classes.
func (f *Factory) Len() int {
	return f.fields.Len()
}

// Reset discards all cached field classes. Test support.
func (f *Factory) Reset() {
	f.fields.Reset()
}

func splitDeclared(part any) (reflect.Type, map[string]any, error) {
	switch value := part.(type) {
	case nil:
		return nil, nil, symbol.InvalidSpecError{Reason: "declared type must not be nil"}
	case Declared:
		declared, err := declaredType(value.Type)
		if err != nil {
			return nil, nil, err
		}
		return declared, value.Overrides, nil
	default:
		declared, err := declaredType(part)
		if err != nil {
			return nil, nil, err
		}
		if declared == nil {
			return nil, nil, symbol.InvalidSpecError{Reason: fmt.Sprintf("cannot use %T as a declared type", part)}
		}
		return declared, nil, nil
	}
}

func declaredType(witness any) (reflect.Type, error) {
	switch value := witness.(type) {
	case nil:
		return nil, nil
	case reflect.Type:
		return value, nil
	default:
		return reflect.TypeOf(witness), nil
	}
}

func fieldCacheKey(declared reflect.Type, overrides map[string]any, spec symbol.Spec) string {
	name := "<explicit>"
	if declared != nil {
		name = declared.String()
		if pkg := declared.PkgPath(); pkg != "" {
			name = pkg + "." + name
		}
	}
	// Quoting each component keeps the key decomposable even when the
	// overrides JSON or a type name contains the separator byte.
	return fmt.Sprintf("%q|%q|%q", name, canonicalFragment(overrides), spec.CacheKey())
}
