package proxy

import (
	"github.com/stefco/lazytype/pkg/registry"
	"github.com/stefco/lazytype/pkg/symbol"
)

// Factory builds and caches proxy classes. It owns its registry table, so
// callers hold the cache by reference instead of sharing ambient global
// state; Reset clears it between test cases.
type Factory struct {
	importer symbol.Importer
	resolver *symbol.Resolver
	classes  *registry.Cache[string, *Class]
}

// NewFactory wires a factory to the importer its classes resolve through.
func NewFactory(importer symbol.Importer) *Factory {
	return &Factory{
		importer: importer,
		resolver: symbol.NewResolver(importer),
		classes:  registry.New[string, *Class](),
	}
}

// Lookup returns the proxy class for a subscript-style key: a bare
// qualified-name string optionally followed by modifiers. Repeated lookups
// of one key return the same class object. The strict modifier probes the
// target module here, at class-lookup time; without it, resolution waits
// for the first construction.
func (f *Factory) Lookup(key ...any) (*Class, error) {
	spec, err := symbol.ParseKey(key...)
	if err != nil {
		return nil, err
	}
	return f.LookupSpec(spec)
}

// LookupSpec is Lookup for callers that already hold a normalized spec.
func (f *Factory) LookupSpec(spec symbol.Spec) (*Class, error) {
	return f.classes.GetOrCreate(spec.CacheKey(), func() (*Class, error) {
		if spec.Strict() {
			if err := symbol.Probe(f.importer, spec.Name); err != nil {
				return nil, err
			}
		}
		return newClass(spec, f.resolver), nil
	})
}

// MustLookup panics on lookup failure. Useful for declarations wired at
// init time.
func (f *Factory) MustLookup(key ...any) *Class {
	class, err := f.Lookup(key...)
	if err != nil {
		panic(err)
	}
	return class
}

// Has reports whether a key already maps to a cached class.
func (f *Factory) Has(key ...any) bool {
	spec, err := symbol.ParseKey(key...)
	if err != nil {
		return false
	}
	return f.classes.Has(spec.CacheKey())
}

// Len returns the number of cached classes.
func (f *Factory) Len() int {
	return f.classes.Len()
}

// Keys returns the cached class keys in unspecified order.
func (f *Factory) Keys() []string {
	return f.classes.Keys()
}

// Reset discards all cached classes. Test support.
func (f *Factory) Reset() {
	f.classes.Reset()
}
