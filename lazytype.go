// Package lazytype provides deferred-loading proxy types: declare a
// reference to a class by its qualified name without importing the module
// that defines it, and pay the import cost only when the first instance is
// constructed. The root package exposes the default process-wide module
// table and factories; pkg/symbol, pkg/proxy, and pkg/field hold the
// underlying contracts for callers that wire their own.
package lazytype

import (
	"github.com/stefco/lazytype/pkg/field"
	"github.com/stefco/lazytype/pkg/proxy"
	"github.com/stefco/lazytype/pkg/symbol"
)

// Class is a deferred-loading proxy class.
type Class = proxy.Class

// Instance wraps one constructed value of a class's target.
type Instance = proxy.Instance

// FieldClass is a proxy class carrying a schema fragment for an external
// validation model.
type FieldClass = field.Class

// Declared pairs a representation type with fragment overrides in a field
// key.
type Declared = field.Declared

// Modifier is a named configuration action attached to a proxy-class key.
type Modifier = symbol.Modifier

// Symbol is a resolved target type with its constructor.
type Symbol = symbol.Symbol

// Module is the namespace symbols are looked up in.
type Module = symbol.Module

// Strict names the eager existence-check modifier.
const Strict = symbol.Strict

var (
	defaultModules = symbol.NewRegistry()
	defaultProxies = proxy.NewFactory(defaultModules)
	defaultFields  = field.NewFactory(defaultProxies)
)

// Modules returns the default process-wide module table.
func Modules() *symbol.Registry {
	return defaultModules
}

// RegisterModule adds a module initializer to the default table, the way
// database/sql drivers announce themselves.
func RegisterModule(path string, init func() (symbol.Module, error)) error {
	return defaultModules.Register(path, init)
}

// MustRegisterModule panics on registration failure. Init-time wiring.
func MustRegisterModule(path string, init func() (symbol.Module, error)) {
	defaultModules.MustRegister(path, init)
}

// NewModule creates a module namespace holding the given symbols.
func NewModule(name string, symbols ...Symbol) *symbol.MapModule {
	return symbol.NewModule(name, symbols...)
}

// For returns the proxy class for a subscript-style key against the
// default factory: a qualified-name string optionally followed by
// modifiers.
func For(key ...any) (*Class, error) {
	return defaultProxies.Lookup(key...)
}

// MustFor panics on lookup failure.
func MustFor(key ...any) *Class {
	return defaultProxies.MustLookup(key...)
}

// FieldFor returns the field class for a subscript-style key against the
// default field factory: a declared type or Declared pair, then the
// qualified name and modifiers.
func FieldFor(key ...any) (*FieldClass, error) {
	return defaultFields.Lookup(key...)
}

// MustFieldFor panics on lookup failure.
func MustFieldFor(key ...any) *FieldClass {
	return defaultFields.MustLookup(key...)
}

// Reset clears the default module table and both default class registries.
// Test support; production processes never tear these down.
func Reset() {
	defaultModules.Reset()
	defaultProxies.Reset()
	defaultFields.Reset()
}
