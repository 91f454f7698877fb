package symbol

import (
	"errors"
	"testing"
)

func resolverRegistry(t *testing.T) *Registry {
	t.Helper()

	registry := NewRegistry()
	registry.MustRegister("toolkit.widgets", func() (Module, error) {
		return widgetModule(), nil
	})
	return registry
}

func TestResolver_Resolve(t *testing.T) {
	resolver := NewResolver(resolverRegistry(t))

	sym, err := resolver.Resolve(MustParseQualifiedName("toolkit.widgets.Widget"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sym.Name != "Widget" {
		t.Fatalf("unexpected symbol %+v", sym)
	}
}

func TestResolver_ModuleUnavailable(t *testing.T) {
	resolver := NewResolver(resolverRegistry(t))

	_, err := resolver.Resolve(MustParseQualifiedName("nolib.Widget"))
	var unavailable ModuleUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ModuleUnavailableError, got %v", err)
	}
}

func TestResolver_SymbolNotFound(t *testing.T) {
	resolver := NewResolver(resolverRegistry(t))

	_, err := resolver.Resolve(MustParseQualifiedName("toolkit.widgets.Gadget"))
	var notFound SymbolNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected SymbolNotFoundError, got %v", err)
	}
}

func TestResolver_ZeroName(t *testing.T) {
	resolver := NewResolver(resolverRegistry(t))

	if _, err := resolver.Resolve(QualifiedName{}); err == nil {
		t.Fatalf("expected error for zero name")
	}
}

func TestProbe(t *testing.T) {
	registry := resolverRegistry(t)

	if err := Probe(registry, MustParseQualifiedName("toolkit.widgets.Widget")); err != nil {
		t.Fatalf("probe: %v", err)
	}

	err := Probe(registry, MustParseQualifiedName("nolib.Widget"))
	var unavailable ModuleUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ModuleUnavailableError, got %v", err)
	}

	// Probing only checks the module; the symbol may still be missing.
	if err := Probe(registry, MustParseQualifiedName("toolkit.widgets.Gadget")); err != nil {
		t.Fatalf("probe should not look up the symbol: %v", err)
	}
}
