package symbol

import "fmt"

// Resolver turns a qualified name into a loaded Symbol by importing the
// module path and looking up the trailing segment. The resolver itself
// holds no state; memoization lives in the importer and, for proxy
// classes, on the class's own target slot.
type Resolver struct {
	importer Importer
}

// NewResolver wires a resolver to the importer it loads modules through.
func NewResolver(importer Importer) *Resolver {
	if importer == nil {
		panic("symbol: importer is required")
	}
	return &Resolver{importer: importer}
}

// Resolve imports the module path and returns the named symbol.
func (r *Resolver) Resolve(name QualifiedName) (Symbol, error) {
	if name.IsZero() {
		return Symbol{}, fmt.Errorf("symbol: cannot resolve a zero qualified name")
	}

	module, err := r.importer.Import(name.Module())
	if err != nil {
		return Symbol{}, err
	}
	return module.Lookup(name.Symbol())
}

// Probe verifies that a qualified name's module is importable without
// touching the symbol itself. The strict modifier uses this for its eager
// existence check at class-lookup time.
func Probe(importer Importer, name QualifiedName) error {
	if importer == nil {
		return fmt.Errorf("symbol: importer is required")
	}
	if name.IsZero() {
		return fmt.Errorf("symbol: cannot probe a zero qualified name")
	}

	_, err := importer.Import(name.Module())
	return err
}
