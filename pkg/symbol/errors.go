package symbol

import "fmt"

// InvalidSpecError reports a malformed subscript key or an unrecognized
// modifier name. Surfaced at key-parse time, before any class exists.
type InvalidSpecError struct {
	Modifier string
	Reason   string
}

func (e InvalidSpecError) Error() string {
	if e.Modifier != "" {
		return fmt.Sprintf("symbol: invalid spec: unknown modifier %q", e.Modifier)
	}
	return fmt.Sprintf("symbol: invalid spec: %s", e.Reason)
}

// ModuleUnavailableError reports that a module path could not be imported,
// either because nothing registered it or because its initializer failed.
type ModuleUnavailableError struct {
	Module string
	Err    error
}

func (e ModuleUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("symbol: module %q unavailable: %v", e.Module, e.Err)
	}
	return fmt.Sprintf("symbol: module %q unavailable", e.Module)
}

// Unwrap exposes the initializer failure, when there is one.
func (e ModuleUnavailableError) Unwrap() error {
	return e.Err
}

// SymbolNotFoundError reports that an imported module does not define the
// requested symbol.
type SymbolNotFoundError struct {
	Module string
	Symbol string
}

func (e SymbolNotFoundError) Error() string {
	return fmt.Sprintf("symbol: %q not found in module %q", e.Symbol, e.Module)
}
