package symbol

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	gocache "github.com/patrickmn/go-cache"
)

// Symbol is a resolved target: the named type a proxy stands in for, with
// an optional constructor. When New is nil, Construct falls back to the
// zero value, or to converting a single assignable argument.
type Symbol struct {
	Name string
	Type reflect.Type
	New  func(args ...any) (any, error)
}

// Construct builds an instance of the target type from constructor
// arguments. Errors from a custom constructor propagate unchanged.
func (s Symbol) Construct(args ...any) (any, error) {
	if s.New != nil {
		return s.New(args...)
	}
	if s.Type == nil {
		return nil, fmt.Errorf("symbol: %q has no type to construct", s.Name)
	}

	switch len(args) {
	case 0:
		return reflect.New(s.Type).Elem().Interface(), nil
	case 1:
		value := reflect.ValueOf(args[0])
		if !value.IsValid() {
			return nil, fmt.Errorf("symbol: cannot construct %q from nil", s.Name)
		}
		if value.Type().AssignableTo(s.Type) {
			return value.Convert(s.Type).Interface(), nil
		}
		if value.Type().ConvertibleTo(s.Type) {
			return value.Convert(s.Type).Interface(), nil
		}
		return nil, fmt.Errorf("symbol: cannot construct %q from %s", s.Name, value.Type())
	default:
		return nil, fmt.Errorf("symbol: %q has no constructor accepting %d arguments", s.Name, len(args))
	}
}

// Module is the namespace a qualified name's symbol is looked up in.
type Module interface {
	// Name returns the dotted module path.
	Name() string
	// Lookup returns the named symbol or a SymbolNotFoundError.
	Lookup(name string) (Symbol, error)
}

// Importer loads a module by its dotted path. Implementations memoize so
// repeated imports of one path are cheap and side-effect free after the
// first.
type Importer interface {
	Import(path string) (Module, error)
}

// MapModule is the standard Module implementation: a named table of
// symbols populated through Define.
type MapModule struct {
	name    string
	symbols map[string]Symbol
}

// NewModule creates a MapModule holding the given symbols.
func NewModule(name string, symbols ...Symbol) *MapModule {
	module := &MapModule{
		name:    name,
		symbols: make(map[string]Symbol, len(symbols)),
	}
	for _, sym := range symbols {
		module.symbols[sym.Name] = sym
	}
	return module
}

// Name returns the dotted module path.
func (m *MapModule) Name() string {
	return m.name
}

// Define adds or replaces a symbol in the module namespace.
func (m *MapModule) Define(sym Symbol) {
	m.symbols[sym.Name] = sym
}

// Lookup returns the named symbol.
func (m *MapModule) Lookup(name string) (Symbol, error) {
	sym, ok := m.symbols[name]
	if !ok {
		return Symbol{}, SymbolNotFoundError{Module: m.name, Symbol: name}
	}
	return sym, nil
}

// Symbols returns the sorted symbol names defined by the module.
func (m *MapModule) Symbols() []string {
	names := make([]string, 0, len(m.symbols))
	for name := range m.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry is the process-scoped module table. Packages register an
// initializer per module path; the initializer runs at most once under
// normal operation, and its result is memoized for the process lifetime.
type Registry struct {
	mu     sync.Mutex
	inits  map[string]func() (Module, error)
	loaded *gocache.Cache
}

// NewRegistry creates an empty module table.
func NewRegistry() *Registry {
	return &Registry{
		inits:  make(map[string]func() (Module, error)),
		loaded: gocache.New(gocache.NoExpiration, 0),
	}
}

// Register associates a module path with its initializer. Duplicate paths
// return an error.
func (r *Registry) Register(path string, init func() (Module, error)) error {
	if path == "" {
		return fmt.Errorf("symbol: module path is required")
	}
	if init == nil {
		return fmt.Errorf("symbol: module initializer is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.inits[path]; exists {
		return fmt.Errorf("symbol: module %q already registered", path)
	}
	r.inits[path] = init
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(path string, init func() (Module, error)) {
	if err := r.Register(path, init); err != nil {
		panic(err)
	}
}

// Import loads a module, running its initializer on first use only. Two
// concurrent first imports may both run the initializer; exactly one
// result wins the memoization slot, which is benign for side-effect-free
// initializers.
func (r *Registry) Import(path string) (Module, error) {
	if entry, ok := r.loaded.Get(path); ok {
		return entry.(Module), nil
	}

	r.mu.Lock()
	init, ok := r.inits[path]
	r.mu.Unlock()
	if !ok {
		return nil, ModuleUnavailableError{Module: path}
	}

	module, err := init()
	if err != nil {
		return nil, ModuleUnavailableError{Module: path, Err: err}
	}
	if module == nil {
		return nil, ModuleUnavailableError{Module: path, Err: fmt.Errorf("initializer returned no module")}
	}

	if err := r.loaded.Add(path, module, gocache.NoExpiration); err != nil {
		// Lost the race; the earlier import's module stands.
		if entry, ok := r.loaded.Get(path); ok {
			return entry.(Module), nil
		}
	}
	return module, nil
}

// Has reports whether a module path has a registered initializer.
func (r *Registry) Has(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.inits[path]
	return ok
}

// Loaded reports whether a module path has been imported already.
func (r *Registry) Loaded(path string) bool {
	_, ok := r.loaded.Get(path)
	return ok
}

// Reset clears both the initializer table and the memoized modules. Test
// support; production code never tears the table down.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.inits = make(map[string]func() (Module, error))
	r.loaded.Flush()
}
