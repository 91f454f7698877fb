package proxy

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stefco/lazytype/pkg/symbol"
	"github.com/stefco/lazytype/pkg/testsupport"
)

func TestFactory_LookupDoesNotImport(t *testing.T) {
	world := testsupport.NewWorld()
	factory := NewFactory(world.Registry)

	class, err := factory.Lookup("mathlib.Matrix")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	if world.Imports["mathlib"] != 0 {
		t.Fatalf("class lookup must not import, got %d imports", world.Imports["mathlib"])
	}
	if class.Resolved() {
		t.Fatalf("class must start unresolved")
	}
	if class.Name() != "LazyMatrix" {
		t.Fatalf("unexpected class name %q", class.Name())
	}
}

func TestFactory_ClassIdentity(t *testing.T) {
	world := testsupport.NewWorld()
	factory := NewFactory(world.Registry)

	first := factory.MustLookup("mathlib.Matrix")
	second := factory.MustLookup("mathlib.Matrix")
	if first != second {
		t.Fatalf("repeated lookups must return the same class object")
	}

	strict := factory.MustLookup("mathlib.Matrix", symbol.Strict)
	if strict == first {
		t.Fatalf("different modifiers must produce a different class")
	}

	if factory.Len() != 2 {
		t.Fatalf("expected two cached classes, got %d", factory.Len())
	}
	if !factory.Has("mathlib.Matrix") {
		t.Fatalf("expected cached plain class")
	}
}

func TestFactory_ModifiersCannotHideInTheName(t *testing.T) {
	world := testsupport.NewWorld()
	factory := NewFactory(world.Registry)

	strict := factory.MustLookup("mathlib.Matrix", symbol.Strict)

	// A name that spells out the modifier inline must be rejected, never
	// silently aliased onto the modified class.
	_, err := factory.Lookup("mathlib.Matrix;strict")
	var spec symbol.InvalidSpecError
	if !errors.As(err, &spec) {
		t.Fatalf("expected InvalidSpecError, got %v", err)
	}

	if factory.Len() != 1 {
		t.Fatalf("rejected key must not populate the table, got %d entries", factory.Len())
	}
	if !strict.Spec().Strict() {
		t.Fatalf("the real strict class should be unaffected")
	}
}

func TestFactory_StrictProbesAtLookup(t *testing.T) {
	world := testsupport.NewWorld()
	factory := NewFactory(world.Registry)

	_, err := factory.Lookup("nolib.Thing", symbol.Strict)
	var unavailable symbol.ModuleUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("strict lookup of a missing module must fail immediately, got %v", err)
	}

	strict := factory.MustLookup("mathlib.Matrix", symbol.Strict)
	if world.Imports["mathlib"] != 1 {
		t.Fatalf("strict lookup should probe the module once, got %d imports", world.Imports["mathlib"])
	}
	if strict.Resolved() {
		t.Fatalf("probing must not resolve the symbol itself")
	}
}

func TestFactory_LazyFailureSurfacesAtConstruction(t *testing.T) {
	world := testsupport.NewWorld()
	factory := NewFactory(world.Registry)

	class, err := factory.Lookup("nolib.Thing")
	if err != nil {
		t.Fatalf("non-strict lookup should succeed for an unknown module: %v", err)
	}

	_, err = class.New()
	var unavailable symbol.ModuleUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ModuleUnavailableError at first construction, got %v", err)
	}
}

func TestFactory_SymbolNotFoundAtConstruction(t *testing.T) {
	world := testsupport.NewWorld()
	factory := NewFactory(world.Registry)

	class := factory.MustLookup("mathlib.Quaternion")
	_, err := class.New()

	var notFound symbol.SymbolNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected SymbolNotFoundError, got %v", err)
	}
}

func TestFactory_BrokenModuleInitializer(t *testing.T) {
	world := testsupport.NewWorld()
	factory := NewFactory(world.Registry)

	class := factory.MustLookup("brokenlib.Thing")
	_, err := class.New()

	var unavailable symbol.ModuleUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ModuleUnavailableError, got %v", err)
	}
	if unavailable.Unwrap() == nil {
		t.Fatalf("initializer failure should be preserved as the cause")
	}
}

func TestClass_ResolutionIsMemoized(t *testing.T) {
	world := testsupport.NewWorld()
	factory := NewFactory(world.Registry)
	class := factory.MustLookup("mathlib.Matrix")

	if _, err := class.New(2, 3); err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := class.New(4, 5); err != nil {
		t.Fatalf("new: %v", err)
	}

	if world.Imports["mathlib"] != 1 {
		t.Fatalf("expected a single import, got %d", world.Imports["mathlib"])
	}
	if !class.Resolved() {
		t.Fatalf("class should be resolved after construction")
	}
	target, ok := class.Target()
	if !ok || target.Name != "Matrix" {
		t.Fatalf("unexpected target %+v ok=%v", target, ok)
	}
}

func TestClass_ConstructorErrorsPropagate(t *testing.T) {
	world := testsupport.NewWorld()
	factory := NewFactory(world.Registry)
	class := factory.MustLookup("mathlib.Matrix")

	_, err := class.New(-1, 2)
	if err == nil {
		t.Fatalf("expected constructor error")
	}
	var unavailable symbol.ModuleUnavailableError
	if errors.As(err, &unavailable) {
		t.Fatalf("constructor failure must propagate unchanged, got %v", err)
	}
}

func TestClass_InstanceOf(t *testing.T) {
	world := testsupport.NewWorld()
	factory := NewFactory(world.Registry)
	class := factory.MustLookup("mathlib.Matrix")

	instance, err := class.New(2, 3)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	cases := map[string]struct {
		value any
		want  bool
	}{
		"proxy instance":        {instance, true},
		"raw target value":      {testsupport.Matrix{Rows: 1, Cols: 1}, true},
		"pointer to target":     {&testsupport.Matrix{}, true},
		"unrelated value":       {"matrix", false},
		"other container value": {testsupport.Vector{}, false},
	}
	for name, tc := range cases {
		got, err := class.InstanceOf(tc.value)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: InstanceOf = %v, want %v", name, got, tc.want)
		}
	}
}

func TestClass_InstanceOfResolvesOnDemand(t *testing.T) {
	world := testsupport.NewWorld()
	factory := NewFactory(world.Registry)
	class := factory.MustLookup("mathlib.Matrix")

	// No instance was ever constructed; the identity check itself must
	// trigger resolution.
	ok, err := class.InstanceOf(testsupport.Matrix{})
	if err != nil {
		t.Fatalf("instance of: %v", err)
	}
	if !ok {
		t.Fatalf("raw target value should pass the identity check")
	}
	if world.Imports["mathlib"] != 1 {
		t.Fatalf("expected the check to import once, got %d", world.Imports["mathlib"])
	}
}

func TestClass_AssignableFrom(t *testing.T) {
	world := testsupport.NewWorld()
	factory := NewFactory(world.Registry)
	class := factory.MustLookup("mathlib.Matrix")

	ok, err := class.AssignableFrom(reflect.TypeOf(testsupport.Matrix{}))
	if err != nil {
		t.Fatalf("assignable from: %v", err)
	}
	if !ok {
		t.Fatalf("target type should be assignable to itself")
	}

	ok, err = class.AssignableFrom(reflect.TypeOf(""))
	if err != nil {
		t.Fatalf("assignable from: %v", err)
	}
	if ok {
		t.Fatalf("unrelated type should not be assignable")
	}
}

func TestClass_SpecIsACopy(t *testing.T) {
	world := testsupport.NewWorld()
	factory := NewFactory(world.Registry)

	args := []any{"x"}
	class := factory.MustLookup("mathlib.Matrix", symbol.Modifier{Name: symbol.Strict, Args: args})

	spec := class.Spec()
	spec.Modifiers[0].Name = "mutated"
	spec.Modifiers[0].Args[0] = "mutated"

	if !class.Spec().Strict() {
		t.Fatalf("mutating the returned spec leaked into the class")
	}
	if class.Spec().Modifiers[0].Args[0] != "x" {
		t.Fatalf("mutating the returned arguments leaked into the class")
	}

	// The slice the caller built the key from is not retained either.
	args[0] = "mutated"
	if class.Spec().Modifiers[0].Args[0] != "x" {
		t.Fatalf("caller slice mutation leaked into the class")
	}
}

func TestFactory_ConcurrentFirstUse(t *testing.T) {
	var imports atomic.Int32
	modules := symbol.NewRegistry()
	modules.MustRegister("mathlib", func() (symbol.Module, error) {
		imports.Add(1)
		return testsupport.MathModule(), nil
	})
	factory := NewFactory(modules)

	const workers = 16
	classes := make([]*Class, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			class, err := factory.Lookup("mathlib.Matrix")
			if err != nil {
				t.Errorf("lookup: %v", err)
				return
			}
			classes[i] = class
			if _, err := class.New(1, 1); err != nil {
				t.Errorf("new: %v", err)
			}
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if classes[i] != classes[0] {
			t.Fatalf("concurrent lookups must share one class object")
		}
	}
	if got := imports.Load(); got != 1 {
		t.Fatalf("concurrent first constructions must import once, got %d", got)
	}
	if factory.Len() != 1 {
		t.Fatalf("expected one cached class, got %d", factory.Len())
	}
}
