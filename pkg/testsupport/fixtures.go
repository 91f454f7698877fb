// Package testsupport provides the fixture module table shared by package
// tests: a fake "mathlib" module with import counters, so tests can assert
// that resolution really is deferred until first construction.
package testsupport

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stefco/lazytype/pkg/symbol"
)

// Matrix is the fixture target type standing in for a heavy numeric
// dependency.
type Matrix struct {
	Rows int
	Cols int
	Name string
}

// Size returns the element count.
func (m Matrix) Size() int {
	return m.Rows * m.Cols
}

// Scale multiplies both dimensions in place.
func (m *Matrix) Scale(factor int) {
	m.Rows *= factor
	m.Cols *= factor
}

// Vector is a dict-like fixture target exercising container forwarding.
type Vector map[string]float64

// World bundles a module table with per-path import counters.
type World struct {
	Registry *symbol.Registry
	Imports  map[string]int
}

// NewWorld builds a registry with the mathlib fixture module registered
// but not imported, plus a module whose initializer always fails.
func NewWorld() *World {
	world := &World{
		Registry: symbol.NewRegistry(),
		Imports:  make(map[string]int),
	}
	world.Registry.MustRegister("mathlib", func() (symbol.Module, error) {
		world.Imports["mathlib"]++
		return MathModule(), nil
	})
	world.Registry.MustRegister("brokenlib", func() (symbol.Module, error) {
		world.Imports["brokenlib"]++
		return nil, fmt.Errorf("fixture module refuses to load")
	})
	return world
}

// MathModule builds the fixture module namespace.
func MathModule() *symbol.MapModule {
	return symbol.NewModule("mathlib",
		symbol.Symbol{
			Name: "Matrix",
			Type: reflect.TypeOf(Matrix{}),
			New:  newMatrix,
		},
		symbol.Symbol{
			Name: "Vector",
			Type: reflect.TypeOf(Vector{}),
			New:  newVector,
		},
	)
}

func newMatrix(args ...any) (any, error) {
	switch len(args) {
	case 0:
		return Matrix{}, nil
	case 1:
		if m, ok := args[0].(Matrix); ok {
			return m, nil
		}
		return nil, fmt.Errorf("mathlib: cannot build Matrix from %T", args[0])
	case 2:
		rows, rowsOK := args[0].(int)
		cols, colsOK := args[1].(int)
		if !rowsOK || !colsOK {
			return nil, fmt.Errorf("mathlib: Matrix dimensions must be ints")
		}
		if rows < 0 || cols < 0 {
			return nil, fmt.Errorf("mathlib: Matrix dimensions must be non-negative")
		}
		return Matrix{Rows: rows, Cols: cols}, nil
	default:
		return nil, fmt.Errorf("mathlib: Matrix takes at most two arguments")
	}
}

func newVector(args ...any) (any, error) {
	if len(args) > 0 {
		switch v := args[0].(type) {
		case Vector:
			return v, nil
		case map[string]float64:
			return Vector(v), nil
		default:
			return nil, fmt.Errorf("mathlib: cannot build Vector from %T", args[0])
		}
	}
	return Vector{}, nil
}

// Diff returns a go-cmp diff string if the values differ.
func Diff(want, got any) string {
	return cmp.Diff(want, got)
}

// AssertNoDiff fails the test when the values differ.
func AssertNoDiff(t *testing.T, want, got any) {
	t.Helper()
	if diff := Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
