// Package forward implements the reflection plumbing behind the proxy's
// explicit forwarding surface: attribute reads, method calls, container
// item access, and member enumeration against a held value. The held value
// is always a pointer to the constructed target so pointer-receiver
// methods and in-place container writes both work.
package forward

import (
	"fmt"
	"reflect"
)

// Attribute reads an exported struct field or a bound method by name.
// The second return reports whether the name exists on the held value.
func Attribute(held reflect.Value, name string) (any, bool) {
	if !held.IsValid() || held.Kind() != reflect.Pointer {
		return nil, false
	}

	elem := held.Elem()
	if elem.Kind() == reflect.Struct {
		if field, ok := elem.Type().FieldByName(name); ok && field.IsExported() {
			return elem.FieldByIndex(field.Index).Interface(), true
		}
	}

	if method := held.MethodByName(name); method.IsValid() {
		return method.Interface(), true
	}
	return nil, false
}

// SetAttribute writes an exported struct field on the held value. Used by
// callers that explicitly opt into mutating the wrapped object; the
// proxy's own Set never routes here. The boolean reports whether the
// named field exists and is settable.
func SetAttribute(held reflect.Value, name string, value any) (bool, error) {
	if !held.IsValid() || held.Kind() != reflect.Pointer {
		return false, fmt.Errorf("forward: held value is not addressable")
	}
	elem := held.Elem()
	if elem.Kind() != reflect.Struct {
		return false, nil
	}
	field, ok := elem.Type().FieldByName(name)
	if !ok || !field.IsExported() {
		return false, nil
	}

	target := elem.FieldByIndex(field.Index)
	converted, err := convert(value, target.Type())
	if err != nil {
		return true, fmt.Errorf("forward: set %q: %w", name, err)
	}
	target.Set(converted)
	return true, nil
}

// Call invokes a bound method by name, converting arguments to the
// method's parameter types. Results come back as a plain slice; any error
// value the method itself returns is part of the results, not of the call
// mechanics.
func Call(held reflect.Value, name string, args []any) ([]any, bool, error) {
	if !held.IsValid() || held.Kind() != reflect.Pointer {
		return nil, false, fmt.Errorf("forward: held value is not addressable")
	}
	method := held.MethodByName(name)
	if !method.IsValid() {
		return nil, false, nil
	}

	in, err := convertArgs(method.Type(), args)
	if err != nil {
		return nil, true, fmt.Errorf("forward: call %q: %w", name, err)
	}

	out := method.Call(in)
	results := make([]any, len(out))
	for i, value := range out {
		results[i] = value.Interface()
	}
	return results, true, nil
}

func convertArgs(fn reflect.Type, args []any) ([]reflect.Value, error) {
	numIn := fn.NumIn()
	if fn.IsVariadic() {
		if len(args) < numIn-1 {
			return nil, fmt.Errorf("want at least %d arguments, got %d", numIn-1, len(args))
		}
	} else if len(args) != numIn {
		return nil, fmt.Errorf("want %d arguments, got %d", numIn, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var paramType reflect.Type
		if fn.IsVariadic() && i >= numIn-1 {
			paramType = fn.In(numIn - 1).Elem()
		} else {
			paramType = fn.In(i)
		}
		converted, err := convert(arg, paramType)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = converted
	}
	return in, nil
}

// Item reads held[key] for map, slice, and array targets. A missing map
// key returns the element type's zero value, matching direct map access.
func Item(held reflect.Value, key any) (any, error) {
	target, err := container(held)
	if err != nil {
		return nil, err
	}

	switch target.Kind() {
	case reflect.Map:
		kv, err := convert(key, target.Type().Key())
		if err != nil {
			return nil, fmt.Errorf("forward: item key: %w", err)
		}
		value := target.MapIndex(kv)
		if !value.IsValid() {
			return reflect.Zero(target.Type().Elem()).Interface(), nil
		}
		return value.Interface(), nil
	case reflect.Slice, reflect.Array:
		index, err := itemIndex(key, target.Len())
		if err != nil {
			return nil, err
		}
		return target.Index(index).Interface(), nil
	default:
		return nil, fmt.Errorf("forward: %s does not support item access", target.Type())
	}
}

// SetItem writes held[key] = value for map and slice targets. The write
// lands on the held value itself.
func SetItem(held reflect.Value, key, value any) error {
	target, err := container(held)
	if err != nil {
		return err
	}

	switch target.Kind() {
	case reflect.Map:
		if target.IsNil() {
			target.Set(reflect.MakeMap(target.Type()))
		}
		kv, err := convert(key, target.Type().Key())
		if err != nil {
			return fmt.Errorf("forward: item key: %w", err)
		}
		ev, err := convert(value, target.Type().Elem())
		if err != nil {
			return fmt.Errorf("forward: item value: %w", err)
		}
		target.SetMapIndex(kv, ev)
		return nil
	case reflect.Slice, reflect.Array:
		index, err := itemIndex(key, target.Len())
		if err != nil {
			return err
		}
		ev, err := convert(value, target.Type().Elem())
		if err != nil {
			return fmt.Errorf("forward: item value: %w", err)
		}
		target.Index(index).Set(ev)
		return nil
	default:
		return fmt.Errorf("forward: %s does not support item assignment", target.Type())
	}
}

// DeleteItem removes held[key] for map targets.
func DeleteItem(held reflect.Value, key any) error {
	target, err := container(held)
	if err != nil {
		return err
	}

	if target.Kind() != reflect.Map {
		return fmt.Errorf("forward: %s does not support item deletion", target.Type())
	}
	kv, err := convert(key, target.Type().Key())
	if err != nil {
		return fmt.Errorf("forward: item key: %w", err)
	}
	target.SetMapIndex(kv, reflect.Value{})
	return nil
}

// Members lists the held value's exported fields and methods, unsorted.
func Members(held reflect.Value) []string {
	if !held.IsValid() || held.Kind() != reflect.Pointer {
		return nil
	}

	var names []string
	elem := held.Elem()
	if elem.Kind() == reflect.Struct {
		t := elem.Type()
		for i := 0; i < t.NumField(); i++ {
			if field := t.Field(i); field.IsExported() {
				names = append(names, field.Name)
			}
		}
	}

	t := held.Type()
	for i := 0; i < t.NumMethod(); i++ {
		if method := t.Method(i); method.IsExported() {
			names = append(names, method.Name)
		}
	}
	return names
}

func container(held reflect.Value) (reflect.Value, error) {
	if !held.IsValid() || held.Kind() != reflect.Pointer {
		return reflect.Value{}, fmt.Errorf("forward: held value is not addressable")
	}
	return held.Elem(), nil
}

func itemIndex(key any, length int) (int, error) {
	converted, err := convert(key, reflect.TypeOf(int(0)))
	if err != nil {
		return 0, fmt.Errorf("forward: item index: %w", err)
	}
	index := int(converted.Int())
	if index < 0 || index >= length {
		return 0, fmt.Errorf("forward: index %d out of range [0:%d]", index, length)
	}
	return index, nil
}

func convert(value any, target reflect.Type) (reflect.Value, error) {
	if value == nil {
		switch target.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(target), nil
		default:
			return reflect.Value{}, fmt.Errorf("cannot use nil as %s", target)
		}
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(target) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(target) {
		return rv.Convert(target), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", rv.Type(), target)
}
