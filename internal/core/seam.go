package core

import (
	"fmt"
	"reflect"
	"unsafe"
)

// accessorField finds the field named accessor on the struct value subject.
// Unexported fields are made settable. A field promoted through a nil
// embedded pointer counts as missing.
func accessorField(subject reflect.Value, accessor string) (reflect.Value, bool) {
	structField, ok := subject.Type().FieldByName(accessor)
	if !ok {
		structField, ok = subject.Type().FieldByName(exported(accessor))
	}

	if !ok {
		return reflect.Value{}, false
	}

	field := subject

	for i, index := range structField.Index {
		if i > 0 && field.Kind() == reflect.Pointer {
			if field.IsNil() {
				return reflect.Value{}, false
			}

			field = field.Elem()
		}

		field = field.Field(index)
	}

	return settable(field), true
}

// funcTable builds a value of the struct type typ whose func fields all
// record into spy under their own names.
func funcTable(typ reflect.Type, spy *Spy) (reflect.Value, error) {
	table := reflect.New(typ).Elem()
	funcs := 0

	for i := range typ.NumField() {
		structField := typ.Field(i)
		if structField.Type.Kind() != reflect.Func {
			continue
		}

		settable(table.Field(i)).Set(spy.Func(structField.Name, structField.Type))

		funcs++
	}

	if funcs == 0 {
		return reflect.Value{}, fmt.Errorf("%w: %s has no func fields to stand in for methods",
			ErrUnsupportedTarget, typ)
	}

	return table, nil
}

// getter builds a func of type typ returning a spy-backed first result and
// zero values for the rest.
func getter(typ reflect.Type, spy *Spy) (reflect.Value, error) {
	target, err := spyTarget(typ.Out(0), spy)
	if err != nil {
		return reflect.Value{}, err
	}

	return reflect.MakeFunc(typ, func([]reflect.Value) []reflect.Value {
		out := zeroResults(typ)
		out[0] = target

		return out
	}), nil
}

// install stores a spy-backed value in field and returns a func putting the
// original value back.
func install(field reflect.Value, spy *Spy) (func(), error) {
	target, err := spyTarget(field.Type(), spy)
	if err != nil {
		return nil, err
	}

	original := reflect.New(field.Type()).Elem()
	original.Set(field)
	field.Set(target)

	return func() { field.Set(original) }, nil
}

// settable returns field itself when it can be set, or an alias to the same
// memory when it is unexported. field must be addressable.
func settable(field reflect.Value) reflect.Value {
	if field.CanSet() {
		return field
	}

	return reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
}

// spyTarget builds a value of typ that reports calls to spy.
func spyTarget(typ reflect.Type, spy *Spy) (reflect.Value, error) {
	switch typ.Kind() { //nolint:exhaustive // every other kind is unsupported
	case reflect.Interface:
		return fakeFor(typ, spy)
	case reflect.Struct:
		return funcTable(typ, spy)
	case reflect.Pointer:
		if typ.Elem().Kind() == reflect.Struct {
			table, err := funcTable(typ.Elem(), spy)
			if err != nil {
				return reflect.Value{}, err
			}

			return table.Addr(), nil
		}
	case reflect.Func:
		if typ.NumIn() == 0 && typ.NumOut() > 0 {
			return getter(typ, spy)
		}
	}

	return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedTarget, typ)
}

// subjectValue returns an addressable struct value to evaluate subject on.
// Pointers are used in place, struct values are copied, and a reflect.Type
// yields a fresh zero value of the type.
func subjectValue(subject any) (reflect.Value, bool) {
	if typ, ok := subject.(reflect.Type); ok {
		for typ.Kind() == reflect.Pointer {
			typ = typ.Elem()
		}

		if typ.Kind() != reflect.Struct {
			return reflect.Value{}, false
		}

		return reflect.New(typ).Elem(), true
	}

	value := reflect.ValueOf(subject)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}

	if value.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}

	if !value.CanAddr() {
		copied := reflect.New(value.Type()).Elem()
		copied.Set(value)
		value = copied
	}

	return value, true
}
