package core

import (
	"reflect"
	"unicode"
	"unicode/utf8"
)

// TypeLevel is implemented by subjects that stand in for a type rather than
// one of its instances. Their methods are named Type.Method instead of
// Type#Method in messages.
type TypeLevel interface {
	TypeLevel() bool
}

// exported returns name with its first rune upper-cased, so that "age" finds
// the Age method or field.
func exported(name string) string {
	first, size := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError {
		return name
	}

	return string(unicode.ToUpper(first)) + name[size:]
}

// isTypeLevel reports whether subject is a type (a reflect.Type, or a value
// that says it is one) rather than an instance.
func isTypeLevel(subject any) bool {
	switch typed := subject.(type) {
	case reflect.Type:
		return true
	case TypeLevel:
		return typed.TypeLevel()
	default:
		return false
	}
}

// qualify names method the way it is called on subject.
func qualify(subject any, method string) string {
	if subject == nil {
		return method
	}

	separator := "#"
	if isTypeLevel(subject) {
		separator = "."
	}

	return typeName(subjectType(subject)) + separator + method
}

func sameMethod(a, b string) bool {
	return a == b || exported(a) == exported(b)
}

func subjectType(subject any) reflect.Type {
	if typ, ok := subject.(reflect.Type); ok {
		return typ
	}

	return reflect.TypeOf(subject)
}

// typeName returns the bare name of the type behind any pointers.
func typeName(typ reflect.Type) string {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if typ.Name() == "" {
		return typ.String()
	}

	return typ.Name()
}
