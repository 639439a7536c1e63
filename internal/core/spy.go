package core

import (
	"fmt"
	"reflect"
	"sync"
)

// Recorder receives the calls made on a spy-backed delegation target.
// Fakes registered with RegisterFake forward each of their methods to it.
type Recorder interface {
	Record(method string, args ...any)
}

// Spy is a recording stand-in for a delegation target. It watches exactly one
// method name and keeps the arguments of the most recent call to it.
type Spy struct {
	mu        sync.Mutex
	method    string
	invoked   bool
	calls     int
	args      []any
	unwatched []string
}

// NewSpy creates a spy watching method.
func NewSpy(method string) *Spy {
	return &Spy{method: method}
}

// Arguments returns the arguments of the most recent watched call.
func (s *Spy) Arguments() []any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]any{}, s.args...)
}

// Calls returns how many times the watched method was called.
func (s *Spy) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

// Func builds a function of fnType that records its calls under name and
// returns zero values.
func (s *Spy) Func(name string, fnType reflect.Type) reflect.Value {
	return reflect.MakeFunc(fnType, func(in []reflect.Value) []reflect.Value {
		s.Record(name, callArguments(fnType, in)...)

		return zeroResults(fnType)
	})
}

// InvokedWithArguments reports whether the most recent watched call received
// exactly the expected arguments.
func (s *Spy) InvokedWithArguments(expected []any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.args) != len(expected) {
		return false
	}

	for i := range expected {
		if !argumentEqual(expected[i], s.args[i]) {
			return false
		}
	}

	return true
}

// Method returns the watched method name.
func (s *Spy) Method() string {
	return s.method
}

// Record notes a call to method. Calls to any other method are kept only
// for failure messages and never count as an invocation.
func (s *Spy) Record(method string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !sameMethod(method, s.method) {
		s.unwatched = append(s.unwatched, method)

		return
	}

	s.invoked = true
	s.calls++
	s.args = append([]any{}, args...)
}

// String summarizes the watched calls.
func (s *Spy) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.invoked {
		return s.method + " was not called"
	}

	return fmt.Sprintf("%s called %d time(s), last with (%s)", s.method, s.calls, formatArguments(s.args))
}

// Unwatched returns the names of other methods called on the spy, in order.
func (s *Spy) Unwatched() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string{}, s.unwatched...)
}

// WasInvoked reports whether the watched method was called at least once.
func (s *Spy) WasInvoked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.invoked
}

// argumentEqual compares with reflect.DeepEqual, except that an untyped nil
// expectation also matches a typed nil.
func argumentEqual(expected, actual any) bool {
	if expected == nil {
		return actual == nil || isNil(actual)
	}

	return reflect.DeepEqual(expected, actual)
}

// callArguments unpacks in, flattening the trailing slice of a variadic call.
func callArguments(fnType reflect.Type, in []reflect.Value) []any {
	args := make([]any, 0, len(in))

	for i, value := range in {
		if fnType.IsVariadic() && i == len(in)-1 {
			for j := range value.Len() {
				args = append(args, value.Index(j).Interface())
			}

			continue
		}

		args = append(args, value.Interface())
	}

	return args
}

func isNil(value any) bool {
	reflected := reflect.ValueOf(value)
	if !isNillableKind(reflected.Kind()) {
		return false
	}

	return reflected.IsNil()
}

func isNillableKind(kind reflect.Kind) bool {
	switch kind { //nolint:exhaustive // only nillable kinds matter
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

func zeroResults(fnType reflect.Type) []reflect.Value {
	out := make([]reflect.Value, fnType.NumOut())
	for i := range out {
		out[i] = reflect.Zero(fnType.Out(i))
	}

	return out
}
