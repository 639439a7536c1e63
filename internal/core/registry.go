package core

import (
	"fmt"
	"reflect"
	"sync"
)

// RegisterFake registers factory as the way to stand a spy in for the
// interface I. A fake forwards each of its methods to the Recorder it is
// built with, for example:
//
//	type fakeMailman struct{ rec core.Recorder }
//
//	func (f fakeMailman) DeliverWithHaste(address string) {
//	    f.rec.Record("DeliverWithHaste", address)
//	}
//
//	core.RegisterFake(func(rec core.Recorder) Mailman { return fakeMailman{rec} })
//
// Registering the same interface again replaces the earlier factory.
func RegisterFake[I any](factory func(Recorder) I) {
	typ := reflect.TypeFor[I]()
	if typ.Kind() != reflect.Interface {
		panic(fmt.Sprintf("RegisterFake: %s is not an interface type", typ))
	}

	swapFake(typ, func(rec Recorder) any { return factory(rec) })
}

// RegisterFakeFor registers factory like RegisterFake. If t supports Cleanup
// (like *testing.T), the fake registered before it is put back when the test
// completes, or the registration is removed if there was none.
func RegisterFakeFor[I any](t TestReporter, factory func(Recorder) I) {
	t.Helper()

	typ := reflect.TypeFor[I]()
	if typ.Kind() != reflect.Interface {
		panic(fmt.Sprintf("RegisterFakeFor: %s is not an interface type", typ))
	}

	previous, hadPrevious := swapFake(typ, func(rec Recorder) any { return factory(rec) })

	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			registryMu.Lock()
			defer registryMu.Unlock()

			if hadPrevious {
				registry[typ] = previous
			} else {
				delete(registry, typ)
			}
		})
	}
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional so fakes can be registered once per test binary
	registry = make(map[reflect.Type]func(Recorder) any)
	//nolint:gochecknoglobals // Mutex for registry
	registryMu sync.RWMutex
)

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}

// swapFake registers factory for typ and returns the factory it replaced.
func swapFake(typ reflect.Type, factory func(Recorder) any) (func(Recorder) any, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()

	previous, ok := registry[typ]
	registry[typ] = factory

	return previous, ok
}

// fakeFor returns a value of the interface type iface backed by spy: the
// registered fake, or the spy itself when it satisfies iface.
func fakeFor(iface reflect.Type, spy *Spy) (reflect.Value, error) {
	target := reflect.New(iface).Elem()

	registryMu.RLock()
	factory, ok := registry[iface]
	registryMu.RUnlock()

	if ok {
		fake := factory(spy)
		if fake == nil {
			return reflect.Value{}, fmt.Errorf("%w: the fake registered for %s returned nil", ErrUnsupportedTarget, iface)
		}

		target.Set(reflect.ValueOf(fake))

		return target, nil
	}

	spyValue := reflect.ValueOf(spy)
	if !spyValue.Type().Implements(iface) {
		return reflect.Value{}, fmt.Errorf("%w: no fake registered for %s (register one with RegisterFake)",
			ErrUnsupportedTarget, iface)
	}

	target.Set(spyValue)

	return target, nil
}
