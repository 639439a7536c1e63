package core

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"
)

// DelegationMatcher checks that calling a method on a subject forwards the
// call to a target held by one of the subject's fields. It implements
// gomega's types.GomegaMatcher.
//
// The field named by To is swapped for a spy for the duration of Match and
// restored afterwards, so the subject must expose its target through a
// field: an interface (see RegisterFake), a struct or pointer to a struct of
// funcs, or a func returning either.
type DelegationMatcher struct {
	method   string
	accessor string
	alias    string
	args     []any

	// state of the latest Match
	subject any
	spy     *Spy
	outcome outcome
}

// NewDelegationMatcher creates a matcher for calls to method.
func NewDelegationMatcher(method string) *DelegationMatcher {
	return &DelegationMatcher{method: method}
}

// As expects the target to receive the call as alias instead of the
// delegating method's own name.
func (m *DelegationMatcher) As(alias string) *DelegationMatcher {
	m.alias = alias

	return m
}

// Description describes the expected delegation, qualified by the most
// recently matched subject.
func (m *DelegationMatcher) Description() string {
	delegator, target, clauses := m.parts(m.subject)

	return "delegate " + delegator + " to " + target + clauses
}

// DoesNotMatch always fails with ErrUnsupportedNegation: whether a subject
// "does not delegate" is ambiguous.
func (m *DelegationMatcher) DoesNotMatch(actual any) (bool, error) {
	delegator, target, clauses := m.parts(actual)

	return false, fmt.Errorf("%w: cannot expect %s not to delegate to %s%s",
		ErrUnsupportedNegation, delegator, target, clauses)
}

// FailureMessage explains why actual did not delegate.
func (m *DelegationMatcher) FailureMessage(actual any) string {
	delegator, target, clauses := m.parts(actual)

	message := "expected " + delegator + " to delegate to " + target + clauses
	if reason := m.reason(actual); reason != "" {
		message += "\n" + reason
	}

	return message
}

// Match installs a spy in place of actual's target, calls the delegating
// method with the configured arguments, and reports whether the spy received
// the expected call. A subject without the delegating method or the accessor
// field does not match; configuration problems are returned as errors.
func (m *DelegationMatcher) Match(actual any) (bool, error) {
	if m.accessor == "" {
		return false, ErrMissingTarget
	}

	if actual == nil || isNil(actual) {
		return false, ErrNilSubject
	}

	m.subject = actual
	m.spy = NewSpy(m.watched())
	m.outcome = outcomeNoAccessor

	subject, ok := subjectValue(actual)
	if !ok {
		return false, nil
	}

	field, ok := accessorField(subject, m.accessor)
	if !ok {
		return false, nil
	}

	restore, err := install(field, m.spy)
	if err != nil {
		return false, fmt.Errorf("%s: %w", qualify(actual, m.accessor), err)
	}
	defer restore()

	found, err := m.invoke(subject)
	if err != nil {
		return false, err
	}

	switch {
	case !found:
		m.outcome = outcomeNoMethod
	case !m.spy.WasInvoked():
		m.outcome = outcomeNotInvoked
	case !m.spy.InvokedWithArguments(m.args):
		m.outcome = outcomeWrongArguments
	default:
		m.outcome = outcomeMatched
	}

	return m.outcome == outcomeMatched, nil
}

// NegatedFailureMessage reports that negation is unsupported. gomega only asks
// for it when a negated assertion saw a match.
func (m *DelegationMatcher) NegatedFailureMessage(actual any) string {
	_, err := m.DoesNotMatch(actual)

	return err.Error()
}

// Spy returns the spy installed by the most recent Match, or nil.
func (m *DelegationMatcher) Spy() *Spy {
	return m.spy
}

// To names the subject's field that holds the delegation target.
func (m *DelegationMatcher) To(accessor string) *DelegationMatcher {
	m.accessor = accessor

	return m
}

// WithArguments sets the arguments the delegating method is called with and
// the target is expected to receive. Without it, the target is expected to be
// called with no arguments.
func (m *DelegationMatcher) WithArguments(args ...any) *DelegationMatcher {
	m.args = append([]any{}, args...)

	return m
}

// invoke calls the delegating method on subject. It reports false when
// there is no such method.
func (m *DelegationMatcher) invoke(subject reflect.Value) (bool, error) {
	receiver := subject.Addr()

	method := receiver.MethodByName(m.method)
	if !method.IsValid() {
		method = receiver.MethodByName(exported(m.method))
	}

	if !method.IsValid() {
		return false, nil
	}

	in, err := methodArguments(method.Type(), m.args)
	if err != nil {
		return false, fmt.Errorf("%s: %w", qualify(m.subject, m.method), err)
	}

	method.Call(in)

	return true, nil
}

// parts renders the delegator, the target and the optional clauses, in the
// order messages show them.
func (m *DelegationMatcher) parts(subject any) (string, string, string) {
	target := "(no target)"
	if m.accessor != "" {
		target = qualify(subject, m.accessor)
	}

	var clauses strings.Builder

	if len(m.args) > 0 {
		fmt.Fprintf(&clauses, " with arguments (%s)", formatArguments(m.args))
	}

	if m.alias != "" && m.alias != m.method {
		fmt.Fprintf(&clauses, " as %s", m.alias)
	}

	return qualify(subject, m.method), target, clauses.String()
}

func (m *DelegationMatcher) reason(actual any) string {
	switch m.outcome {
	case outcomeNoAccessor:
		return fmt.Sprintf("%s has no field %s", typeName(subjectType(actual)), m.accessor)
	case outcomeNoMethod:
		return fmt.Sprintf("%s has no method %s", typeName(subjectType(actual)), m.method)
	case outcomeNotInvoked:
		reason := fmt.Sprintf("%s was never called on the target", m.spy.Method())
		if unwatched := m.spy.Unwatched(); len(unwatched) > 0 {
			reason += "; it received calls to " + strings.Join(unwatched, ", ")
		}

		return reason
	case outcomeWrongArguments:
		expected := format.Object(m.args, 1) + "\n"
		actualArgs := format.Object(m.spy.Arguments(), 1) + "\n"

		return fmt.Sprintf("%s was called with different arguments:\n%s",
			m.spy.Method(), textdiff.Unified("expected", "actual", expected, actualArgs))
	case outcomeNone, outcomeMatched:
		return ""
	}

	return ""
}

func (m *DelegationMatcher) watched() string {
	if m.alias != "" {
		return m.alias
	}

	return m.method
}

type outcome int

const (
	outcomeNone outcome = iota
	outcomeMatched
	outcomeNoAccessor
	outcomeNoMethod
	outcomeNotInvoked
	outcomeWrongArguments
)

var _ types.GomegaMatcher = (*DelegationMatcher)(nil)

// argumentValue converts arg for a parameter of type param.
func argumentValue(arg any, param reflect.Type) (reflect.Value, error) {
	if arg == nil {
		if !isNillableKind(param.Kind()) {
			return reflect.Value{}, fmt.Errorf("%w: nil cannot be passed as %s", ErrArgumentMismatch, param)
		}

		return reflect.Zero(param), nil
	}

	value := reflect.ValueOf(arg)
	if !value.Type().AssignableTo(param) {
		return reflect.Value{}, fmt.Errorf("%w: %T cannot be passed as %s", ErrArgumentMismatch, arg, param)
	}

	return value, nil
}

func formatArguments(args []any) string {
	formatted := make([]string, len(args))
	for i, arg := range args {
		formatted[i] = fmt.Sprintf("%#v", arg)
	}

	return strings.Join(formatted, ", ")
}

// methodArguments converts args into call arguments for fnType, checking the
// count and the assignability of each.
func methodArguments(fnType reflect.Type, args []any) ([]reflect.Value, error) {
	numIn := fnType.NumIn()

	if fnType.IsVariadic() {
		if len(args) < numIn-1 {
			return nil, fmt.Errorf("%w: got %d arguments, want at least %d", ErrArgumentMismatch, len(args), numIn-1)
		}
	} else if len(args) != numIn {
		return nil, fmt.Errorf("%w: got %d arguments, want %d", ErrArgumentMismatch, len(args), numIn)
	}

	in := make([]reflect.Value, len(args))

	for i, arg := range args {
		var param reflect.Type
		if fnType.IsVariadic() && i >= numIn-1 {
			param = fnType.In(numIn - 1).Elem()
		} else {
			param = fnType.In(i)
		}

		value, err := argumentValue(arg, param)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}

		in[i] = value
	}

	return in, nil
}
