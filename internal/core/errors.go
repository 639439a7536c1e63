package core

import "errors"

// Configuration errors. These report misuse of a DelegationMatcher and are
// returned from Match instead of a false result. Check them with errors.Is.
var (
	// ErrMissingTarget is returned when Match runs before To named the accessor.
	ErrMissingTarget = errors.New("no delegation target: use To(accessor) to name the field that holds the target")
	// ErrUnsupportedNegation is returned for every attempt to assert that a
	// subject does not delegate.
	ErrUnsupportedNegation = errors.New("negated delegation matching is not supported")
	// ErrUnsupportedTarget is returned when the accessor field has a type no spy
	// can stand in for.
	ErrUnsupportedTarget = errors.New("unsupported delegation target")
	// ErrArgumentMismatch is returned when the configured arguments cannot be
	// passed to the delegating method.
	ErrArgumentMismatch = errors.New("arguments do not fit the delegating method")
	// ErrNilSubject is returned when Match is given a nil subject.
	ErrNilSubject = errors.New("nil subject")
)
