// Package delegation provides a test matcher that verifies a method forwards
// its call to a target held by the subject.
//
//	delegation.Assert(t, post, delegation.Delegate("DeliverMail").
//	    To("mailman").
//	    As("DeliverWithHaste").
//	    WithArguments("221B Baker St."))
//
// The matcher swaps the named field for a spy while the delegating method
// runs, then restores it. It also implements gomega's GomegaMatcher; see the
// match package for a dot-import friendly entry point.
//
// This is the public API entry point. Implementation lives in internal/core.
package delegation

import (
	"github.com/toejough/delegation/internal/core"
)

// Configuration errors returned by DelegationMatcher.Match and DoesNotMatch.
var (
	ErrMissingTarget       = core.ErrMissingTarget
	ErrUnsupportedNegation = core.ErrUnsupportedNegation
	ErrUnsupportedTarget   = core.ErrUnsupportedTarget
	ErrArgumentMismatch    = core.ErrArgumentMismatch
	ErrNilSubject          = core.ErrNilSubject
)

// DelegationMatcher checks that a subject delegates a method call.
type DelegationMatcher = core.DelegationMatcher

// Delegate creates a matcher for calls to method. Name the target field with
// To before matching.
func Delegate(method string) *DelegationMatcher {
	return core.NewDelegationMatcher(method)
}

// Spy is the recording stand-in installed in place of the delegation target.
type Spy = core.Spy

// NewSpy creates a spy watching method.
func NewSpy(method string) *Spy {
	return core.NewSpy(method)
}

// Recorder receives the calls made on a fake.
type Recorder = core.Recorder

// RegisterFake registers how to stand a spy in for the interface I.
func RegisterFake[I any](factory func(Recorder) I) {
	core.RegisterFake(factory)
}

// RegisterFakeFor registers a fake for the duration of the test t.
func RegisterFakeFor[I any](t TestReporter, factory func(Recorder) I) {
	t.Helper()
	core.RegisterFakeFor(t, factory)
}

// TestReporter is the minimal interface the helpers need from test frameworks.
type TestReporter = core.TestReporter

// TypeLevel is implemented by subjects that stand in for a type.
type TypeLevel = core.TypeLevel

// Assert fails the test unless subject delegates as matcher describes.
func Assert(t TestReporter, subject any, matcher *DelegationMatcher) {
	t.Helper()
	core.Assert(t, subject, matcher)
}

// Refute always fails the test with ErrUnsupportedNegation.
func Refute(t TestReporter, subject any, matcher *DelegationMatcher) {
	t.Helper()
	core.Refute(t, subject, matcher)
}
