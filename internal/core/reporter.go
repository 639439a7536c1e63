package core

// TestReporter is the minimal interface the delegation helpers need from test
// frameworks. testing.T and testing.B implement it.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// logger is satisfied by reporters that can also log, like *testing.T.
type logger interface {
	Logf(format string, args ...any)
}

// Assert fails the test unless subject delegates the way matcher describes.
// Configuration errors fail the test too.
func Assert(t TestReporter, subject any, matcher *DelegationMatcher) {
	t.Helper()

	ok, err := matcher.Match(subject)
	if err != nil {
		t.Fatalf("%s: %v", matcher.Description(), err)

		return
	}

	if log, canLog := t.(logger); canLog && matcher.Spy() != nil {
		log.Logf("%s: %s", matcher.Description(), matcher.Spy())
	}

	if !ok {
		t.Fatalf("%s", matcher.FailureMessage(subject))
	}
}

// Refute always fails the test: asserting that a subject does not delegate is
// ambiguous (target never read, read but not called, or called with other
// arguments) and is not supported.
func Refute(t TestReporter, subject any, matcher *DelegationMatcher) {
	t.Helper()

	_, err := matcher.DoesNotMatch(subject)
	t.Fatalf("%v", err)
}
