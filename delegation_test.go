package delegation_test

import (
	"fmt"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/delegation"
)

// Helper to capture test failures.
type mockT struct {
	failed bool
	msg    string
	logs   []string
}

func (m *mockT) Fatalf(format string, args ...any) {
	m.failed = true
	m.msg = fmt.Sprintf(format, args...)
}

func (m *mockT) Helper() {}

func (m *mockT) Logf(format string, args ...any) {
	m.logs = append(m.logs, fmt.Sprintf(format, args...))
}

type Mailman interface {
	DeliverWithHaste(address string)
}

type fakeMailman struct {
	rec delegation.Recorder
}

func (f fakeMailman) DeliverWithHaste(address string) {
	f.rec.Record("DeliverWithHaste", address)
}

type PostOffice struct {
	mailman Mailman
}

func (p *PostOffice) DeliverMail(address string) {
	p.mailman.DeliverWithHaste(address)
}

type ClosedPostOffice struct {
	mailman Mailman
}

func (p *ClosedPostOffice) DeliverMail(string) {}

//nolint:gochecknoinits // fakes are registered once for every test in the package
func init() {
	delegation.RegisterFake(func(rec delegation.Recorder) Mailman { return fakeMailman{rec: rec} })
}

func deliverMail() *delegation.DelegationMatcher {
	return delegation.Delegate("DeliverMail").To("mailman").As("DeliverWithHaste").WithArguments("221B Baker St.")
}

func TestAssert_Passes(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := &mockT{}

	delegation.Assert(mock, &PostOffice{}, deliverMail())

	g.Expect(mock.failed).To(BeFalse())
	g.Expect(mock.logs).To(ConsistOf(
		`delegate PostOffice#DeliverMail to PostOffice#mailman with arguments ("221B Baker St.") as DeliverWithHaste: ` +
			`DeliverWithHaste called 1 time(s), last with ("221B Baker St.")`))
}

func TestAssert_FailsWithFailureMessage(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := &mockT{}

	delegation.Assert(mock, &ClosedPostOffice{}, deliverMail())

	g.Expect(mock.failed).To(BeTrue())
	g.Expect(mock.msg).To(HavePrefix("expected ClosedPostOffice#DeliverMail to delegate to ClosedPostOffice#mailman"))
	g.Expect(mock.msg).To(ContainSubstring("DeliverWithHaste was never called on the target"))
}

func TestAssert_FailsOnConfigurationError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := &mockT{}

	delegation.Assert(mock, &PostOffice{}, delegation.Delegate("DeliverMail"))

	g.Expect(mock.failed).To(BeTrue())
	g.Expect(mock.msg).To(ContainSubstring(delegation.ErrMissingTarget.Error()))
	g.Expect(mock.logs).To(BeEmpty())
}

func TestRefute_AlwaysFails(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	for _, subject := range []any{&PostOffice{}, &ClosedPostOffice{}} {
		mock := &mockT{}

		delegation.Refute(mock, subject, deliverMail())

		g.Expect(mock.failed).To(BeTrue())
		g.Expect(mock.msg).To(HavePrefix(delegation.ErrUnsupportedNegation.Error()))
	}
}

func TestAssert_WithTestingT(t *testing.T) {
	t.Parallel()

	delegation.Assert(t, &PostOffice{}, deliverMail())
}

func TestNewSpy(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	spy := delegation.NewSpy("DeliverWithHaste")
	fakeMailman{rec: spy}.DeliverWithHaste("221B Baker St.")

	g.Expect(spy.WasInvoked()).To(BeTrue())
	g.Expect(spy.InvokedWithArguments([]any{"221B Baker St."})).To(BeTrue())
}
