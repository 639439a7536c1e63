// Package match provides the delegation matcher in a form designed to be
// dot-imported alongside gomega matchers:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    . "github.com/toejough/delegation/match"
//	)
//
//	Expect(person).To(Delegate("Age").To("Model"))
package match

import (
	"github.com/toejough/delegation"
)

// Delegate returns a matcher succeeding when the actual value forwards calls
// to method to the target held in the field named with To.
//
// Do not use it with NotTo or ShouldNot: negation is not supported, and a
// negated result says nothing about whether the subject delegates. gomega
// only reports the unsupported negation when the subject does delegate. Use
// delegation.Refute or DoesNotMatch, which always fail with
// delegation.ErrUnsupportedNegation.
func Delegate(method string) *delegation.DelegationMatcher {
	return delegation.Delegate(method)
}
