package assertx

import (
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// Equal compares expected and actual with go-cmp rather than reflection, so
// callers can pass options such as cmpopts.IgnoreFields for fields that are
// irrelevant to the assertion, injected transports for instance.
func Equal(t assert.TestingT, expected, actual interface{}, opts ...cmp.Option) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	diff := cmp.Diff(expected, actual, opts...)
	if diff == "" {
		return true
	}

	return assert.Fail(t, "Not equal (-expected +actual):\n"+diff)
}
