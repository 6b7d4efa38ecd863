// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package assertx

import (
	"encoding/json"

	"github.com/tidwall/sjson"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tHelper interface {
	Helper()
}

// PrettifyJSONPayload renders payload as indented json for assertion
// messages.
func PrettifyJSONPayload(t require.TestingT, payload interface{}) string {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	require.NoError(t, err)
	return string(out)
}

// EqualAsJSON asserts that expected and actual encode to the same json
// document. Key order and whitespace are irrelevant, which makes it the
// comparison of choice for mappings and other engine payloads.
func EqualAsJSON(t require.TestingT, expected, actual interface{}, args ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if len(args) == 0 {
		args = []interface{}{PrettifyJSONPayload(t, actual)}
	}

	return assert.JSONEq(t, encodeJSON(t, expected, args), encodeJSON(t, actual, args), args...)
}

// EqualAsJSONExcept behaves like EqualAsJSON after removing the given sjson
// paths from both documents.
func EqualAsJSONExcept(t require.TestingT, expected, actual interface{}, except []string, args ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if len(args) == 0 {
		args = []interface{}{PrettifyJSONPayload(t, actual)}
	}

	es, as := encodeJSON(t, expected, args), encodeJSON(t, actual, args)
	for _, path := range except {
		var err error
		es, err = sjson.Delete(es, path)
		require.NoError(t, err)

		as, err = sjson.Delete(as, path)
		require.NoError(t, err)
	}

	return assert.JSONEq(t, es, as, args...)
}

func encodeJSON(t require.TestingT, v interface{}, args []interface{}) string {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	out, err := json.Marshal(v)
	require.NoError(t, err, args...)
	return string(out)
}
