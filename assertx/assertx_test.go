// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package assertx

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestEqualAsJSON(t *testing.T) {
	a := map[string]interface{}{"mappings": map[string]interface{}{"dynamic": "true"}}
	b := json.RawMessage(`{"mappings":{"dynamic":"true"}}`)

	require.True(t, EqualAsJSON(t, a, b))
}

func TestEqualAsJSONExcept(t *testing.T) {
	a := map[string]interface{}{"name": "faq", "namespace": "kb", "created_at": "2023-01-01"}
	b := map[string]interface{}{"name": "faq", "namespace": "kb", "created_at": "2024-06-30"}

	require.True(t, EqualAsJSONExcept(t, a, b, []string{"created_at"}))
}

func TestEqual(t *testing.T) {
	type summary struct {
		Succeeded int
		Failed    int
		Elapsed   time.Duration
	}

	require.True(t, Equal(t, summary{Succeeded: 2, Failed: 1}, summary{Succeeded: 2, Failed: 1}))

	require.True(t, Equal(t,
		summary{Succeeded: 2, Failed: 1},
		summary{Succeeded: 2, Failed: 1, Elapsed: time.Second},
		cmpopts.IgnoreFields(summary{}, "Elapsed"),
	))
}
