package jsonx

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RawMessage canonicalizes the given json literal into a json.RawMessage,
// panicking when the literal is malformed. It is meant for fixtures and
// compile-time payloads whose validity is a programming invariant rather
// than a runtime condition.
//
// Canonicalization decodes and re-encodes the value, so whitespace is
// stripped and object keys are sorted. Numbers are kept in their literal
// form instead of round-tripping through float64.
func RawMessage(in string) json.RawMessage {
	dec := json.NewDecoder(strings.NewReader(in))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		panic(fmt.Sprintf("jsonx: invalid raw message: %s", err))
	}
	if dec.More() {
		panic("jsonx: trailing data after raw message")
	}

	out, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return out
}
