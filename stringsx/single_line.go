package stringsx

import "strings"

var lineBreakStripper = strings.NewReplacer("\r", "", "\n", "", "\t", "")

// SingleLine collapses a multi-line string onto a single line by stripping
// line breaks and indentation tabs, keeping structured payloads readable in
// log output.
func SingleLine(s string) string {
	return lineBreakStripper.Replace(s)
}
