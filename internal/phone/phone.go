// Package phone canonicalizes customer phone numbers. The normalized form
// is the idempotency key for Shakti Card issuance, so "+91 98765-43210" and
// "9876543210" must produce the same string.
package phone

import "strings"

// Normalize strips everything but digits, then drops an Indian country code
// or trunk prefix. The result is a bare 10-digit subscriber number whenever
// the input is one; other lengths pass through digit-stripped.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		return digits[2:]
	}
	if len(digits) == 11 && strings.HasPrefix(digits, "0") {
		return digits[1:]
	}
	return digits
}
