// Package textnorm canonicalizes role and shift names so that values coming
// from site configuration and worker profiles compare equal even when one
// side carries bidi control characters or non-breaking spaces, as is common
// in mixed-script (Hebrew/English) operator input.
package textnorm

import "strings"

const (
	lrm = '‎' // left-to-right mark
	rlm = '‏' // right-to-left mark
	nbsp = ' '
)

// Norm trims s, strips LRM/RLM marks, folds NBSP to an ordinary space, and
// unifies the ASCII double quote to an apostrophe. It is idempotent:
// Norm(Norm(s)) == Norm(s).
func Norm(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case lrm, rlm:
			continue
		case nbsp:
			b.WriteRune(' ')
		case '"':
			b.WriteRune('\'')
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Equal reports whether a and b are the same string after Norm.
func Equal(a, b string) bool {
	return Norm(a) == Norm(b)
}
