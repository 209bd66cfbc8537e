package printer

import "github.com/wippyai/wasm-ir/internal/token"

// Lint checks printed text against the rules its readers depend on:
// balanced parentheses, a keyword at the head of every form, non-empty
// names and no float literal with a bare leading dot. Decorated text must be
// stripped of escape sequences first.
func Lint(text string) error {
	return token.Check(text)
}
