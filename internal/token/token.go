// Package token splits printed expression text into tokens and checks the
// structural rules a reader of that text relies on.
package token

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/wippyai/wasm-ir/errors"
)

type Type int

const (
	LParen Type = iota
	RParen
	Ident
	String
	Number
	Illegal
)

func (t Type) String() string {
	switch t {
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Ident:
		return "identifier"
	case String:
		return "string"
	case Number:
		return "number"
	case Illegal:
		return "illegal"
	}
	return "unknown"
}

type Token struct {
	Value string
	Type  Type
	Line  int
}

// Tokenize splits input into tokens, dropping whitespace and comments. An
// unterminated string or block comment, or a character no token starts
// with, becomes an Illegal token holding a description.
func Tokenize(input string) []Token {
	var tokens []Token
	line := 1
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' {
			line++
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}

		if r == ';' && i+1 < len(runes) && runes[i+1] == ';' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			line++
			continue
		}

		if r == '(' {
			if i+1 < len(runes) && runes[i+1] == ';' {
				startLine := line
				depth := 1
				i += 2
				for i < len(runes) && depth > 0 {
					if runes[i] == '(' && i+1 < len(runes) && runes[i+1] == ';' {
						depth++
						i++
					} else if runes[i] == ';' && i+1 < len(runes) && runes[i+1] == ')' {
						depth--
						i++
					} else if runes[i] == '\n' {
						line++
					}
					i++
				}
				if depth > 0 {
					tokens = append(tokens, Token{"unterminated block comment", Illegal, startLine})
				}
				i--
				continue
			}
			tokens = append(tokens, Token{"(", LParen, line})
			continue
		}

		if r == ')' {
			tokens = append(tokens, Token{")", RParen, line})
			continue
		}

		if r == '"' {
			start := i + 1
			i++
			for i < len(runes) && runes[i] != '"' && runes[i] != '\n' {
				if runes[i] == '\\' {
					i++
				}
				i++
			}
			if i >= len(runes) || runes[i] != '"' {
				tokens = append(tokens, Token{"unterminated string", Illegal, line})
				i--
				continue
			}
			tokens = append(tokens, Token{string(runes[start:i]), String, line})
			continue
		}

		if r == '-' || r == '+' || unicode.IsDigit(r) {
			start := i
			if (r == '-' || r == '+') && i+3 <= len(runes) {
				rest := string(runes[i+1 : min(i+4, len(runes))])
				if strings.HasPrefix(rest, "inf") || strings.HasPrefix(rest, "nan") {
					i++
					for i < len(runes) && (unicode.IsLetter(runes[i]) || runes[i] == ':' || unicode.IsDigit(runes[i])) {
						i++
					}
					tokens = append(tokens, Token{string(runes[start:i]), Ident, line})
					i--
					continue
				}
			}
			if r == '-' || r == '+' {
				i++
			}
			for i < len(runes) {
				c := runes[i]
				if unicode.IsDigit(c) || c == '.' || c == 'e' || c == 'E' ||
					c == 'x' || c == 'X' || c == '_' || c == 'p' || c == 'P' ||
					(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') ||
					((c == '-' || c == '+') && i > start && isExponent(runes[i-1])) {
					i++
				} else {
					break
				}
			}
			tokens = append(tokens, Token{string(runes[start:i]), Number, line})
			i--
			continue
		}

		// Keywords, $names and mnemonics such as i64.extend_s/i32.
		if r == '$' || unicode.IsLetter(r) || r == '_' || r == '.' {
			start := i
			for i < len(runes) && isIdentRune(runes[i]) {
				i++
			}
			tokens = append(tokens, Token{string(runes[start:i]), Ident, line})
			i--
			continue
		}

		tokens = append(tokens, Token{fmt.Sprintf("unexpected character %q", r), Illegal, line})
	}

	return tokens
}

func isExponent(r rune) bool {
	return r == 'e' || r == 'E' || r == 'p' || r == 'P'
}

func isIdentRune(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) ||
		strings.ContainsRune("_.$-:=/", c)
}

// Check tokenizes text and verifies that parentheses balance, every form
// starts with a keyword, every $name is non-empty, and no float literal
// begins with a bare dot. It returns the first violation found.
func Check(text string) error {
	tokens := Tokenize(text)
	depth := 0
	for i, tok := range tokens {
		switch tok.Type {
		case Illegal:
			return errors.Syntax(tok.Line, tok.Value)
		case LParen:
			depth++
			if i+1 >= len(tokens) || tokens[i+1].Type != Ident || strings.HasPrefix(tokens[i+1].Value, "$") {
				return errors.Syntax(tok.Line, "form does not start with a keyword")
			}
		case RParen:
			depth--
			if depth < 0 {
				return errors.Syntax(tok.Line, "unbalanced ')'")
			}
		case Ident:
			if tok.Value == "$" {
				return errors.Syntax(tok.Line, "empty name")
			}
			if strings.HasPrefix(tok.Value, ".") {
				return errors.Syntax(tok.Line, fmt.Sprintf("bare leading dot in %q", tok.Value))
			}
		case Number:
			if strings.HasPrefix(tok.Value, "-.") || strings.HasPrefix(tok.Value, "+.") {
				return errors.Syntax(tok.Line, fmt.Sprintf("bare leading dot in %q", tok.Value))
			}
		}
	}
	if depth > 0 {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		return errors.Syntax(line, fmt.Sprintf("%d unclosed form(s)", depth))
	}
	return nil
}
