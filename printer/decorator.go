package printer

import "github.com/charmbracelet/lipgloss"

// TokenClass groups head tokens for presentation.
type TokenClass uint8

const (
	// TokenKeyword marks the head of an ordinary form: block, call, i32.add.
	TokenKeyword TokenClass = iota
	// TokenMajor marks module and func.
	TokenMajor
	// TokenMinor marks param, result, local, nop and constants.
	TokenMinor
)

// Decorator wraps a head token before it is written. Names, literals and
// whitespace are never passed through it.
type Decorator interface {
	Decorate(class TokenClass, token string) string
}

// DecoratorFunc adapts a function to Decorator.
type DecoratorFunc func(class TokenClass, token string) string

func (f DecoratorFunc) Decorate(class TokenClass, token string) string { return f(class, token) }

type plain struct{}

func (plain) Decorate(_ TokenClass, token string) string { return token }

// Plain writes tokens unchanged.
var Plain Decorator = plain{}

// Styled colors tokens for a terminal.
type Styled struct {
	major   lipgloss.Style
	keyword lipgloss.Style
	minor   lipgloss.Style
}

// NewStyled builds a Styled decorator whose color depth follows r. A nil
// renderer uses the lipgloss default, which inspects stdout.
func NewStyled(r *lipgloss.Renderer) *Styled {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Styled{
		major:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		keyword: r.NewStyle().Foreground(lipgloss.Color("#C678DD")),
		minor:   r.NewStyle().Foreground(lipgloss.Color("#E5C07B")),
	}
}

func (s *Styled) Decorate(class TokenClass, token string) string {
	switch class {
	case TokenMajor:
		return s.major.Render(token)
	case TokenMinor:
		return s.minor.Render(token)
	}
	return s.keyword.Render(token)
}
