package token

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/wasm-ir/errors"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			"empty",
			"",
			nil,
		},
		{
			"nop",
			"(nop)",
			[]Token{{"(", LParen, 1}, {"nop", Ident, 1}, {")", RParen, 1}},
		},
		{
			"newlines",
			"(block\n  (nop)\n)",
			[]Token{
				{"(", LParen, 1}, {"block", Ident, 1},
				{"(", LParen, 2}, {"nop", Ident, 2}, {")", RParen, 2},
				{")", RParen, 3},
			},
		},
		{
			"name",
			"$foo",
			[]Token{{"$foo", Ident, 1}},
		},
		{
			"convert_mnemonic",
			"i64.extend_s/i32",
			[]Token{{"i64.extend_s/i32", Ident, 1}},
		},
		{
			"negative_float",
			"-0.5",
			[]Token{{"-0.5", Number, 1}},
		},
		{
			"exponent",
			"1e+21",
			[]Token{{"1e+21", Number, 1}},
		},
		{
			"infinity",
			"-infinity",
			[]Token{{"-infinity", Ident, 1}},
		},
		{
			"string",
			`"env"`,
			[]Token{{"env", String, 1}},
		},
		{
			"block_comment",
			"(; unsupported load#3: offset ;)(nop)",
			[]Token{{"(", LParen, 1}, {"nop", Ident, 1}, {")", RParen, 1}},
		},
		{
			"line_comment",
			";; note\n(nop)",
			[]Token{{"(", LParen, 2}, {"nop", Ident, 2}, {")", RParen, 2}},
		},
		{
			"align_attribute",
			"(f32.load align=4",
			[]Token{{"(", LParen, 1}, {"f32.load", Ident, 1}, {"align=4", Ident, 1}},
		},
		{
			"unterminated_string",
			`"env`,
			[]Token{{"unterminated string", Illegal, 1}},
		},
		{
			"unexpected",
			"#",
			[]Token{{`unexpected character '#'`, Illegal, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens %v, want %d", len(got), got, len(tt.expected))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %+v, want %+v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"valid", "(module\n  (memory 16777216)\n)\n", 0},
		{"valid_floats", "(f64.const -0.5)\n(f32.const nan)", 0},
		{"valid_break", "(break $l\n  (get_local $c)\n)", 0},
		{"valid_empty_block", "(block\n)", 0},
		{"valid_align", "(i32.load8_s align=1\n  (i32.const 0)\n)", 0},
		{"valid_import_spacing", `(import $f "env" "f"  (param i32))`, 0},
		{"unbalanced_close", "(nop))", 1},
		{"unclosed", "(block\n  (nop)\n", 2},
		{"empty_name", "(get_local $)", 1},
		{"bare_dot", "(f64.const .5)", 1},
		{"bare_negative_dot", "(f64.const\n -.5)", 2},
		{"name_as_head", "($x)", 1},
		{"empty_form", "()", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.input)
			if tt.line == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("expected *errors.Error, got %v", err)
			}
			if e.Kind != errors.KindSyntax {
				t.Errorf("kind = %s, want %s", e.Kind, errors.KindSyntax)
			}
			if e.Line != tt.line {
				t.Errorf("line = %d, want %d", e.Line, tt.line)
			}
		})
	}
}
