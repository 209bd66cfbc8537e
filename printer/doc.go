// Package printer renders ir trees as canonical S-expression text.
//
// Output is deterministic: the same tree always prints the same bytes.
// Each child sits on its own line, indented one level deeper than its
// parent, and the closing parenthesis of a compound form gets a line of its
// own. Leaf forms and calls without operands close on the same line:
//
//	(func $add (param $x i32) (param $y i32) (result i32)
//	  (i32.add
//	    (get_local $x)
//	    (get_local $y)
//	  )
//	)
//
// Inputs the printer cannot express, such as a load with an offset or an
// integer operator on a float type, are reported as *errors.Error values
// naming the offending node. Options.OnUnsupported decides whether printing
// stops there or leaves a block comment and continues; Annotate is the
// stock policy for the second choice.
//
// Head tokens pass through a Decorator. Plain keeps them as they are, and
// NewStyled colors them with lipgloss for terminal output.
package printer
