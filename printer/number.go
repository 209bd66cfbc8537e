package printer

import (
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/wasm-ir/ir"
)

// FormatFloat renders v in the shortest form that reads back to the same
// value at bitSize (32 or 64). A leading bare dot gets a zero, and the
// non-finite values print as infinity, -infinity and nan. NaN sign and
// payload are not preserved.
func FormatFloat(v float64, bitSize int) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "infinity"
	case math.IsInf(v, -1):
		return "-infinity"
	}
	return normalizeFloatText(strconv.FormatFloat(v, 'g', -1, bitSize))
}

// normalizeFloatText puts a zero before a leading bare dot. The consuming
// grammar rejects literals that start with "." or "-.", whatever formatter
// produced them.
func normalizeFloatText(text string) string {
	switch {
	case strings.HasPrefix(text, "."):
		return "0" + text
	case strings.HasPrefix(text, "-."):
		return "-0" + text[1:]
	}
	return text
}

// literalText renders the payload of l without its type. It reports false
// for a literal of no type.
func literalText(l ir.Literal) (string, bool) {
	switch l.Type {
	case ir.I32:
		return strconv.FormatInt(int64(l.I32()), 10), true
	case ir.I64:
		return strconv.FormatInt(l.I64(), 10), true
	case ir.F32:
		return FormatFloat(float64(l.F32()), 32), true
	case ir.F64:
		return FormatFloat(l.F64(), 64), true
	}
	return "", false
}
