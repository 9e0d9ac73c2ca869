package search

import (
	"fmt"
	"strings"

	"github.com/pstuifzand/tui-listproxy/internal/model"
)

// ExpressionString returns a pretty-printed representation of the filter expression
func ExpressionString(expr FilterExpr) string {
	return prettyPrintExpr(expr, 0)
}

func prettyPrintExpr(expr FilterExpr, indent int) string {
	indentStr := strings.Repeat("  ", indent)

	switch e := expr.(type) {
	case *AndExpr:
		left := prettyPrintExpr(e.left, indent+1)
		right := prettyPrintExpr(e.right, indent+1)
		return fmt.Sprintf("%s(and\n%s\n%s\n%s)", indentStr, left, right, indentStr)

	case *OrExpr:
		left := prettyPrintExpr(e.left, indent+1)
		right := prettyPrintExpr(e.right, indent+1)
		return fmt.Sprintf("%s(or\n%s\n%s\n%s)", indentStr, left, right, indentStr)

	case *NotExpr:
		inner := prettyPrintExpr(e.expr, indent+1)
		return fmt.Sprintf("%s(not\n%s\n%s)", indentStr, inner, indentStr)

	default:
		return indentStr + expr.String()
	}
}

// Explain returns a one-line reason why entry did or did not match expr
func Explain(entry *model.Entry, expr FilterExpr) string {
	switch e := expr.(type) {
	case *TextExpr:
		if e.Matches(entry) {
			return fmt.Sprintf("text contains %q", e.term)
		}
		return fmt.Sprintf("text does not contain %q", e.term)

	case *FuzzyExpr:
		if e.Matches(entry) {
			return fmt.Sprintf("text fuzzily matches %q", e.term)
		}
		return fmt.Sprintf("text does not fuzzily match %q", e.term)

	case *IDFilter:
		if e.Matches(entry) {
			return fmt.Sprintf("id %d matches %s%d", entry.ID, e.op, e.value)
		}
		return fmt.Sprintf("id %d does not match %s%d", entry.ID, e.op, e.value)

	case *DateFilter:
		created := entry.Created.Format("2006-01-02")
		if e.Matches(entry) {
			return fmt.Sprintf("created %s matches %s%s", created, e.op, e.value)
		}
		return fmt.Sprintf("created %s does not match %s%s", created, e.op, e.value)

	case *AndExpr:
		if !e.left.Matches(entry) {
			return "left fails: " + Explain(entry, e.left)
		}
		if !e.right.Matches(entry) {
			return "right fails: " + Explain(entry, e.right)
		}
		return fmt.Sprintf("%s and %s", Explain(entry, e.left), Explain(entry, e.right))

	case *OrExpr:
		if e.left.Matches(entry) {
			return Explain(entry, e.left)
		}
		return Explain(entry, e.right)

	case *NotExpr:
		return "not: " + Explain(entry, e.expr)

	default:
		if expr.Matches(entry) {
			return "matches " + expr.String()
		}
		return "does not match " + expr.String()
	}
}
