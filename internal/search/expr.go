package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pstuifzand/tui-listproxy/internal/model"
)

// now is replaced in tests
var now = time.Now

// FilterExpr represents a filter expression that can match entries
type FilterExpr interface {
	Matches(entry *model.Entry) bool
	String() string // For debug output
}

// TextExpr matches entries whose text contains the search term (case-insensitive)
type TextExpr struct {
	term string
}

func NewTextExpr(term string) *TextExpr {
	return &TextExpr{term: strings.ToLower(term)}
}

func (e *TextExpr) Matches(entry *model.Entry) bool {
	return strings.Contains(strings.ToLower(entry.Text), e.term)
}

func (e *TextExpr) String() string {
	return fmt.Sprintf("text(%q)", e.term)
}

// FuzzyExpr matches entries whose text contains the letters of the term in
// order, ignoring case
type FuzzyExpr struct {
	term string
}

func NewFuzzyExpr(term string) *FuzzyExpr {
	return &FuzzyExpr{term: term}
}

func (e *FuzzyExpr) Matches(entry *model.Entry) bool {
	return fuzzy.MatchFold(e.term, entry.Text)
}

func (e *FuzzyExpr) String() string {
	return fmt.Sprintf("fuzzy(%q)", e.term)
}

// RegexExpr matches entries whose text matches a regular expression pattern
type RegexExpr struct {
	pattern string
	re      *regexp.Regexp
}

func NewRegexExpr(pattern string) (*RegexExpr, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %w", err)
	}
	return &RegexExpr{pattern: pattern, re: re}, nil
}

func (e *RegexExpr) Matches(entry *model.Entry) bool {
	return e.re.MatchString(entry.Text)
}

func (e *RegexExpr) String() string {
	return fmt.Sprintf("regex(/%s/)", e.pattern)
}

// AlwaysMatchExpr matches all entries (for empty queries)
type AlwaysMatchExpr struct{}

func NewAlwaysMatchExpr() *AlwaysMatchExpr {
	return &AlwaysMatchExpr{}
}

func (e *AlwaysMatchExpr) Matches(entry *model.Entry) bool {
	return true
}

func (e *AlwaysMatchExpr) String() string {
	return "always-match"
}

// AndExpr matches if both left and right match
type AndExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewAndExpr(left, right FilterExpr) *AndExpr {
	return &AndExpr{left: left, right: right}
}

func (e *AndExpr) Matches(entry *model.Entry) bool {
	return e.left.Matches(entry) && e.right.Matches(entry)
}

func (e *AndExpr) String() string {
	return fmt.Sprintf("(and %s %s)", e.left.String(), e.right.String())
}

// OrExpr matches if either left or right matches
type OrExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewOrExpr(left, right FilterExpr) *OrExpr {
	return &OrExpr{left: left, right: right}
}

func (e *OrExpr) Matches(entry *model.Entry) bool {
	return e.left.Matches(entry) || e.right.Matches(entry)
}

func (e *OrExpr) String() string {
	return fmt.Sprintf("(or %s %s)", e.left.String(), e.right.String())
}

// NotExpr matches if the wrapped expression does not match
type NotExpr struct {
	expr FilterExpr
}

func NewNotExpr(expr FilterExpr) *NotExpr {
	return &NotExpr{expr: expr}
}

func (e *NotExpr) Matches(entry *model.Entry) bool {
	return !e.expr.Matches(entry)
}

func (e *NotExpr) String() string {
	return fmt.Sprintf("(not %s)", e.expr.String())
}

// IDFilter matches entries by their id
type IDFilter struct {
	op    ComparisonOp
	value int64
}

func NewIDFilter(op ComparisonOp, value string) (*IDFilter, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid id: %s", value)
	}
	return &IDFilter{op: op, value: id}, nil
}

func (e *IDFilter) Matches(entry *model.Entry) bool {
	return compare(entry.ID, e.op, e.value)
}

func (e *IDFilter) String() string {
	return fmt.Sprintf("id(%s%d)", e.op, e.value)
}

// DateFilter matches entries by their creation time. The value is either
// an absolute date (2006-01-02) or relative to now (-7d, 12h, -2w).
type DateFilter struct {
	op    ComparisonOp
	value string
}

func NewDateFilter(op ComparisonOp, value string) (*DateFilter, error) {
	if !isValidDateValue(value) {
		return nil, fmt.Errorf("invalid date value: %s", value)
	}
	return &DateFilter{op: op, value: value}, nil
}

func (e *DateFilter) Matches(entry *model.Entry) bool {
	created := entry.Created
	if created.IsZero() {
		return false
	}

	compareTime := parseDate(e.value)
	if compareTime.IsZero() {
		return false
	}

	switch e.op {
	case OpGreater:
		return created.After(compareTime)
	case OpGreaterEqual:
		return !created.Before(compareTime)
	case OpLess:
		return created.Before(compareTime)
	case OpLessEqual:
		return !created.After(compareTime)
	case OpEqual:
		return sameDay(created, compareTime)
	case OpNotEqual:
		return !sameDay(created, compareTime)
	default:
		return false
	}
}

func (e *DateFilter) String() string {
	return fmt.Sprintf("created(%s%s)", e.op, e.value)
}

func sameDay(a, b time.Time) bool {
	return a.Local().Format(time.DateOnly) == b.Local().Format(time.DateOnly)
}

func compare(a int64, op ComparisonOp, b int64) bool {
	switch op {
	case OpGreater:
		return a > b
	case OpGreaterEqual:
		return a >= b
	case OpLess:
		return a < b
	case OpLessEqual:
		return a <= b
	case OpEqual:
		return a == b
	case OpNotEqual:
		return a != b
	default:
		return false
	}
}

// relativeDate splits "-7d", "+2w" or "12h" into a signed amount and unit.
// Values without a sign count back from now.
func relativeDate(value string) (int, byte, bool) {
	if len(value) < 2 {
		return 0, 0, false
	}
	unit := value[len(value)-1]
	switch unit {
	case 'h', 'd', 'w', 'm', 'y':
	default:
		return 0, 0, false
	}

	digits := value[:len(value)-1]
	sign := -1
	if digits[0] == '+' {
		sign = 1
		digits = digits[1:]
	} else if digits[0] == '-' {
		digits = digits[1:]
	}
	amount, err := strconv.Atoi(digits)
	if err != nil || amount < 0 {
		return 0, 0, false
	}
	return sign * amount, unit, true
}

// isValidDateValue checks if a date value is in a valid format
func isValidDateValue(value string) bool {
	if _, _, ok := relativeDate(value); ok {
		return true
	}
	_, err := time.ParseInLocation(time.DateOnly, value, time.Local)
	return err == nil
}

// parseDate parses a date value (relative or absolute) into a time.Time
func parseDate(value string) time.Time {
	if amount, unit, ok := relativeDate(value); ok {
		t := now()
		switch unit {
		case 'h':
			return t.Add(time.Duration(amount) * time.Hour)
		case 'd':
			return t.AddDate(0, 0, amount)
		case 'w':
			return t.AddDate(0, 0, amount*7)
		case 'm':
			return t.AddDate(0, amount, 0)
		case 'y':
			return t.AddDate(amount, 0, 0)
		}
	}

	t, err := time.ParseInLocation(time.DateOnly, value, time.Local)
	if err == nil {
		return t
	}
	return time.Time{}
}

// MatchingEntries returns the entries that match the given filter expression
func MatchingEntries(entries []*model.Entry, filterExpr FilterExpr) []*model.Entry {
	var matches []*model.Entry
	for _, entry := range entries {
		if filterExpr.Matches(entry) {
			matches = append(matches, entry)
		}
	}
	return matches
}
