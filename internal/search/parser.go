package search

import (
	"fmt"
	"strings"
)

// TokenType is the kind of a query token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenText
	TokenQuoted // "exact words"
	TokenFilter // name:[op]value
	TokenRegex  // /pattern/
	TokenAnd    // +
	TokenOr     // |
	TokenNot    // -
	TokenLParen
	TokenRParen
)

// Token is one lexeme of a query
type Token struct {
	Type  TokenType
	Value string
}

// FilterType names a field filter
type FilterType string

const (
	FilterTypeCreated FilterType = "c"
	FilterTypeID      FilterType = "id"
)

// ComparisonOp compares a field against a filter value
type ComparisonOp string

const (
	OpEqual        ComparisonOp = "="
	OpNotEqual     ComparisonOp = "!="
	OpGreater      ComparisonOp = ">"
	OpGreaterEqual ComparisonOp = ">="
	OpLess         ComparisonOp = "<"
	OpLessEqual    ComparisonOp = "<="
)

// operators are tried longest first so ">=" is not read as ">".
var operators = []ComparisonOp{OpGreaterEqual, OpLessEqual, OpNotEqual, OpGreater, OpLess, OpEqual}

var punctuation = map[byte]TokenType{
	'(': TokenLParen,
	')': TokenRParen,
	'|': TokenOr,
	'+': TokenAnd,
	'-': TokenNot,
}

// Tokenizer splits an entry filter query into tokens
type Tokenizer struct {
	input string
	pos   int
}

func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// AllTokens returns the remaining tokens, ending with TokenEOF
func (t *Tokenizer) AllTokens() []Token {
	var tokens []Token
	for {
		tok := t.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

// NextToken returns the next token. A '-' or '+' only acts as an operator
// at the start of a token; inside a word it is part of the word.
func (t *Tokenizer) NextToken() Token {
	t.pos += len(t.input[t.pos:]) - len(strings.TrimLeft(t.input[t.pos:], " \t\n"))
	if t.pos >= len(t.input) {
		return Token{Type: TokenEOF}
	}

	c := t.input[t.pos]
	if typ, ok := punctuation[c]; ok {
		t.pos++
		return Token{Type: typ, Value: string(c)}
	}

	switch {
	case c == '"':
		value := t.until(t.pos+1, func(b byte) bool { return b == '"' })
		return Token{Type: TokenQuoted, Value: value}
	case c == '/' && t.pos+1 < len(t.input):
		return t.regex()
	case t.filterName() != "":
		value := t.until(t.pos, isFilterEnd)
		return Token{Type: TokenFilter, Value: value}
	}
	value := t.until(t.pos, isWordEnd)
	return Token{Type: TokenText, Value: value}
}

// until consumes from start up to the first byte matching stop. A closing
// quote is consumed as well.
func (t *Tokenizer) until(start int, stop func(byte) bool) string {
	end := start
	for end < len(t.input) && !stop(t.input[end]) {
		end++
	}
	value := t.input[start:end]
	t.pos = end
	if end < len(t.input) && t.input[end] == '"' {
		t.pos++
	}
	return value
}

// regex reads /pattern/. A backslash escapes the next byte; an
// unterminated pattern runs to the end of the query.
func (t *Tokenizer) regex() Token {
	var sb strings.Builder
	i := t.pos + 1
	for ; i < len(t.input) && t.input[i] != '/'; i++ {
		if t.input[i] == '\\' && i+1 < len(t.input) {
			sb.WriteByte('\\')
			i++
		}
		sb.WriteByte(t.input[i])
	}
	t.pos = min(i+1, len(t.input))
	return Token{Type: TokenRegex, Value: sb.String()}
}

// filterName returns the known filter name followed by ':' at the current
// position, or "".
func (t *Tokenizer) filterName() string {
	name, _, found := strings.Cut(t.input[t.pos:], ":")
	if !found {
		return ""
	}
	switch FilterType(name) {
	case FilterTypeCreated, FilterTypeID:
		return name
	}
	return ""
}

func isWordEnd(b byte) bool {
	return strings.IndexByte(" \t\n|+()", b) >= 0
}

func isFilterEnd(b byte) bool {
	return strings.IndexByte(" \t\n|)", b) >= 0
}

// Parser builds an expression tree from tokens. Precedence from loose to
// tight: '|', then '+' or adjacency, then '-'.
type Parser struct {
	tokens []Token
	pos    int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseQuery parses an entry filter query. The empty query matches every
// entry.
func ParseQuery(query string) (FilterExpr, error) {
	p := NewParser(NewTokenizer(query).AllTokens())
	if p.peek().Type == TokenEOF {
		return NewAlwaysMatchExpr(), nil
	}
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, fmt.Errorf("unexpected token: %s", tok.Value)
	}
	return expr, nil
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) next() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) or() (FilterExpr, error) {
	expr, err := p.and()
	for err == nil && p.peek().Type == TokenOr {
		p.next()
		var right FilterExpr
		if right, err = p.and(); err == nil {
			expr = NewOrExpr(expr, right)
		}
	}
	return expr, err
}

func (p *Parser) and() (FilterExpr, error) {
	expr, err := p.not()
	for err == nil {
		if p.peek().Type == TokenAnd {
			p.next()
		}
		switch p.peek().Type {
		case TokenEOF, TokenOr, TokenRParen:
			return expr, nil
		}
		var right FilterExpr
		if right, err = p.not(); err == nil {
			expr = NewAndExpr(expr, right)
		}
	}
	return nil, err
}

func (p *Parser) not() (FilterExpr, error) {
	if p.peek().Type != TokenNot {
		return p.term()
	}
	p.next()
	expr, err := p.not()
	if err != nil {
		return nil, err
	}
	return NewNotExpr(expr), nil
}

func (p *Parser) term() (FilterExpr, error) {
	tok := p.next()
	switch tok.Type {
	case TokenText:
		return NewFuzzyExpr(tok.Value), nil
	case TokenQuoted:
		return NewTextExpr(tok.Value), nil
	case TokenRegex:
		return NewRegexExpr(tok.Value)
	case TokenFilter:
		return parseFilter(tok.Value)
	case TokenLParen:
		expr, err := p.or()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.Type != TokenRParen {
			return nil, fmt.Errorf("expected ')', got %q", closing.Value)
		}
		return expr, nil
	case TokenEOF:
		return nil, fmt.Errorf("unexpected end of input")
	}
	return nil, fmt.Errorf("unexpected token: %s", tok.Value)
}

// parseFilter turns "name:[op]value" into a field filter
func parseFilter(value string) (FilterExpr, error) {
	name, criteria, _ := strings.Cut(value, ":")
	op, operand, err := parseComparison(criteria)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if FilterType(name) == FilterTypeCreated {
		return NewDateFilter(op, operand)
	}
	return NewIDFilter(op, operand)
}

// parseComparison splits criteria into an operator and a value:
// "5" is ("=", "5") and ">=2025-11-01" is (">=", "2025-11-01").
func parseComparison(criteria string) (ComparisonOp, string, error) {
	if criteria == "" {
		return "", "", fmt.Errorf("empty criteria")
	}
	for _, op := range operators {
		if rest, ok := strings.CutPrefix(criteria, string(op)); ok {
			if rest == "" {
				return "", "", fmt.Errorf("missing value after operator %s", op)
			}
			return op, rest, nil
		}
	}
	return OpEqual, criteria, nil
}
