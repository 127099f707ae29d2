package expr

import (
	"strconv"
	"unicode"

	"github.com/edp1096/toy-numeric/pkg/numerr"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokVar
	tokOp
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	op   byte // + - * / ^
	val  float64
	pos  int
}

// lex splits the formula into tokens. Two normalizations happen here:
// "**" is read as the power operator "^", and a numeric literal directly
// followed by a letter gets an explicit "*" (2x -> 2*x).
func lex(src string) ([]token, error) {
	var tokens []token
	rs := []rune(src)

	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case unicode.IsDigit(r) || r == '.':
			start := i
			dots := 0
			for i < len(rs) && (unicode.IsDigit(rs[i]) || rs[i] == '.') {
				if rs[i] == '.' {
					dots++
				}
				i++
			}
			text := string(rs[start:i])
			if dots > 1 || text == "." {
				return nil, invalid("malformed number %q at position %d", text, start)
			}
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, invalid("malformed number %q at position %d", text, start)
			}
			tokens = append(tokens, token{kind: tokNumber, val: v, pos: start})

			// Implicit multiplication: digit immediately followed by a letter.
			if i < len(rs) && unicode.IsLetter(rs[i]) {
				tokens = append(tokens, token{kind: tokOp, op: '*', pos: i})
			}

		case r == 'x' || r == 'X':
			tokens = append(tokens, token{kind: tokVar, pos: i})
			i++

		case unicode.IsLetter(r):
			start := i
			for i < len(rs) && unicode.IsLetter(rs[i]) {
				i++
			}
			return nil, invalid("unknown identifier %q at position %d", string(rs[start:i]), start)

		case r == '*' && i+1 < len(rs) && rs[i+1] == '*':
			tokens = append(tokens, token{kind: tokOp, op: '^', pos: i})
			i += 2

		case r == '+' || r == '-' || r == '*' || r == '/' || r == '^':
			tokens = append(tokens, token{kind: tokOp, op: byte(r), pos: i})
			i++

		case r == '(':
			tokens = append(tokens, token{kind: tokLParen, pos: i})
			i++

		case r == ')':
			tokens = append(tokens, token{kind: tokRParen, pos: i})
			i++

		default:
			return nil, invalid("unexpected character %q at position %d", r, i)
		}
	}

	tokens = append(tokens, token{kind: tokEOF, pos: len(rs)})
	return tokens, nil
}

func invalid(format string, args ...any) error {
	return numerr.New(numerr.InvalidExpression, "expr", format, args...)
}
