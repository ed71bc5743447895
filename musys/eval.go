package musys

import "strconv"

// evaluate implements the Expression Evaluator (spec.md §4.2): strict
// left-to-right, no operator precedence, updating EXP as it goes and
// wrapping exactly once at the end. Grounded on asm/expr.go's table-
// driven opdata{precedence, eval(a,b)} design, stripped of precedence
// (MUSYS has none) and of recursive descent (MUSYS needs none).
//
// Wrapping is deferred to the very end of the token stream rather than
// applied after every operator; per spec.md §4.2 this is also the
// suggested implementation of the 23-bit *-then-/ precision rule
// ("100*200/10" == 2000, not the 12-bit-wrapped intermediate), so no
// special case is needed for that operator pair.
func (e *Engine) evaluate(expr string) int {
	exp := e.vars.EXP
	var pendingOp byte
	hasPending := false

	for _, tok := range tokenize(expr) {
		item, ok := e.tokenValue(tok, exp)
		if !ok {
			if isOperatorToken(tok) {
				pendingOp = tok[0]
				hasPending = true
			}
			continue
		}
		if hasPending {
			if pendingOp == '/' && item == 0 {
				e.diagnostic(RuntimeError, "division by zero")
				exp = 0
			} else {
				exp = applyOp(pendingOp, exp, item)
			}
			hasPending = false
		} else {
			exp = item
		}
	}

	exp = WrapSigned12(exp)
	e.vars.EXP = exp
	return exp
}

// tokenValue resolves a single token to an item value, or reports false
// if the token is an operator (handled by the caller) or insignificant
// (whitespace).
func (e *Engine) tokenValue(tok string, exp int) (int, bool) {
	switch {
	case tok == "":
		return 0, false
	case isOperatorToken(tok):
		return 0, false
	case isAllDigits(tok):
		n, _ := strconv.Atoi(tok)
		return n, true
	case len(tok) == 1 && isUpper(tok[0]):
		return e.vars.Get(tok[0]), true
	case tok == "↑" || tok == "^":
		return e.randomOp(exp), true
	case tok == "←":
		if e.selectedParagraph < 'A' || e.selectedParagraph > 'Z' {
			e.diagnostic(LookupError, "no data paragraph selected")
			return 0, true
		}
		v, ok := e.paragraphs.Consume(e.selectedParagraph)
		if !ok {
			e.diagnostic(RuntimeError, "data paragraph exhausted")
		}
		return v, true
	default:
		return 0, false
	}
}

func isOperatorToken(tok string) bool {
	return len(tok) == 1 && isOperatorByte(tok[0])
}

func isOperatorByte(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '&', '>', '<':
		return true
	}
	return false
}

func isAllDigits(tok string) bool {
	if tok == "" {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if !isDigit(tok[i]) {
			return false
		}
	}
	return true
}

// tokenize splits an expression into alphanumeric runs and single
// non-alphanumeric delimiter runes, per spec.md §4.2 ("splitting on
// non-alphanumerics, keeping delimiters"). Grounded on the same idea as
// original_source/musysim.py's re.split(r'(\W)', expression), reimplemented
// as an explicit scan in the teacher's hand-rolled-lexer idiom (the
// teacher never imports "regexp").
func tokenize(expr string) []string {
	var tokens []string
	i := 0
	for i < len(expr) {
		switch {
		case isAlnum(expr[i]):
			j := i
			for j < len(expr) && isAlnum(expr[j]) {
				j++
			}
			tokens = append(tokens, expr[i:j])
			i = j
		case expr[i] == ' ' || expr[i] == '\t' || expr[i] == '\r' || expr[i] == '\n':
			i++
		case expr[i] < 0x80:
			tokens = append(tokens, expr[i:i+1])
			i++
		default:
			// multi-byte rune (e.g. U+2191, U+2190): consume whole rune.
			size := runeByteLen(expr[i])
			if i+size > len(expr) {
				size = len(expr) - i
			}
			tokens = append(tokens, expr[i:i+size])
			i += size
		}
	}
	return tokens
}

func isAlnum(b byte) bool {
	return isDigit(b) || isUpper(b) || (b >= 'a' && b <= 'z')
}

func runeByteLen(lead byte) int {
	switch {
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

// applyOp applies one left-to-right operator. "&" masks unsigned to 12
// bits rather than being folded through the signed-magnitude wrap
// (spec.md §9's own resolution of the ambiguity); the enclosing
// expression's final WrapSigned12 still applies at the end as usual.
func applyOp(op byte, a, b int) int {
	switch op {
	case '+':
		return a + b
	case '-':
		return a - b
	case '*':
		return a * b
	case '/':
		if b == 0 {
			return 0
		}
		return a / b
	case '&':
		return (a & b) & Mask12
	case '>':
		if a > b {
			return a
		}
		return b
	case '<':
		if a < b {
			return a
		}
		return b
	default:
		return b
	}
}

// randomOp implements spec.md §3's random operator: replaces EXP with a
// uniform random integer from [1, |EXP|], with EXP's sign applied; 0
// stays 0.
func (e *Engine) randomOp(exp int) int {
	if exp == 0 {
		return 0
	}
	mag := exp
	neg := false
	if mag < 0 {
		mag = -mag
		neg = true
	}
	r := e.rng.Intn(mag) + 1
	if neg {
		return -r
	}
	return r
}
