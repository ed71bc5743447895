package musys

import "strings"

// ParagraphSet holds the Data Paragraphs: named (A..Z) queues of integers
// parsed once from the data file at startup. Grounded on
// original_source/musysim.py's store_input (blank-line-delimited
// paragraphs, comma/semicolon/whitespace splitting, bracket stripping).
type ParagraphSet struct {
	queues [26][]int
}

// ParseParagraphs parses raw data-file text into a ParagraphSet. A blank
// line advances the paragraph letter (starting at A); within a paragraph,
// numbers are separated by comma, semicolon, or whitespace, after
// stripping parentheses and square brackets (spec.md §6).
func ParseParagraphs(text string) (*ParagraphSet, error) {
	p := &ParagraphSet{}
	letter := 0
	sawContent := false
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			if sawContent {
				letter++
				sawContent = false
			}
			continue
		}
		if letter >= 26 {
			break
		}
		stripped := strings.NewReplacer("(", "", ")", "", "[", "", "]", "").Replace(line)
		for _, field := range strings.FieldsFunc(stripped, isDelimiterRune) {
			n, err := parseSignedInt(field)
			if err != nil {
				continue
			}
			p.queues[letter] = append(p.queues[letter], n)
			sawContent = true
		}
	}
	return p, nil
}

func isDelimiterRune(r rune) bool {
	return r == ',' || r == ';' || r == ' ' || r == '\t'
}

func parseSignedInt(s string) (int, error) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	n := 0
	if s == "" {
		return 0, errEmptyNumber
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, errEmptyNumber
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}

// Consume removes and returns the next integer from paragraph letter
// ('A'..'Z'). An exhausted paragraph, or a letter outside 'A'..'Z' (in
// particular the zero value used for "no paragraph selected"), returns
// 0 and reports false rather than indexing out of range, per the safe
// default decided in spec.md §9/SPEC_FULL.md §6.
func (p *ParagraphSet) Consume(letter byte) (int, bool) {
	if letter < 'A' || letter > 'Z' {
		return 0, false
	}
	i := letter - 'A'
	q := p.queues[i]
	if len(q) == 0 {
		return 0, false
	}
	v := q[0]
	p.queues[i] = q[1:]
	return v, true
}

// Remaining returns the unconsumed values of paragraph letter, for the
// inspection shell's "paragraphs" command. The returned slice is a copy;
// mutating it does not affect the queue.
func (p *ParagraphSet) Remaining(letter byte) []int {
	q := p.queues[letter-'A']
	out := make([]int, len(q))
	copy(out, q)
	return out
}
