package export

import (
	"regexp"
	"strconv"
	"strings"
)

// ColorOp is one color-setting operation found in a page content stream.
type ColorOp struct {
	Match    string    // complete matched text
	Values   []float64 // operand values in stream order
	Operator string    // rg, RG, g, G, k, K, sc, SC, scn, SCN
	Space    string    // "rgb", "gray", or "cmyk", derived from arity
	Stroke   bool      // uppercase operators set the stroke color
}

// opScanner finds color operators in decoded content streams. The color
// space of the generic sc/scn operators is inferred from operand arity,
// which holds for the device color spaces this rewriter targets.
type opScanner struct {
	patterns []opPattern
}

type opPattern struct {
	re    *regexp.Regexp
	space string
	arity int
}

func newOpScanner() *opScanner {
	num := `[-+]?(?:\d+\.?\d*|\.\d+)`
	ws := `\s+`

	build := func(arity int, ops string) *regexp.Regexp {
		expr := `(` + num + `)`
		for i := 1; i < arity; i++ {
			expr += ws + `(` + num + `)`
		}
		return regexp.MustCompile(expr + ws + `(` + ops + `)\b`)
	}

	return &opScanner{patterns: []opPattern{
		{build(3, `rg|RG|scn?|SCN?`), "rgb", 3},
		{build(4, `k|K|scn?|SCN?`), "cmyk", 4},
		{build(1, `g|G|scn?|SCN?`), "gray", 1},
	}}
}

// Scan returns every color operator in content. Low-arity matches that are
// the tail of a wider operator (e.g. the last operands of an rg or k) are
// skipped: content streams put an operator before every operand list, so a
// genuine match is never preceded by another number.
func (s *opScanner) Scan(content string) []ColorOp {
	var ops []ColorOp
	for _, p := range s.patterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(content, -1) {
			if precededByNumber(content, m[0]) {
				continue
			}

			op := ColorOp{
				Match: content[m[0]:m[1]],
				Space: p.space,
			}
			for i := 1; i <= p.arity; i++ {
				v, _ := strconv.ParseFloat(content[m[2*i]:m[2*i+1]], 64)
				op.Values = append(op.Values, v)
			}
			op.Operator = content[m[2*(p.arity+1)]:m[2*(p.arity+1)+1]]
			op.Stroke = op.Operator == strings.ToUpper(op.Operator)
			ops = append(ops, op)
		}
	}
	return ops
}

func precededByNumber(content string, pos int) bool {
	for pos > 0 {
		c := content[pos-1]
		if c == ' ' || c == '\t' {
			pos--
			continue
		}
		return c >= '0' && c <= '9' || c == '.'
	}
	return false
}

// Rewrite applies the old->new replacements across the content stream.
func (s *opScanner) Rewrite(content string, replacements map[string]string) string {
	for old, repl := range replacements {
		content = strings.ReplaceAll(content, old, repl)
	}
	return content
}
