// grammar.go holds the parameter grammars that bound how much text a tag may consume.
package asstext

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Building blocks for parameter patterns.
const (
	reNum  = `-?(?:\d+(?:\.\d*)?|\.\d+)`
	reUNum = `(?:\d+(?:\.\d*)?|\.\d+)`
	reInt  = `-?\d+`
	reUInt = `\d+`
	reHex  = `&[Hh][0-9A-Fa-f]{1,8}&?`
	reHex2 = `&[Hh][0-9A-Fa-f]{1,2}&?`
)

// paramPattern is a regular expression anchored at the start of a simple
// tag's parameter. It bounds how much of the following text the tag consumes.
type paramPattern struct {
	re *regexp.Regexp
}

func newPattern(expr string) *paramPattern {
	re := regexp.MustCompile(`^(?:` + expr + `)`)
	re.Longest()
	return &paramPattern{re: re}
}

// prefix returns the length of the longest match at the start of s, or -1.
func (p *paramPattern) prefix(s string) int {
	loc := p.re.FindStringIndex(s)
	if loc == nil {
		return -1
	}
	return loc[1]
}

// argsPattern builds an anchored pattern for a comma separated argument list,
// allowing whitespace around each argument.
func argsPattern(args ...string) *regexp.Regexp {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = `\s*(` + a + `)\s*`
	}
	return regexp.MustCompile(`^` + strings.Join(parts, `,`) + `$`)
}

// matchParam returns the parameter text that follows the tag name in s.
// ok is false when the grammar rejects the text.
//
// A simple tag's parameter is the longest pattern match at the start of the
// text up to the next backslash; whatever follows it is left for the caller.
// A tag that reverts to the style value may have no parameter at all, but
// only when nothing other than whitespace precedes the next backslash.
func (d *TagDefinition) matchParam(s string) (param string, ok bool) {
	if d.Function {
		end := matchParens(s)
		if end < 0 {
			return "", false
		}
		return s[:end], true
	}

	end := strings.IndexByte(s, '\\')
	if end < 0 {
		end = len(s)
	}
	run := s[:end]
	if n := d.pattern.prefix(run); n > 0 || (n == 0 && !d.emptyDefault) {
		return run[:n], true
	}
	if d.emptyDefault && strings.TrimSpace(run) == "" {
		return "", true
	}
	return "", false
}

// decodeParam turns matched parameter text into the tag's typed value.
func (d *TagDefinition) decodeParam(param string) (any, error) {
	if d.Function {
		return d.decode(param[1 : len(param)-1])
	}
	if param == "" && d.emptyDefault {
		return StyleDefault{}, nil
	}
	return d.decode(param)
}

// matchParens returns the length of the balanced parenthesized group at the
// start of s, or -1 when s does not start with one or never closes it.
func matchParens(s string) int {
	if s == "" || s[0] != '(' {
		return -1
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// splitArgs matches args against re and returns the captured arguments.
func splitArgs(re *regexp.Regexp, args string) ([]string, bool) {
	m := re.FindStringSubmatch(args)
	if m == nil {
		return nil, false
	}
	return m[1:], true
}

func parseFloats(parts []string) ([]float64, error) {
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParameter, p)
		}
		out[i] = f
	}
	return out, nil
}

func parseInts(parts []string) ([]int, error) {
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParameter, p)
		}
		out[i] = n
	}
	return out, nil
}

// parseHex reads the digits of an &H...& literal.
func parseHex(s string) (uint64, error) {
	digits := strings.TrimSuffix(s[2:], "&")
	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidParameter, s)
	}
	return n, nil
}

func joinInts(vals ...int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func joinFloats(vals ...float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, ",")
}
