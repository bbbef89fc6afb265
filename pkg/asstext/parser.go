// parser.go builds the element tree of one event text and validates it.
package asstext

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ParseResult is the parsed form of one event text.
type ParseResult struct {
	Elements    []TextElement
	Diagnostics []Diagnostic
	Strict      bool

	errs []error
}

// Parse parses an event text. Parsing never fails: anything inside a block
// that is not a recognized tag is kept as a Comment, so Render(result.Elements)
// always returns text. When strict is set, every Comment that is not just
// whitespace additionally yields an error-level diagnostic and a TagParseError,
// reported together by Err.
func Parse(text string, strict bool) *ParseResult {
	pr := &ParseResult{
		Elements: tokenize(text),
		Strict:   strict,
	}
	if strict {
		pr.validate()
	}
	return pr
}

// validate runs once over the finished tree. Whitespace between tags is
// kept as a Comment but is not an error.
func (pr *ParseResult) validate() {
	for _, c := range pr.Comments() {
		if strings.TrimSpace(c.Raw) == "" {
			continue
		}
		pr.addDiagnostic(Diagnostic{
			Level:    LevelError,
			Code:     CodeUnrecognizedTag,
			Message:  fmt.Sprintf("unrecognized override tag content %q", c.Raw),
			Position: c.Pos,
			Raw:      c.Raw,
		})
		pr.errs = append(pr.errs, &TagParseError{Raw: c.Raw, Position: c.Pos})
	}
}

// addDiagnostic logs a diagnostic and stores it in the result.
func (pr *ParseResult) addDiagnostic(d Diagnostic) {
	pr.Diagnostics = append(pr.Diagnostics, d)
	slog.Debug("event text diagnostic",
		"level", d.Level.String(),
		"code", d.Code,
		"pos", d.Position,
		"raw", d.Raw)
}

// Err returns every TagParseError joined, or nil.
func (pr *ParseResult) Err() error {
	return errors.Join(pr.errs...)
}

// HasErrors reports whether any error-level diagnostic was produced.
func (pr *ParseResult) HasErrors() bool {
	for _, d := range pr.Diagnostics {
		if d.Level == LevelError {
			return true
		}
	}
	return false
}

// Comments returns every Comment in document order.
func (pr *ParseResult) Comments() []Comment {
	var comments []Comment
	for _, el := range pr.Elements {
		block, ok := el.(OverrideBlock)
		if !ok {
			continue
		}
		for _, be := range block.Elements {
			if c, ok := be.(Comment); ok {
				comments = append(comments, c)
			}
		}
	}
	return comments
}

// Tags returns every recognized tag in document order.
func (pr *ParseResult) Tags() []OverrideTag {
	var tags []OverrideTag
	for _, el := range pr.Elements {
		if block, ok := el.(OverrideBlock); ok {
			tags = append(tags, block.Tags()...)
		}
	}
	return tags
}

// Render renders the parsed elements back to text.
func (pr *ParseResult) Render() string {
	return Render(pr.Elements)
}
