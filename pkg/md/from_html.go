package md

import (
	"html"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/open-cli-collective/asstag/pkg/asstext"
)

// inlineHTML maps boolean inline tags to HTML elements, outermost first.
var inlineHTML = []struct {
	tag     string
	element string
}{
	{"b", "strong"},
	{"i", "em"},
	{"u", "u"},
	{"s", "del"},
}

// ToHTML renders segments as an HTML fragment. Each segment is wrapped in the
// elements its bold, italic, underline and strikeout state calls for; \N
// becomes <br>, \h a no-break space and \n a plain space.
func ToHTML(segments []asstext.TextSegment) string {
	var sb strings.Builder
	for _, seg := range segments {
		var open []string
		for _, m := range inlineHTML {
			if isOn(m.tag, seg.BlockTags[m.tag]) {
				open = append(open, m.element)
			}
		}
		for _, el := range open {
			sb.WriteString("<" + el + ">")
		}
		for _, el := range seg.Content {
			switch e := el.(type) {
			case asstext.PlainText:
				sb.WriteString(html.EscapeString(e.Content))
			case asstext.SpecialChar:
				switch e.Kind {
				case asstext.HardNewline:
					sb.WriteString("<br>")
				case asstext.HardSpace:
					sb.WriteString("&nbsp;")
				case asstext.SoftNewline:
					sb.WriteByte(' ')
				}
			}
		}
		for i := len(open) - 1; i >= 0; i-- {
			sb.WriteString("</" + open[i] + ">")
		}
	}
	return sb.String()
}

// isOn reports whether an inline value turns its formatting on. Bold also
// accepts explicit weights from 600 up.
func isOn(tag string, v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case asstext.FontWeight:
		return tag == "b" && val >= 600
	}
	return false
}

// ToMarkdown converts segments to Markdown through their HTML form.
func ToMarkdown(segments []asstext.TextSegment) (string, error) {
	if len(segments) == 0 {
		return "", nil
	}

	markdown, err := htmltomarkdown.ConvertString(ToHTML(segments))
	if err != nil {
		return "", err
	}

	// Clean up the output - trim whitespace
	return strings.TrimSpace(markdown), nil
}
