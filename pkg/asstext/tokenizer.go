// tokenizer.go splits event text into elements and override blocks into tags.
package asstext

import "strings"

// TokenizeBlock scans the interior of an override block (the text between
// '{' and '}'). offset is the byte position of the interior in the event text
// and is added to every reported position.
//
// At each backslash the registry is asked for tag names that prefix the rest
// of the block, longest first; the first whose parameter grammar and decoder
// accept the following text becomes an OverrideTag. Anything else accumulates
// into a Comment until the next recognized tag or the end of the block.
// TokenizeBlock never fails.
func TokenizeBlock(interior string, offset int) []BlockElement {
	var elements []BlockElement
	pos := 0
	commentStart := -1

	flushComment := func(end int) {
		if commentStart >= 0 {
			elements = append(elements, Comment{
				Raw: interior[commentStart:end],
				Pos: offset + commentStart,
			})
			commentStart = -1
		}
	}

	for pos < len(interior) {
		if interior[pos] == '\\' {
			if tag, end, ok := matchTag(interior, pos); ok {
				flushComment(pos)
				tag.Span = Span{Start: offset + pos, End: offset + end}
				elements = append(elements, tag)
				pos = end
				continue
			}
		}
		if commentStart < 0 {
			commentStart = pos
		}
		pos++
	}
	flushComment(len(interior))

	return elements
}

// matchTag tries to read a tag at s[pos], which must be a backslash.
// Returns the tag and the position after it.
func matchTag(s string, pos int) (OverrideTag, int, bool) {
	rest := s[pos+1:]
	for _, d := range registry.candidates(rest) {
		param, ok := d.matchParam(rest[len(d.Name):])
		if !ok {
			continue
		}
		value, err := d.decodeParam(param)
		if err != nil {
			continue
		}
		end := pos + 1 + len(d.Name) + len(param)
		return OverrideTag{Name: d.Name, Param: param, Value: value}, end, true
	}
	return OverrideTag{}, pos, false
}

// tokenize performs the top-level scan of an event text. It does not look at
// tags outside blocks: an unclosed '{' is plain text, and a backslash that is
// not \N, \n or \h is plain text.
func tokenize(text string) []TextElement {
	var elements []TextElement
	pos := 0
	textStart := 0

	flushText := func(end int) {
		if end > textStart {
			elements = append(elements, PlainText{Content: text[textStart:end]})
		}
	}

	for pos < len(text) {
		switch text[pos] {
		case '{':
			closeIdx := strings.IndexByte(text[pos+1:], '}')
			if closeIdx < 0 {
				// unclosed: the brace is text, escapes after it still count
				pos++
				continue
			}
			flushText(pos)
			interiorStart := pos + 1
			interiorEnd := interiorStart + closeIdx
			elements = append(elements, OverrideBlock{
				Elements: TokenizeBlock(text[interiorStart:interiorEnd], interiorStart),
				Pos:      pos,
			})
			pos = interiorEnd + 1
			textStart = pos
		case '\\':
			if pos+1 < len(text) && isSpecialKind(text[pos+1]) {
				flushText(pos)
				elements = append(elements, SpecialChar{Kind: SpecialKind(text[pos+1])})
				pos += 2
				textStart = pos
				continue
			}
			pos++
		default:
			pos++
		}
	}
	flushText(len(text))

	return elements
}
