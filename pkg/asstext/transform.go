// transform.go converts between parsed elements and the semantic model.
package asstext

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// ExtractAll returns the resolved event-level tags and the formatted text
// segments of a parsed event.
func ExtractAll(elements []TextElement) (EventTagSet, []TextSegment) {
	return ResolveEventTags(elements), ResolveSegments(elements)
}

// ComposeAll builds elements from the semantic model. Event tags go into one
// leading block in canonical order. Each segment is preceded by a block with
// the inline entries that differ from the previous segment; a segment whose
// tags include \r restates all of its entries after the \r. Rendering and
// re-parsing the result yields the same ExtractAll output.
//
// An inline entry that disappears without a \r cannot be expressed in event
// text and is ignored. Unknown tag names and values of the wrong type are
// skipped. Event text has no escape for '{': a '{' in plain text that a
// later '}' would close is dropped.
func ComposeAll(eventTags EventTagSet, segments []TextSegment) []TextElement {
	var elements []TextElement

	if tags := composeBlock(eventTags, EventLevel); len(tags) > 0 {
		elements = append(elements, OverrideBlock{Elements: tags})
	}

	var prev map[string]any
	for _, seg := range segments {
		if changed := changedEntries(prev, seg.BlockTags); len(changed) > 0 {
			if tags := composeBlock(changed, Inline); len(tags) > 0 {
				elements = append(elements, OverrideBlock{Elements: tags})
			}
		}
		elements = appendComposedContent(elements, seg.Content)
		prev = seg.BlockTags
	}
	return dropOpenBraces(elements)
}

// dropOpenBraces removes each '{' in plain text that is followed by a '}'
// anywhere later in the rendered output. A text left empty is removed.
func dropOpenBraces(elements []TextElement) []TextElement {
	closed := false
	var out []TextElement
	for i := len(elements) - 1; i >= 0; i-- {
		switch e := elements[i].(type) {
		case OverrideBlock:
			closed = true
		case PlainText:
			if parts := stripOpenBraces(e.Content, &closed); len(parts) != 1 || parts[0] != e.Content {
				slog.Debug("dropping '{' from segment text", "text", e.Content)
				for j := len(parts) - 1; j >= 0; j-- {
					out = append(out, PlainText{Content: parts[j]})
				}
				continue
			}
		}
		out = append(out, elements[i])
	}
	slices.Reverse(out)
	return joinAdjacentText(out)
}

// stripOpenBraces drops the closed '{' bytes of s. The result is split
// where a drop would join a backslash to N, n or h.
func stripOpenBraces(s string, closed *bool) []string {
	if !strings.ContainsAny(s, "{}") {
		return []string{s}
	}
	drop := make([]bool, len(s))
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case '}':
			*closed = true
		case '{':
			drop[i] = *closed
		}
	}

	var parts []string
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		if !drop[i] {
			cur.WriteByte(s[i])
			continue
		}
		if formsEscape(cur.String(), s[i+1:]) {
			parts = append(parts, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

// joinAdjacentText drops the empty separator blocks that no longer sit
// between two plain texts, and adds one where removal made two meet.
func joinAdjacentText(elements []TextElement) []TextElement {
	var out []TextElement
	for _, el := range elements {
		if blk, ok := el.(OverrideBlock); ok && len(blk.Elements) == 0 {
			continue
		}
		if _, plain := el.(PlainText); plain {
			if n := len(out); n > 0 {
				if _, prevPlain := out[n-1].(PlainText); prevPlain {
					out = append(out, OverrideBlock{})
				}
			}
		}
		out = append(out, el)
	}
	return out
}

// changedEntries returns the entries of cur that must be written to move
// from prev to cur.
func changedEntries(prev, cur map[string]any) map[string]any {
	if sameState(prev, cur) {
		return nil
	}
	if _, reset := cur["r"]; reset {
		return cur
	}
	changed := make(map[string]any)
	for name, v := range cur {
		if old, ok := prev[name]; !ok || !sameValue(old, v) {
			changed[name] = v
		}
	}
	return changed
}

// composeBlock formats the entries of one category as tags in canonical
// order, \r first.
func composeBlock(entries map[string]any, cat Category) []BlockElement {
	var tags []BlockElement
	for _, name := range sortedNames(entries) {
		d, ok := registry.byName[name]
		if !ok || d.Category != cat {
			slog.Debug("skipping tag while composing", "tag", name, "category", cat.String())
			continue
		}
		param, err := FormatTag(name, entries[name])
		if err != nil {
			slog.Debug("skipping tag while composing", "tag", name, "error", err)
			continue
		}
		tag := OverrideTag{Name: name, Param: param, Value: entries[name]}
		if name == "r" {
			tags = append([]BlockElement{tag}, tags...)
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// appendComposedContent appends segment content. Two plain texts in a row
// are kept apart with an empty block so that parsing does not join them.
func appendComposedContent(elements []TextElement, content []TextElement) []TextElement {
	for _, el := range content {
		switch el.(type) {
		case PlainText:
			if n := len(elements); n > 0 {
				if _, prevPlain := elements[n-1].(PlainText); prevPlain {
					elements = append(elements, OverrideBlock{})
				}
			}
		case SpecialChar:
		default:
			slog.Debug("skipping non-text segment content", "type", fmt.Sprintf("%T", el))
			continue
		}
		elements = append(elements, el)
	}
	return elements
}
