// resolve.go applies tag precedence and exclusivity to a parsed event.
package asstext

import (
	"maps"
	"strings"
)

// ResolveEventTags returns the effective event-level tags. Occurrences are
// grouped by exclusivity group (a tag without a group is its own group); in a
// first-wins group the earliest occurrence of any member survives, in a
// last-wins group the latest. Each group contributes at most one entry, keyed
// by the name of the surviving tag.
func ResolveEventTags(elements []TextElement) EventTagSet {
	type winner struct {
		name  string
		value any
	}
	groups := make(map[string]winner)

	for _, tag := range collectTags(elements) {
		d, ok := registry.byName[tag.Name]
		if !ok || d.Category != EventLevel {
			continue
		}
		key := d.GroupKey()
		if _, seen := groups[key]; seen && d.Precedence == FirstWins {
			continue
		}
		groups[key] = winner{name: tag.Name, value: tag.Value}
	}

	set := make(EventTagSet, len(groups))
	for _, w := range groups {
		set[w.name] = w.value
	}
	return set
}

// inlineState is an immutable snapshot of inline tag values.
type inlineState map[string]any

// with returns a new state with tag applied. \r discards everything set so far.
func (s inlineState) with(tag OverrideTag) inlineState {
	var next inlineState
	if tag.Name == "r" {
		next = make(inlineState, 1)
	} else {
		next = maps.Clone(s)
		if next == nil {
			next = make(inlineState, 1)
		}
	}
	next[tag.Name] = tag.Value
	return next
}

// ResolveSegments folds inline tags left to right and splits the text into
// segments. Each segment records the state at its start. Text separated only
// by blocks that change nothing stays in one segment.
func ResolveSegments(elements []TextElement) []TextSegment {
	state := inlineState{}
	var segments []TextSegment

	for _, el := range elements {
		switch e := el.(type) {
		case OverrideBlock:
			for _, tag := range e.Tags() {
				d, ok := registry.byName[tag.Name]
				if !ok || d.Category != Inline {
					continue
				}
				state = state.with(tag)
			}
		case PlainText, SpecialChar:
			n := len(segments)
			if n == 0 || !sameState(segments[n-1].BlockTags, state) {
				segments = append(segments, TextSegment{BlockTags: state})
				n++
			}
			segments[n-1].Content = appendContent(segments[n-1].Content, el)
		}
	}
	return segments
}

// appendContent adds el to content, merging adjacent plain text unless the
// merge would create an escape sequence that was not in the source.
func appendContent(content []TextElement, el TextElement) []TextElement {
	pt, ok := el.(PlainText)
	if !ok || len(content) == 0 {
		return append(content, el)
	}
	last, ok := content[len(content)-1].(PlainText)
	if !ok || formsEscape(last.Content, pt.Content) {
		return append(content, el)
	}
	content[len(content)-1] = PlainText{Content: last.Content + pt.Content}
	return content
}

func formsEscape(left, right string) bool {
	return strings.HasSuffix(left, `\`) && right != "" && isSpecialKind(right[0])
}

func collectTags(elements []TextElement) []OverrideTag {
	var tags []OverrideTag
	for _, el := range elements {
		if block, ok := el.(OverrideBlock); ok {
			tags = append(tags, block.Tags()...)
		}
	}
	return tags
}
