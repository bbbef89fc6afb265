// segment.go defines formatted text segments of the semantic model.
package asstext

import (
	"maps"
	"reflect"
	"strings"
	"sync"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

// EventTagSet maps each resolved event-level tag name to its value.
type EventTagSet map[string]any

// Names returns the tag names in canonical order.
func (s EventTagSet) Names() []string {
	return sortedNames(s)
}

// TextSegment is a run of text with the inline tag state active at its start.
// Content holds only PlainText and SpecialChar elements. BlockTags values are
// the decoded values of the registry (bool, float64, Color, ...); other
// values are skipped when composing.
type TextSegment struct {
	BlockTags map[string]any
	Content   []TextElement
}

// TagNames returns the names in BlockTags in canonical order.
func (s TextSegment) TagNames() []string {
	return sortedNames(s.BlockTags)
}

// Text returns the content as event text, with escapes such as \N intact.
func (s TextSegment) Text() string {
	return Render(s.Content)
}

// DisplayText returns the content as it reads on screen: \N becomes a line
// break, \n a space and \h a no-break space.
func (s TextSegment) DisplayText() string {
	var sb strings.Builder
	for _, el := range s.Content {
		switch e := el.(type) {
		case PlainText:
			sb.WriteString(e.Content)
		case SpecialChar:
			switch e.Kind {
			case HardNewline:
				sb.WriteByte('\n')
			case SoftNewline:
				sb.WriteByte(' ')
			case HardSpace:
				sb.WriteString("\u00a0")
			}
		}
	}
	return sb.String()
}

var graphemeSetup sync.Once

// Len returns the number of user-perceived characters in DisplayText.
func (s TextSegment) Len() int {
	graphemeSetup.Do(grapheme.SetupGraphemeClasses)
	return grapheme.StringFromString(s.DisplayText()).Len()
}

// Width returns the display width of DisplayText in terminal cells.
func (s TextSegment) Width() int {
	graphemeSetup.Do(grapheme.SetupGraphemeClasses)
	return uax11.StringWidth(grapheme.StringFromString(s.DisplayText()), uax11.LatinContext)
}

// Equal reports whether both segments carry the same tags and content.
func (s TextSegment) Equal(o TextSegment) bool {
	if !sameState(s.BlockTags, o.BlockTags) || len(s.Content) != len(o.Content) {
		return false
	}
	for i := range s.Content {
		if !sameContent(s.Content[i], o.Content[i]) {
			return false
		}
	}
	return true
}

func sameContent(a, b TextElement) bool {
	switch x := a.(type) {
	case PlainText:
		y, ok := b.(PlainText)
		return ok && x == y
	case SpecialChar:
		y, ok := b.(SpecialChar)
		return ok && x == y
	}
	return false
}

// sameState compares two inline states.
func sameState(a, b map[string]any) bool {
	return maps.EqualFunc(a, b, sameValue)
}

// sameValue is == for tag values. Decoded values are always comparable; a
// caller-built slice or map is compared with reflect.DeepEqual instead of
// panicking.
func sameValue(x, y any) bool {
	if x == nil || y == nil {
		return x == y
	}
	tx := reflect.TypeOf(x)
	if tx != reflect.TypeOf(y) {
		return false
	}
	if !tx.Comparable() {
		return reflect.DeepEqual(x, y)
	}
	return x == y
}

func sortedNames(m map[string]any) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	canonicalOrder(names)
	return names
}
