// elements.go defines the element types of a parsed event text.
package asstext

// TextElement is a top-level element of an event text.
// It is one of PlainText, SpecialChar or OverrideBlock.
type TextElement interface {
	textElement()
}

// BlockElement is an element inside an override block: OverrideTag or Comment.
type BlockElement interface {
	blockElement()
}

// PlainText is text outside override blocks.
type PlainText struct {
	Content string
}

// SpecialKind identifies an escape sequence.
type SpecialKind byte

const (
	HardNewline SpecialKind = 'N' // \N
	SoftNewline SpecialKind = 'n' // \n
	HardSpace   SpecialKind = 'h' // \h
)

// SpecialChar is one of the escapes \N, \n or \h.
type SpecialChar struct {
	Kind SpecialKind
}

// String returns the escape as written in source.
func (c SpecialChar) String() string {
	return `\` + string(rune(c.Kind))
}

// OverrideBlock is a {...} block.
type OverrideBlock struct {
	Elements []BlockElement
	Pos      int // byte offset of '{' in the event text
}

// Span is a half-open byte range in the event text.
type Span struct {
	Start, End int
}

// OverrideTag is a recognized tag. Param is the parameter text exactly as it
// appeared (including parentheses for function tags); Value is its decoded form.
type OverrideTag struct {
	Name  string
	Param string
	Value any
	Span  Span // zero for composed tags
}

// Comment is block content that is not a recognized tag, kept byte-for-byte.
type Comment struct {
	Raw string
	Pos int // byte offset in the event text
}

func (PlainText) textElement()     {}
func (SpecialChar) textElement()   {}
func (OverrideBlock) textElement() {}

func (OverrideTag) blockElement() {}
func (Comment) blockElement()     {}

// Tags returns the recognized tags of the block in order.
func (b OverrideBlock) Tags() []OverrideTag {
	var tags []OverrideTag
	for _, el := range b.Elements {
		if t, ok := el.(OverrideTag); ok {
			tags = append(tags, t)
		}
	}
	return tags
}

// Definition returns the registry entry for the tag.
func (t OverrideTag) Definition() (TagDefinition, bool) {
	return Lookup(t.Name)
}

func isSpecialKind(b byte) bool {
	return b == 'N' || b == 'n' || b == 'h'
}
