// render.go converts elements back to event text.
package asstext

import "strings"

// Render is the inverse of Parse: every element is written back exactly as it
// was read. Composed tags are written with their canonical parameter text.
func Render(elements []TextElement) string {
	var sb strings.Builder
	for _, el := range elements {
		renderElement(&sb, el)
	}
	return sb.String()
}

// RenderBlock renders the interior of an override block without braces.
func RenderBlock(elements []BlockElement) string {
	var sb strings.Builder
	renderBlockElements(&sb, elements)
	return sb.String()
}

func renderElement(sb *strings.Builder, el TextElement) {
	switch e := el.(type) {
	case PlainText:
		sb.WriteString(e.Content)
	case SpecialChar:
		sb.WriteString(e.String())
	case OverrideBlock:
		sb.WriteByte('{')
		renderBlockElements(sb, e.Elements)
		sb.WriteByte('}')
	}
}

func renderBlockElements(sb *strings.Builder, elements []BlockElement) {
	for _, be := range elements {
		switch e := be.(type) {
		case OverrideTag:
			sb.WriteByte('\\')
			sb.WriteString(e.Name)
			sb.WriteString(e.Param)
		case Comment:
			sb.WriteString(e.Raw)
		}
	}
}
