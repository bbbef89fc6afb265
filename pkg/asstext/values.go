// values.go defines the typed values produced by tag decoders.
package asstext

import (
	"fmt"
	"strconv"
)

// All value types are comparable so inline state snapshots can be compared with ==.

// Position is the value of \pos(x,y) and \org(x,y).
type Position struct {
	X, Y float64
}

// Move is the value of \move(x1,y1,x2,y2[,t1,t2]).
type Move struct {
	X1, Y1, X2, Y2 float64
	T1, T2         int
	Timed          bool // true when t1,t2 were given
}

// RectClip is a rectangular \clip or \iclip.
type RectClip struct {
	X1, Y1, X2, Y2 int
}

// VectorClip is a drawing-command \clip or \iclip.
type VectorClip struct {
	Scale   int // 1 when omitted
	Drawing string
}

// Fade is the value of \fad(in,out).
type Fade struct {
	In, Out int
}

// FadeComplex is the value of \fade(a1,a2,a3,t1,t2,t3,t4).
type FadeComplex struct {
	A1, A2, A3     int
	T1, T2, T3, T4 int
}

// Alignment is the value of \an (numpad 1-9) or the legacy \a.
type Alignment struct {
	Value  int
	Legacy bool
}

// Numpad returns the alignment in numpad layout, translating legacy values.
func (a Alignment) Numpad() int {
	if !a.Legacy {
		return a.Value
	}
	// legacy: 1-3 bottom, 5-7 top, 9-11 middle
	switch {
	case a.Value >= 9:
		return a.Value - 5
	case a.Value >= 5:
		return a.Value + 2
	default:
		return a.Value
	}
}

// WrapStyle is the value of \q (0-3).
type WrapStyle int

// Color is a BGR color as written in tags (&HBBGGRR&).
type Color struct {
	BGR uint32
}

// Red returns the red channel.
func (c Color) Red() uint8 { return uint8(c.BGR) }

// Green returns the green channel.
func (c Color) Green() uint8 { return uint8(c.BGR >> 8) }

// Blue returns the blue channel.
func (c Color) Blue() uint8 { return uint8(c.BGR >> 16) }

// Hex returns the color as an RGB hex string, e.g. "#FF0000".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.Red(), c.Green(), c.Blue())
}

// Alpha is a transparency value: 0 is opaque, 255 fully transparent.
type Alpha uint8

// FontWeight is an explicit \b weight (100-900).
type FontWeight int

// Transform is the value of \t([t1,t2,][accel,]tags).
type Transform struct {
	T1, T2   int
	Timed    bool
	Accel    float64
	HasAccel bool
	Tags     string // nested tag list, e.g. `\fs40\c&H0000FF&`
}

// Modifiers tokenizes the nested tag list.
func (t Transform) Modifiers() []BlockElement {
	return TokenizeBlock(t.Tags, 0)
}

// StyleReset is the value of \r or \r<style>. An empty Style resets to the event's style.
type StyleReset struct {
	Style string
}

// StyleDefault is the value of a bare inline tag such as \b or \fs, which
// reverts the property to the current style's value.
type StyleDefault struct{}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
