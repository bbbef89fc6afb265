package asstext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveEvent(text string) EventTagSet {
	return ResolveEventTags(Parse(text, false).Elements)
}

func TestResolveEventTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  EventTagSet
	}{
		{"pos beats later move", `{\pos(100,100)\move(1,1,2,2)}`,
			EventTagSet{"pos": Position{X: 100, Y: 100}}},
		{"move beats later pos", `{\move(1,1,2,2)\pos(100,100)}`,
			EventTagSet{"move": Move{X1: 1, Y1: 1, X2: 2, Y2: 2}}},
		{"last clip wins", `{\clip(100,100,300,300)\clip(500,500,700,700)}`,
			EventTagSet{"clip": RectClip{500, 500, 700, 700}}},
		{"iclip replaces clip", `{\clip(1,1,2,2)}x{\iclip(3,3,4,4)}`,
			EventTagSet{"iclip": RectClip{3, 3, 4, 4}}},
		{"first fade wins", `{\fad(200,200)\fade(0,0,0,100,200,1000,2000)}`,
			EventTagSet{"fad": Fade{In: 200, Out: 200}}},
		{"first alignment wins", `{\an8\a1}`,
			EventTagSet{"an": Alignment{Value: 8}}},
		{"legacy alignment first", `{\a5}{\an2}`,
			EventTagSet{"a": Alignment{Value: 5, Legacy: true}}},
		{"last wrap style wins", `{\q1\q2}`,
			EventTagSet{"q": WrapStyle(2)}},
		{"first pos across blocks", `{\pos(1,2)}text{\pos(3,4)}`,
			EventTagSet{"pos": Position{X: 1, Y: 2}}},
		{"independent groups", `{\org(5,5)\pos(1,1)\an7\q0}`,
			EventTagSet{
				"org": Position{X: 5, Y: 5},
				"pos": Position{X: 1, Y: 1},
				"an":  Alignment{Value: 7},
				"q":   WrapStyle(0),
			}},
		{"space after alignment", `{\an8 }A`,
			EventTagSet{"an": Alignment{Value: 8}}},
		{"inline tags ignored", `{\b1\fs20}x`, EventTagSet{}},
		{"no tags", "plain", EventTagSet{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveEvent(tt.input))
		})
	}
}

func TestResolveSegments_StateChanges(t *testing.T) {
	segs := ResolveSegments(Parse(`{\b1}A{\b0}B`, false).Elements)
	require.Len(t, segs, 2)

	assert.Equal(t, true, segs[0].BlockTags["b"])
	assert.Equal(t, []TextElement{PlainText{"A"}}, segs[0].Content)
	assert.Equal(t, false, segs[1].BlockTags["b"])
	assert.Equal(t, []TextElement{PlainText{"B"}}, segs[1].Content)
}

func TestResolveSegments_SpaceBetweenTags(t *testing.T) {
	segs := ResolveSegments(Parse(`{\b1 \i1}A`, false).Elements)
	require.Len(t, segs, 1)
	assert.Equal(t, map[string]any{"b": true, "i": true}, segs[0].BlockTags)
}

func TestResolveSegments_EscapeAfterUnclosedBrace(t *testing.T) {
	segs := ResolveSegments(Parse(`a{b\Nc`, false).Elements)
	require.Len(t, segs, 1)
	assert.Equal(t, "a{b\nc", segs[0].DisplayText())
}

func TestResolveSegments_Cumulative(t *testing.T) {
	segs := ResolveSegments(Parse(`A{\i1}B{\fs20}C`, false).Elements)
	require.Len(t, segs, 3)

	assert.Empty(t, segs[0].BlockTags)
	assert.Equal(t, map[string]any{"i": true}, segs[1].BlockTags)
	assert.Equal(t, map[string]any{"i": true, "fs": 20.0}, segs[2].BlockTags)
}

func TestResolveSegments_Coalesces(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"same value again", `{\b1}A{\b1}B`},
		{"event tag only", `{\b1}A{\pos(1,1)}B`},
		{"comment only", `{\b1}A{note}B`},
		{"empty block", `{\b1}A{}B`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := ResolveSegments(Parse(tt.input, false).Elements)
			require.Len(t, segs, 1)
			assert.Equal(t, []TextElement{PlainText{"AB"}}, segs[0].Content)
		})
	}
}

func TestResolveSegments_Reset(t *testing.T) {
	segs := ResolveSegments(Parse(`{\b1\i1}A{\r}B{\rAlt\fs20}C`, false).Elements)
	require.Len(t, segs, 3)

	assert.Equal(t, map[string]any{"b": true, "i": true}, segs[0].BlockTags)
	assert.Equal(t, map[string]any{"r": StyleReset{}}, segs[1].BlockTags)
	assert.Equal(t, map[string]any{"r": StyleReset{Style: "Alt"}, "fs": 20.0}, segs[2].BlockTags)
}

func TestResolveSegments_SnapshotsAreIndependent(t *testing.T) {
	segs := ResolveSegments(Parse(`{\b1}A{\i1}B`, false).Elements)
	require.Len(t, segs, 2)

	segs[1].BlockTags["u"] = true
	assert.NotContains(t, segs[0].BlockTags, "u")
	assert.NotContains(t, segs[0].BlockTags, "i")
}

func TestResolveSegments_SpecialChars(t *testing.T) {
	segs := ResolveSegments(Parse(`A\NB{\b1}C\h`, false).Elements)
	require.Len(t, segs, 2)
	assert.Equal(t, []TextElement{PlainText{"A"}, SpecialChar{HardNewline}, PlainText{"B"}}, segs[0].Content)
	assert.Equal(t, []TextElement{PlainText{"C"}, SpecialChar{HardSpace}}, segs[1].Content)
}

func TestResolveSegments_KeepsEscapeBoundary(t *testing.T) {
	segs := ResolveSegments(Parse(`a\{}Nb`, false).Elements)
	require.Len(t, segs, 1)
	assert.Equal(t, []TextElement{PlainText{`a\`}, PlainText{"Nb"}}, segs[0].Content)
}

func TestResolveSegments_NoText(t *testing.T) {
	assert.Empty(t, ResolveSegments(Parse(`{\b1}`, false).Elements))
}
