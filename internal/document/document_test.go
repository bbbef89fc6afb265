package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/asstag/pkg/asstext"
)

func extract(text string) (asstext.EventTagSet, []asstext.TextSegment) {
	return asstext.ExtractAll(asstext.Parse(text, false).Elements)
}

func TestFromModel(t *testing.T) {
	doc, err := FromModel(extract(`{\pos(10,20)\an8\b1}Hi{\b0\i1}there\Nnow`))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"pos": "(10,20)", "an": "8"}, doc.EventTags)
	require.Len(t, doc.Segments, 2)
	assert.Equal(t, Segment{Tags: map[string]string{"b": "1"}, Text: "Hi"}, doc.Segments[0])
	assert.Equal(t, Segment{Tags: map[string]string{"b": "0", "i": "1"}, Text: `there\Nnow`}, doc.Segments[1])
}

func TestFromModel_NoTags(t *testing.T) {
	doc, err := FromModel(extract("plain"))
	require.NoError(t, err)
	assert.Nil(t, doc.EventTags)
	assert.Equal(t, []Segment{{Text: "plain"}}, doc.Segments)
}

func TestFromModel_KeepsEscapeBoundary(t *testing.T) {
	doc, err := FromModel(extract(`a\{}Nb`))
	require.NoError(t, err)
	require.Len(t, doc.Segments, 1)
	assert.Equal(t, `a\{}Nb`, doc.Segments[0].Text)

	_, segs, err := doc.Model()
	require.NoError(t, err)
	assert.Equal(t, []asstext.TextElement{asstext.PlainText{Content: `a\`}, asstext.PlainText{Content: "Nb"}}, segs[0].Content)
}

func TestFromModel_InvalidValue(t *testing.T) {
	_, err := FromModel(asstext.EventTagSet{"pos": "nowhere"}, nil)
	assert.ErrorIs(t, err, asstext.ErrInvalidValue)
}

func TestRoundtrip(t *testing.T) {
	texts := []string{
		`{\pos(10,20)\b1}Hi{\b0\i1}there\Nnow`,
		`{\fad(100,200)\clip(m 0 0 l 5 5)}{\t(0,500,\frz90)\1c&H00FF00&}spin`,
		`{\b1}A{\r}B{\rAlt}C`,
	}

	for _, format := range []string{"yaml", "json"} {
		for _, text := range texts {
			t.Run(format+" "+text, func(t *testing.T) {
				events, segs := extract(text)

				doc, err := FromModel(events, segs)
				require.NoError(t, err)
				data, err := doc.Marshal(format)
				require.NoError(t, err)

				loaded, err := Load(data)
				require.NoError(t, err)
				events2, segs2, err := loaded.Model()
				require.NoError(t, err)

				assert.Equal(t, events, events2)
				assert.Equal(t, segs, segs2)
			})
		}
	}
}

func TestLoad_AcceptsNumbers(t *testing.T) {
	doc, err := Load([]byte(`{"event_tags": {"an": 5}, "segments": [{"tags": {"b": 1}, "text": "x"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "5", doc.EventTags["an"])

	events, segs, err := doc.Model()
	require.NoError(t, err)
	assert.Equal(t, asstext.Alignment{Value: 5}, events["an"])
	assert.Equal(t, true, segs[0].BlockTags["b"])
}

func TestLoad_SchemaErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", "   "},
		{"not an object", "- a\n- b\n"},
		{"unknown field", "title: x\n"},
		{"missing text", "segments:\n  - tags: {b: \"1\"}\n"},
		{"bad tag value", "segments:\n  - text: x\n    tags: {b: [1]}\n"},
		{"bad tag name", "event_tags: {\"p os\": \"(1,1)\"}\n"},
		{"malformed yaml", "segments: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.input))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestModel_Errors(t *testing.T) {
	doc := &Document{EventTags: map[string]string{"nope": "1"}}
	_, _, err := doc.Model()
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.ErrorIs(t, err, asstext.ErrUnknownTag)

	doc = &Document{Segments: []Segment{{Tags: map[string]string{"fs": "big"}, Text: "x"}}}
	_, _, err = doc.Model()
	assert.ErrorIs(t, err, asstext.ErrInvalidParameter)

	doc = &Document{Segments: []Segment{{Text: `{\b1}x`}}}
	_, _, err = doc.Model()
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestMarshal_UnknownFormat(t *testing.T) {
	_, err := (&Document{}).Marshal("xml")
	assert.Error(t, err)
}
