package extract

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/asstag/internal/config"
	"github.com/open-cli-collective/asstag/internal/document"
)

func TestRunExtract_YAML(t *testing.T) {
	var out bytes.Buffer
	opts := &extractOptions{out: &out, in: strings.NewReader("")}

	err := runExtract([]string{`{\pos(10,20)\b1}Hello{\b0} world`}, opts, &config.Config{})
	require.NoError(t, err)

	doc, err := document.Load(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"pos": "(10,20)"}, doc.EventTags)
	require.Len(t, doc.Segments, 2)
	assert.Equal(t, document.Segment{Tags: map[string]string{"b": "1"}, Text: "Hello"}, doc.Segments[0])
	assert.Equal(t, document.Segment{Tags: map[string]string{"b": "0"}, Text: " world"}, doc.Segments[1])
}

func TestRunExtract_JSON(t *testing.T) {
	var out bytes.Buffer
	opts := &extractOptions{out: &out, in: strings.NewReader("{\\an8}Top\n")}

	require.NoError(t, runExtract(nil, opts, &config.Config{OutputFormat: "json"}))

	var doc document.Document
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, map[string]string{"an": "8"}, doc.EventTags)
	require.Len(t, doc.Segments, 1)
	assert.Equal(t, "Top", doc.Segments[0].Text)
}

func TestRunExtract_Strict(t *testing.T) {
	var out bytes.Buffer
	opts := &extractOptions{out: &out, in: strings.NewReader("")}

	err := runExtract([]string{`{\nope}x`}, opts, &config.Config{Strict: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `\nope`)
	assert.Empty(t, out.String())
}

func TestRunExtract_CommentsIgnoredWhenLenient(t *testing.T) {
	var out bytes.Buffer
	opts := &extractOptions{out: &out, in: strings.NewReader("")}

	require.NoError(t, runExtract([]string{`{\nope\i1}x`}, opts, &config.Config{}))
	assert.Contains(t, out.String(), "i: \"1\"")
	assert.NotContains(t, out.String(), "nope")
}
