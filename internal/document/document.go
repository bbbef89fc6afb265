// Package document is the serializable form of a parsed event: resolved
// event tags plus formatted text segments, each tag written as its canonical
// parameter text.
package document

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/asstag/pkg/asstext"
)

//go:embed schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// ErrInvalidDocument is returned when a document does not match the schema
// or contains tags that cannot be decoded.
var ErrInvalidDocument = errors.New("invalid document")

// Document is one event in semantic form.
type Document struct {
	EventTags map[string]string `yaml:"event_tags,omitempty" json:"event_tags,omitempty"`
	Segments  []Segment         `yaml:"segments" json:"segments"`
}

// Segment is a run of text with the inline tags active at its start.
type Segment struct {
	Tags map[string]string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Text string            `yaml:"text" json:"text"`
}

// FromModel converts the output of asstext.ExtractAll.
func FromModel(events asstext.EventTagSet, segments []asstext.TextSegment) (*Document, error) {
	doc := &Document{Segments: make([]Segment, 0, len(segments))}

	tags, err := formatTags(events, events.Names())
	if err != nil {
		return nil, err
	}
	doc.EventTags = tags

	for _, seg := range segments {
		tags, err := formatTags(seg.BlockTags, seg.TagNames())
		if err != nil {
			return nil, err
		}
		doc.Segments = append(doc.Segments, Segment{Tags: tags, Text: contentText(seg.Content)})
	}
	return doc, nil
}

// Model converts the document back to event tags and segments.
func (d *Document) Model() (asstext.EventTagSet, []asstext.TextSegment, error) {
	events, err := decodeTags(d.EventTags)
	if err != nil {
		return nil, nil, err
	}

	segments := make([]asstext.TextSegment, 0, len(d.Segments))
	for i, s := range d.Segments {
		tags, err := decodeTags(s.Tags)
		if err != nil {
			return nil, nil, fmt.Errorf("segment %d: %w", i, err)
		}
		content, err := parseContent(s.Text)
		if err != nil {
			return nil, nil, fmt.Errorf("segment %d: %w", i, err)
		}
		segments = append(segments, asstext.TextSegment{BlockTags: tags, Content: content})
	}
	return asstext.EventTagSet(events), segments, nil
}

// Load reads a YAML or JSON document and validates it against the schema.
func Load(data []byte) (*Document, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidDocument)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := validate(raw); err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}

func validate(raw any) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
	}
	return nil
}

// Marshal encodes the document as "yaml" or "json".
func (d *Document) Marshal(format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		return yaml.Marshal(d)
	case "json":
		return json.MarshalIndent(d, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported document format: %s", format)
	}
}

func formatTags(values map[string]any, names []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(values))
	for _, name := range names {
		param, err := asstext.FormatTag(name, values[name])
		if err != nil {
			return nil, err
		}
		out[name] = param
	}
	return out, nil
}

func decodeTags(params map[string]string) (map[string]any, error) {
	out := make(map[string]any, len(params))
	for name, param := range params {
		v, err := asstext.DecodeTag(name, param)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		out[name] = v
	}
	return out, nil
}

// contentText renders segment content. Composing without tags keeps adjacent
// plain texts apart with an empty block, so parseContent restores them as-is.
func contentText(content []asstext.TextElement) string {
	return asstext.Render(asstext.ComposeAll(nil, []asstext.TextSegment{{Content: content}}))
}

// parseContent reads segment text. Empty blocks only separate text; any other
// block is rejected because tags belong in the tags map.
func parseContent(text string) ([]asstext.TextElement, error) {
	var content []asstext.TextElement
	for _, el := range asstext.Parse(text, false).Elements {
		block, ok := el.(asstext.OverrideBlock)
		if !ok {
			content = append(content, el)
			continue
		}
		if len(block.Elements) > 0 {
			return nil, fmt.Errorf("%w: override block at byte %d in segment text", ErrInvalidDocument, block.Pos)
		}
	}
	return content, nil
}
