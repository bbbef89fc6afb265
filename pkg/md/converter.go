// Package md converts between Markdown and formatted event text segments.
package md

import (
	"maps"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/open-cli-collective/asstag/pkg/asstext"
)

// mdParser is a pre-configured goldmark instance with the strikethrough extension.
var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough),
)

// FromMarkdown converts Markdown to text segments ready for asstext.ComposeAll.
// Emphasis maps to \i, strong emphasis and headings to \b, strikethrough to
// \s. Paragraphs and hard line breaks become \N; soft line breaks become a
// space. Other formatting is dropped and only its text is kept.
func FromMarkdown(src []byte) ([]asstext.TextSegment, error) {
	if len(src) == 0 {
		return nil, nil
	}

	doc := mdParser.Parser().Parse(text.NewReader(src))
	b := &segmentBuilder{state: map[string]any{}, depth: map[string]int{}}

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			if entering {
				b.startBlock()
			}
		case *ast.Heading:
			if entering {
				b.startBlock()
			}
			b.toggle("b", entering)
		case *ast.Emphasis:
			if node.Level >= 2 {
				b.toggle("b", entering)
			} else {
				b.toggle("i", entering)
			}
		case *east.Strikethrough:
			b.toggle("s", entering)
		case *ast.Text:
			if !entering {
				return ast.WalkContinue, nil
			}
			b.text(string(node.Segment.Value(src)))
			switch {
			case node.HardLineBreak():
				b.special(asstext.HardNewline)
			case node.SoftLineBreak():
				b.text(" ")
			}
		case *ast.String:
			if entering {
				b.text(string(node.Value))
			}
		case *ast.RawHTML, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	return b.segments, nil
}

// segmentBuilder accumulates segments while walking the Markdown tree.
type segmentBuilder struct {
	segments []asstext.TextSegment
	state    map[string]any
	depth    map[string]int
	started  bool // a block has produced text
	pending  bool // a block break is owed before the next text
}

// toggle tracks nesting of one formatting tag; the tag turns on with the
// first level and off when the last level closes.
func (b *segmentBuilder) toggle(tag string, entering bool) {
	if entering {
		b.depth[tag]++
		if b.depth[tag] == 1 {
			b.set(tag, true)
		}
		return
	}
	b.depth[tag]--
	if b.depth[tag] == 0 {
		b.set(tag, false)
	}
}

func (b *segmentBuilder) set(tag string, v bool) {
	next := maps.Clone(b.state)
	next[tag] = v
	b.state = next
}

func (b *segmentBuilder) startBlock() {
	if b.started {
		b.pending = true
	}
}

func (b *segmentBuilder) text(s string) {
	if s == "" {
		return
	}
	b.flushBreak()
	seg := b.current()
	if n := len(seg.Content); n > 0 {
		if last, ok := seg.Content[n-1].(asstext.PlainText); ok {
			seg.Content[n-1] = asstext.PlainText{Content: last.Content + s}
			return
		}
	}
	seg.Content = append(seg.Content, asstext.PlainText{Content: s})
}

func (b *segmentBuilder) special(kind asstext.SpecialKind) {
	b.flushBreak()
	seg := b.current()
	seg.Content = append(seg.Content, asstext.SpecialChar{Kind: kind})
}

func (b *segmentBuilder) flushBreak() {
	b.started = true
	if b.pending {
		b.pending = false
		b.special(asstext.HardNewline)
	}
}

// current returns the segment for the current state, starting a new one when
// the state changed since the last text.
func (b *segmentBuilder) current() *asstext.TextSegment {
	n := len(b.segments)
	if n == 0 || !sameTags(b.segments[n-1].BlockTags, b.state) {
		b.segments = append(b.segments, asstext.TextSegment{BlockTags: b.state})
		n++
	}
	return &b.segments[n-1]
}

func sameTags(a, b map[string]any) bool {
	return maps.EqualFunc(a, b, func(x, y any) bool { return x == y })
}
