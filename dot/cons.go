// Package dot provides terse constructors for wikitext element trees,
// intended to be dot-imported in tests and filters.
package dot

import (
	"strconv"

	"github.com/growler/go-wikitext"
)

var (
	Break = wikitext.LB
	Rule  = wikitext.HR
)

func Elements(e ...wikitext.Element) []wikitext.Element {
	return e
}

// Plain text
func Text(s string) wikitext.Element {
	return &wikitext.Text{Text: s}
}

// Raw HTML passthrough
func Raw(s string) wikitext.Element {
	return &wikitext.Raw{HTML: s}
}

// Attrs builds an attribute map from key-value pairs.
func Attrs(pairs ...string) wikitext.AttributeMap {
	var m wikitext.AttributeMap
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

func container(typ wikitext.ContainerType, e []wikitext.Element) *wikitext.Container {
	return wikitext.NewContainer(typ, e, nil)
}

// WithAttrs returns the container with its attributes replaced.
func WithAttrs(c *wikitext.Container, m wikitext.AttributeMap) *wikitext.Container {
	c.Attributes = m
	return c
}

func Para(e ...wikitext.Element) *wikitext.Container { return container(wikitext.Paragraph, e) }

func Del(e ...wikitext.Element) *wikitext.Container { return container(wikitext.Deletion, e) }

func Ins(e ...wikitext.Element) *wikitext.Container { return container(wikitext.Insertion, e) }

func Bold(e ...wikitext.Element) *wikitext.Container { return container(wikitext.Bold, e) }

func Italic(e ...wikitext.Element) *wikitext.Container { return container(wikitext.Italic, e) }

func Underline(e ...wikitext.Element) *wikitext.Container { return container(wikitext.Underline, e) }

func Strike(e ...wikitext.Element) *wikitext.Container {
	return container(wikitext.Strikethrough, e)
}

func Sup(e ...wikitext.Element) *wikitext.Container { return container(wikitext.Superscript, e) }

func Sub(e ...wikitext.Element) *wikitext.Container { return container(wikitext.Subscript, e) }

func Mono(e ...wikitext.Element) *wikitext.Container { return container(wikitext.Monospace, e) }

func Mark(e ...wikitext.Element) *wikitext.Container { return container(wikitext.Mark, e) }

func Span(e ...wikitext.Element) *wikitext.Container { return container(wikitext.SpanType, e) }

func Div(e ...wikitext.Element) *wikitext.Container { return container(wikitext.DivType, e) }

func Quote(e ...wikitext.Element) *wikitext.Container { return container(wikitext.Blockquote, e) }

// Heading of the given level, as produced by a "+ label" line.
func Heading(level int, label string) *wikitext.Container {
	c := container(wikitext.Header, Elements(Text(label)))
	c.Attributes = Attrs("level", strconv.Itoa(level))
	return c
}

// Footnote reference with the given body.
func Note(e ...wikitext.Element) *wikitext.Footnote {
	return &wikitext.Footnote{Elements: e}
}

// Footnote list block with the default localized title.
func NoteList() *wikitext.FootnoteBlock {
	return &wikitext.FootnoteBlock{}
}

// Footnote list block with an explicit title.
func NoteListTitled(title string) *wikitext.FootnoteBlock {
	return &wikitext.FootnoteBlock{Title: title, HasTitle: true}
}

func TOC() *wikitext.TableOfContents {
	return &wikitext.TableOfContents{}
}

func User(name string) *wikitext.User {
	return &wikitext.User{Name: name}
}

func UserAvatar(name string) *wikitext.User {
	return &wikitext.User{Name: name, ShowAvatar: true}
}

func Check(checked bool) *wikitext.CheckBox {
	return &wikitext.CheckBox{Checked: checked}
}
