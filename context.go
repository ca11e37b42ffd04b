package wikitext

import (
	"log/slog"
	"strings"

	"golang.org/x/text/language"
)

// Context is the mutable state of one render pass: the output buffer,
// the footnote counter and body list, the headings gathered at parse
// time, and the locale handle. A Context is created per render call and
// never shared between concurrent renders.
type Context struct {
	buf           *strings.Builder
	footnoteIndex int
	footnotes     []string
	headings      []Heading
	locale        language.Tag
	messages      MessageFunc
	log           *slog.Logger
}

func newContext(tree *Tree, opts Options) *Context {
	return &Context{
		buf:      &strings.Builder{},
		headings: tree.Headings,
		locale:   opts.Locale,
		messages: opts.Messages,
		log:      opts.Logger,
	}
}

// nextFootnoteIndex returns the next sequential footnote index: 1-based,
// strictly increasing across the render pass, never reused. The body
// slot for the index is reserved immediately, so a reference nested
// inside another footnote's body still lands at its own position.
func (c *Context) nextFootnoteIndex() int {
	c.footnoteIndex++
	c.footnotes = append(c.footnotes, "")
	return c.footnoteIndex
}

// fillFootnote stores a rendered body at its reserved slot; the slot
// position plus one is the body's index.
func (c *Context) fillFootnote(index int, contents string) {
	c.footnotes[index-1] = contents
}

// Footnotes returns the footnote bodies accumulated so far, in index
// order.
func (c *Context) Footnotes() []string {
	return append([]string(nil), c.footnotes...)
}

// Locale returns the active locale for message lookup.
func (c *Context) Locale() language.Tag {
	return c.locale
}

// message resolves a localized string, falling back to the compiled-in
// default when the host catalog is absent or misses the key.
func (c *Context) message(key string) string {
	if c.messages != nil {
		if s, ok := c.messages(c.locale, key); ok {
			return s
		}
		c.debug("message lookup miss", "key", key, "locale", c.locale.String())
	}
	return DefaultMessage(key)
}

func (c *Context) debug(msg string, args ...any) {
	if c.log != nil {
		c.log.Debug(msg, args...)
	}
}

// capture renders fn into a detached buffer and returns its output,
// leaving the main buffer untouched. Counter state is shared, so
// footnote indices stay monotonic across captures.
func (c *Context) capture(fn func()) string {
	saved := c.buf
	c.buf = &strings.Builder{}
	fn()
	out := c.buf.String()
	c.buf = saved
	return out
}
