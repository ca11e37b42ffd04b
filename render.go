package wikitext

import (
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Escaping is mandatory and unconditional for user-supplied text and
// attribute values; only Raw elements bypass it. Attributes in the
// output always use double quotes, so single quotes need no escaping.
var escapeHTML = strings.NewReplacer(
	"&", "&amp;", `"`, "&quot;", "<", "&lt;", ">", "&gt;",
).Replace

// Options configures one render pass.
type Options struct {
	// Locale for message lookup.
	Locale language.Tag
	// Messages is the host-provided localization lookup; nil falls back
	// to the compiled-in defaults.
	Messages MessageFunc
	// Logger receives debug events; nil discards them.
	Logger *slog.Logger
}

// Output is the product of one render pass: the HTML string plus the
// deferred-content artifacts, consumable by diagnostics and tests.
type Output struct {
	HTML string
	// Footnotes holds the rendered footnote bodies in index order,
	// whether or not a footnote list block emitted them.
	Footnotes []string
}

// Render walks the element tree once, front to back, producing HTML.
// The tree is borrowed read-only; all mutable state lives in a fresh
// [Context] owned by this call, so independent documents may be
// rendered concurrently.
func Render(tree *Tree, opts Options) Output {
	ctx := newContext(tree, opts)
	renderElements(ctx, tree.Elements)
	return Output{HTML: ctx.buf.String(), Footnotes: ctx.Footnotes()}
}

func renderElements(ctx *Context, elements []Element) {
	for _, e := range elements {
		renderElement(ctx, e)
	}
}

func renderElement(ctx *Context, element Element) {
	switch e := element.(type) {
	case *Text:
		ctx.buf.WriteString(escapeHTML(e.Text))
	case *Raw:
		ctx.buf.WriteString(e.HTML)
	case *LineBreak:
		ctx.buf.WriteString("<br />\n")
	case *HorizontalRule:
		ctx.buf.WriteString("<hr />\n")
	case *Container:
		renderContainer(ctx, e)
	case *Code:
		renderCode(ctx, e)
	case *Footnote:
		renderFootnote(ctx, e)
	case *FootnoteBlock:
		renderFootnoteBlock(ctx, e)
	case *TableOfContents:
		renderTableOfContents(ctx)
	case *User:
		renderUser(ctx, e)
	case *CheckBox:
		renderCheckBox(ctx, e)
	}
}

// HTML tag per container type. Header and Size are handled specially.
var containerTags = map[ContainerType]string{
	Paragraph:     "p",
	Deletion:      "del",
	Insertion:     "ins",
	Bold:          "strong",
	Italic:        "em",
	Underline:     "u",
	Strikethrough: "s",
	Superscript:   "sup",
	Subscript:     "sub",
	Monospace:     "tt",
	Mark:          "mark",
	SpanType:      "span",
	DivType:       "div",
	Blockquote:    "blockquote",
}

// Attribute keys emitted as-is; anything else from a head map becomes
// an inert data- attribute so unknown keys survive into the output
// without gaining behavior.
var passthroughAttributes = map[string]bool{
	"class": true,
	"id":    true,
	"style": true,
	"title": true,
	"lang":  true,
	"dir":   true,
}

func renderContainer(ctx *Context, c *Container) {
	tag, block := containerTag(c)
	var attrs attrBuilder
	switch c.Type {
	case SizeType:
		if size, ok := c.Attributes.Get("size"); ok {
			attrs.set("style", "font-size: "+size+";")
		}
	default:
		for _, kv := range c.Attributes {
			if c.Type == Header && kv.Key == "level" {
				continue
			}
			if passthroughAttributes[kv.Key] {
				attrs.set(kv.Key, kv.Value)
			} else {
				attrs.set("data-"+kv.Key, kv.Value)
			}
		}
	}
	fmt.Fprintf(ctx.buf, "<%s%s>", tag, &attrs)
	renderElements(ctx, c.Elements)
	fmt.Fprintf(ctx.buf, "</%s>", tag)
	if block {
		ctx.buf.WriteByte('\n')
	}
}

func containerTag(c *Container) (tag string, block bool) {
	if c.Type == Header {
		level := 1
		if v, ok := c.Attributes.Get("level"); ok {
			if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 6 {
				level = n
			}
		}
		return "h" + strconv.Itoa(level), true
	}
	if c.Type == SizeType {
		return "span", false
	}
	tag, ok := containerTags[c.Type]
	if !ok {
		// unknown container types degrade to a neutral wrapper rather
		// than failing the render
		return "span", false
	}
	switch c.Type {
	case Paragraph, DivType, Blockquote:
		return tag, true
	}
	return tag, false
}

func renderCode(ctx *Context, c *Code) {
	var attrs attrBuilder
	if c.Language != "" {
		attrs.set("class", "language-"+c.Language)
	}
	fmt.Fprintf(ctx.buf, "<pre><code%s>", &attrs)
	ctx.buf.WriteString(escapeHTML(c.Text))
	if !strings.HasSuffix(c.Text, "\n") {
		ctx.buf.WriteByte('\n')
	}
	ctx.buf.WriteString("</code></pre>\n")
}

// renderFootnote emits the inline numbered marker for one footnote
// reference and stores its rendered body in the context list. Indices
// are handed out in encounter order and never reused; the slot is
// reserved before the body renders, so references nested inside the
// body keep body positions aligned with their indices.
func renderFootnote(ctx *Context, f *Footnote) {
	index := ctx.nextFootnoteIndex()
	contents := ctx.capture(func() {
		renderElements(ctx, f.Elements)
	})
	ctx.fillFootnote(index, contents)
	ctx.debug("rendering footnote reference", "index", index)

	refID := fmt.Sprintf("wt-footnote-ref-%d", index)
	contentID := fmt.Sprintf("wt-footnote-%d", index)
	label := fmt.Sprintf("%s %d.", ctx.message(MessageFootnote), index)

	var marker attrBuilder
	marker.set("class", "wt-footnote-ref-marker")
	marker.set("type", "button")
	marker.set("role", "link")
	marker.set("aria-label", label)
	marker.set("id", refID)
	marker.set("data-footnote-content-id", contentID)

	fmt.Fprintf(ctx.buf, `<span class="wt-footnote-ref"><button%s>%d</button>`, &marker, index)

	// tooltip shown on hover; hidden from screen readers, which reach
	// the footnote through the list block instead
	fmt.Fprintf(ctx.buf, `<span class="wt-footnote-ref-tooltip" aria-hidden="true">`)
	fmt.Fprintf(ctx.buf, `<span class="wt-footnote-ref-tooltip-label">%s</span>`, escapeHTML(label))
	fmt.Fprintf(ctx.buf, `<span class="wt-footnote-ref-contents">%s</span></span></span>`, contents)
}

// renderFootnoteBlock emits the footnote list accumulated up to this
// point in the walk. If the document never references a footnote the
// block renders nothing; if the document has references but no block,
// the gathered bodies are silently dropped.
func renderFootnoteBlock(ctx *Context, b *FootnoteBlock) {
	footnotes := ctx.footnotes
	ctx.debug("rendering footnote block", "count", len(footnotes))
	if len(footnotes) == 0 {
		return
	}
	title := b.Title
	if !b.HasTitle {
		title = ctx.message(MessageFootnoteBlockTitle)
	}

	ctx.buf.WriteString(`<div class="wt-footnotes-list">`)
	fmt.Fprintf(ctx.buf, `<div class="wt-title">%s</div><ol>`, escapeHTML(title))
	for i, contents := range footnotes {
		index := i + 1
		fmt.Fprintf(ctx.buf, `<li class="wt-footnote" id="wt-footnote-%d">`, index)
		fmt.Fprintf(ctx.buf, `<a href="#wt-footnote-ref-%d">%d<span class="wt-footnote-sep">.</span></a>`, index, index)
		fmt.Fprintf(ctx.buf, `<div class="wt-footnote-contents">%s</div></li>`, contents)
	}
	ctx.buf.WriteString("</ol></div>\n")
}

func renderTableOfContents(ctx *Context) {
	if len(ctx.headings) == 0 {
		return
	}
	ctx.buf.WriteString(`<div class="wt-toc">`)
	fmt.Fprintf(ctx.buf, `<div class="wt-title">%s</div><ol>`, escapeHTML(ctx.message(MessageTableOfContents)))
	for _, h := range ctx.headings {
		fmt.Fprintf(ctx.buf, `<li class="wt-toc-item" data-level="%d">%s</li>`, h.Level, escapeHTML(h.Label))
	}
	ctx.buf.WriteString("</ol></div>\n")
}

func renderUser(ctx *Context, u *User) {
	var attrs attrBuilder
	attrs.set("class", "wt-user")
	attrs.set("data-user", u.Name)
	fmt.Fprintf(ctx.buf, "<span%s>", &attrs)
	if u.ShowAvatar {
		var img attrBuilder
		img.set("class", "wt-user-avatar")
		img.set("src", "/user--avatar/"+url.PathEscape(u.Name))
		img.set("alt", u.Name)
		fmt.Fprintf(ctx.buf, "<img%s />", &img)
	}
	ctx.buf.WriteString(escapeHTML(u.Name))
	ctx.buf.WriteString("</span>")
}

func renderCheckBox(ctx *Context, c *CheckBox) {
	var attrs attrBuilder
	attrs.set("type", "checkbox")
	attrs.set("disabled", "disabled")
	if c.Checked {
		attrs.set("checked", "checked")
	}
	for _, kv := range c.Attributes {
		if passthroughAttributes[kv.Key] {
			attrs.set(kv.Key, kv.Value)
		} else {
			attrs.set("data-"+kv.Key, kv.Value)
		}
	}
	fmt.Fprintf(ctx.buf, "<input%s />", &attrs)
}

type attrBuilder struct{ strings.Builder }

func (a *attrBuilder) set(k, v string) { fmt.Fprintf(a, ` %s="%s"`, k, escapeHTML(v)) }
