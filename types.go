// Package wikitext implements a compiler for a Wikidot-style wikitext
// dialect: a block-rule-driven parser that produces a typed element tree,
// and a stateful single-pass renderer that turns that tree into HTML.
package wikitext

import "strings"

// Maximum nesting depth the parser accepts before failing the whole
// document with [ErrRecursionDepth].
const MaxDepth = 100

// A convenience function to check if an element is of a particular type.
//
// Example:
//
//	if wikitext.Is[*wikitext.Container](elt) {
//	    ...
func Is[P any, S Element](elt S) bool {
	_, ok := any(elt).(*P)
	return ok
}

// Returns a shallow copy of an element. Intended for use in Filter.
func Clone[P Element](elt P) P {
	return elt.clone().(P)
}

// Element is one parsed unit of the wikitext tree.
type Element interface {
	writable
	element()
	clone() Element

	// ParagraphSafe reports whether this element may be nested inside an
	// auto-generated paragraph wrapper without producing broken markup.
	// For containers this is the AND of the container type's own policy
	// and the safety of every child.
	ParagraphSafe() bool
}

// Element tag.
type Tag string

func (t Tag) Tag() Tag       { return t }
func (t Tag) String() string { return string(t) }

// Element with a tag.
type Tagged interface {
	Tag() Tag
}

// Attribute key-value pair.
type KV struct {
	Key   string
	Value string
}

// AttributeMap is an ordered-by-appearance set of block arguments.
// Keys are unique; unknown keys are preserved so renderers may ignore
// them.
type AttributeMap []KV

// Returns a value of the given key or false if the key is not present.
func (m AttributeMap) Get(key string) (string, bool) {
	for _, kv := range m {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Sets a value for the given key, replacing an existing entry in place.
func (m *AttributeMap) Set(key, value string) {
	for i, kv := range *m {
		if kv.Key == key {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, KV{key, value})
}

func (m AttributeMap) clone() AttributeMap {
	if m == nil {
		return nil
	}
	return append(AttributeMap(nil), m...)
}

// ContainerType tags a Container with the construct it represents.
type ContainerType Tag

const (
	Paragraph     ContainerType = "paragraph"
	Deletion      ContainerType = "deletion"
	Insertion     ContainerType = "insertion"
	Bold          ContainerType = "bold"
	Italic        ContainerType = "italic"
	Underline     ContainerType = "underline"
	Strikethrough ContainerType = "strikethrough"
	Superscript   ContainerType = "superscript"
	Subscript     ContainerType = "subscript"
	Monospace     ContainerType = "monospace"
	Mark          ContainerType = "mark"
	SpanType      ContainerType = "span"
	SizeType      ContainerType = "size"
	DivType       ContainerType = "div"
	Blockquote    ContainerType = "blockquote"
	Header        ContainerType = "header"
)

// Reports whether the container type itself permits paragraph nesting;
// a Container is paragraph-safe only if this holds and all of its
// children are safe too.
func (t ContainerType) ParagraphSafe() bool {
	switch t {
	case Paragraph, DivType, Blockquote, Header:
		return false
	default:
		return true
	}
}

// Plain text. Escaped for the output format at render time.
type Text struct {
	Text string
}

const TextTag = Tag("Text")

func (t *Text) Tag() Tag { return TextTag }
func (t *Text) clone() Element {
	c := *t
	return &c
}
func (t *Text) element()            {}
func (t *Text) ParagraphSafe() bool { return true }

// Raw HTML passthrough. Emitted verbatim, never escaped.
type Raw struct {
	HTML string
}

const RawTag = Tag("Raw")

func (r *Raw) Tag() Tag { return RawTag }
func (r *Raw) clone() Element {
	c := *r
	return &c
}
func (r *Raw) element()            {}
func (r *Raw) ParagraphSafe() bool { return true }

var LB = &LineBreak{}

// Hard line break
type LineBreak struct{}

const LineBreakTag = Tag("LineBreak")

func (*LineBreak) Tag() Tag            { return LineBreakTag }
func (*LineBreak) clone() Element      { return LB }
func (*LineBreak) element()            {}
func (*LineBreak) ParagraphSafe() bool { return true }

var HR = &HorizontalRule{}

// Horizontal rule
type HorizontalRule struct{}

const HorizontalRuleTag = Tag("HorizontalRule")

func (*HorizontalRule) Tag() Tag            { return HorizontalRuleTag }
func (*HorizontalRule) clone() Element      { return HR }
func (*HorizontalRule) element()            {}
func (*HorizontalRule) ParagraphSafe() bool { return false }

// Container is the structurally recursive, rule-governed element: a type
// tag, an ordered sequence of children, and the block's head map
// flattened into attributes.
type Container struct {
	Type       ContainerType
	Elements   []Element
	Attributes AttributeMap
}

const ContainerTag = Tag("Container")

// NewContainer builds a container from a resolved type, parsed children
// and head-map attributes.
func NewContainer(typ ContainerType, elements []Element, attributes AttributeMap) *Container {
	return &Container{Type: typ, Elements: elements, Attributes: attributes}
}

func (c *Container) Tag() Tag { return ContainerTag }
func (c *Container) clone() Element {
	c1 := *c
	c1.Attributes = c.Attributes.clone()
	return &c1
}
func (c *Container) element() {}
func (c *Container) ParagraphSafe() bool {
	if !c.Type.ParagraphSafe() {
		return false
	}
	for _, child := range c.Elements {
		if !child.ParagraphSafe() {
			return false
		}
	}
	return true
}
func (c *Container) Apply(transformers ...func(*Container) (*Container, error)) (*Container, error) {
	return apply(c, transformers...)
}

// Code block (literal). The body is never parsed as wikitext.
type Code struct {
	Language string
	Text     string
}

const CodeTag = Tag("Code")

func (c *Code) Tag() Tag { return CodeTag }
func (c *Code) clone() Element {
	c1 := *c
	return &c1
}
func (c *Code) element()            {}
func (c *Code) ParagraphSafe() bool { return false }

// Footnote reference carrying its body content. The body renders into
// the deferred footnote list; the reference itself renders as an inline
// numbered marker.
type Footnote struct {
	Elements []Element
}

const FootnoteTag = Tag("Footnote")

func (f *Footnote) Tag() Tag { return FootnoteTag }
func (f *Footnote) clone() Element {
	c := *f
	return &c
}
func (f *Footnote) element()            {}
func (f *Footnote) ParagraphSafe() bool { return true }

// FootnoteBlock renders the footnote bodies accumulated so far during
// the render pass. HasTitle distinguishes an explicit empty title from
// an absent one, which falls back to a localized default.
type FootnoteBlock struct {
	Title    string
	HasTitle bool
}

const FootnoteBlockTag = Tag("FootnoteBlock")

func (f *FootnoteBlock) Tag() Tag { return FootnoteBlockTag }
func (f *FootnoteBlock) clone() Element {
	c := *f
	return &c
}
func (f *FootnoteBlock) element()            {}
func (f *FootnoteBlock) ParagraphSafe() bool { return false }

// TableOfContents renders the headings gathered at parse time.
type TableOfContents struct{}

const TableOfContentsTag = Tag("TableOfContents")

func (t *TableOfContents) Tag() Tag            { return TableOfContentsTag }
func (t *TableOfContents) clone() Element      { return &TableOfContents{} }
func (t *TableOfContents) element()            {}
func (t *TableOfContents) ParagraphSafe() bool { return false }

// User mention. ShowAvatar is set by the star variant ([[*user]]).
type User struct {
	Name       string
	ShowAvatar bool
}

const UserTag = Tag("User")

func (u *User) Tag() Tag { return UserTag }
func (u *User) clone() Element {
	c := *u
	return &c
}
func (u *User) element()            {}
func (u *User) ParagraphSafe() bool { return true }

// CheckBox element. Checked is set by the star variant ([[*checkbox]]).
type CheckBox struct {
	Checked    bool
	Attributes AttributeMap
}

const CheckBoxTag = Tag("CheckBox")

func (c *CheckBox) Tag() Tag { return CheckBoxTag }
func (c *CheckBox) clone() Element {
	c1 := *c
	c1.Attributes = c.Attributes.clone()
	return &c1
}
func (c *CheckBox) element()            {}
func (c *CheckBox) ParagraphSafe() bool { return true }

// Heading gathered at parse time for the table of contents.
type Heading struct {
	Level int
	Label string
}

// Tree is the product of one parse: the element sequence, the headings
// collected for the table of contents, and the document-level
// paragraph-safety fact.
type Tree struct {
	Elements      []Element
	Headings      []Heading
	ParagraphSafe bool
}

func (t *Tree) Apply(transformers ...func(*Tree) (*Tree, error)) (*Tree, error) {
	return apply(t, transformers...)
}

// PlainText flattens the tree's visible text, dropping markup. Footnote
// bodies are skipped.
func (t *Tree) PlainText() string {
	var sb strings.Builder
	QueryList(t.Elements, func(e Element) WalkResult {
		switch e := e.(type) {
		case *Text:
			sb.WriteString(e.Text)
		case *LineBreak:
			sb.WriteByte('\n')
		case *Footnote:
			return WalkSkip
		}
		return WalkContinue
	})
	return sb.String()
}
