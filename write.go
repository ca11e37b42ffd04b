package wikitext

import (
	"io"
	"strconv"
)

// JSON emission of the element tree, for diagnostics and tooling. Each
// element writes itself as {"t": tag, "c": content}; the write side is
// hand-rolled so the output shape stays under our control and stable.

type writable interface {
	write(io.Writer) error
}

// interface check

var _ = []writable{
	&Text{},
	&Raw{},
	&LineBreak{},
	&HorizontalRule{},
	&Container{},
	&Code{},
	&Footnote{},
	&FootnoteBlock{},
	&TableOfContents{},
	&User{},
	&CheckBox{},
}

// WriteJSON writes the tree as a single JSON document.
func (t *Tree) WriteJSON(w io.Writer) error {
	if err := writeDelim(w, '{'); err != nil {
		return err
	}
	if err := writeField(w, "elements", ',', list(t.Elements)); err != nil {
		return err
	}
	if err := writeField(w, "headings", ',', headingList(t.Headings)); err != nil {
		return err
	}
	if err := writeField(w, "paragraphSafe", '}', boolean(t.ParagraphSafe)); err != nil {
		return err
	}
	return nil
}

func (t *Text) write(w io.Writer) error {
	return withTag(t, str(t.Text)).write(w)
}

func (r *Raw) write(w io.Writer) error {
	return withTag(r, str(r.HTML)).write(w)
}

func (b *LineBreak) write(w io.Writer) error {
	return withTag(b, nil).write(w)
}

func (h *HorizontalRule) write(w io.Writer) error {
	return withTag(h, nil).write(w)
}

func (c *Container) write(w io.Writer) error {
	return withTag(c, object(func(w io.Writer) error {
		if err := writeField(w, "type", ',', str(c.Type)); err != nil {
			return err
		}
		if err := writeField(w, "attributes", ',', kvList(c.Attributes)); err != nil {
			return err
		}
		return writeField(w, "elements", '}', list(c.Elements))
	})).write(w)
}

func (c *Code) write(w io.Writer) error {
	return withTag(c, object(func(w io.Writer) error {
		if err := writeField(w, "language", ',', str(c.Language)); err != nil {
			return err
		}
		return writeField(w, "text", '}', str(c.Text))
	})).write(w)
}

func (f *Footnote) write(w io.Writer) error {
	return withTag(f, list(f.Elements)).write(w)
}

func (f *FootnoteBlock) write(w io.Writer) error {
	return withTag(f, object(func(w io.Writer) error {
		if err := writeField(w, "title", ',', str(f.Title)); err != nil {
			return err
		}
		return writeField(w, "hasTitle", '}', boolean(f.HasTitle))
	})).write(w)
}

func (t *TableOfContents) write(w io.Writer) error {
	return withTag(t, nil).write(w)
}

func (u *User) write(w io.Writer) error {
	return withTag(u, object(func(w io.Writer) error {
		if err := writeField(w, "name", ',', str(u.Name)); err != nil {
			return err
		}
		return writeField(w, "showAvatar", '}', boolean(u.ShowAvatar))
	})).write(w)
}

func (c *CheckBox) write(w io.Writer) error {
	return withTag(c, object(func(w io.Writer) error {
		if err := writeField(w, "checked", ',', boolean(c.Checked)); err != nil {
			return err
		}
		return writeField(w, "attributes", '}', kvList(c.Attributes))
	})).write(w)
}

// helpers

type tagged struct {
	tag     Tag
	content writable
}

func withTag(t Tagged, content writable) writable {
	return tagged{t.Tag(), content}
}

func (t tagged) write(w io.Writer) error {
	if err := writeDelim(w, '{'); err != nil {
		return err
	}
	if t.content == nil {
		if err := writeKey(w, "t"); err != nil {
			return err
		}
		if err := str(t.tag).write(w); err != nil {
			return err
		}
		return writeDelim(w, '}')
	}
	if err := writeField(w, "t", ',', str(t.tag)); err != nil {
		return err
	}
	return writeField(w, "c", '}', t.content)
}

type object func(io.Writer) error

func (o object) write(w io.Writer) error {
	if err := writeDelim(w, '{'); err != nil {
		return err
	}
	return o(w)
}

type str string

func (s str) write(w io.Writer) error {
	_, err := w.Write(strconv.AppendQuote(make([]byte, 0, len(s)+2), string(s)))
	return err
}

type boolean bool

func (b boolean) write(w io.Writer) error {
	if b {
		_, err := io.WriteString(w, "true")
		return err
	}
	_, err := io.WriteString(w, "false")
	return err
}

type num int

func (n num) write(w io.Writer) error {
	_, err := io.WriteString(w, strconv.Itoa(int(n)))
	return err
}

type list []Element

func (l list) write(w io.Writer) error {
	if err := writeDelim(w, '['); err != nil {
		return err
	}
	for i, e := range l {
		if i > 0 {
			if err := writeDelim(w, ','); err != nil {
				return err
			}
		}
		if err := e.write(w); err != nil {
			return err
		}
	}
	return writeDelim(w, ']')
}

type kvList AttributeMap

func (l kvList) write(w io.Writer) error {
	if err := writeDelim(w, '['); err != nil {
		return err
	}
	for i, kv := range l {
		if i > 0 {
			if err := writeDelim(w, ','); err != nil {
				return err
			}
		}
		if err := writeDelim(w, '{'); err != nil {
			return err
		}
		if err := writeField(w, "key", ',', str(kv.Key)); err != nil {
			return err
		}
		if err := writeField(w, "value", '}', str(kv.Value)); err != nil {
			return err
		}
	}
	return writeDelim(w, ']')
}

type headingList []Heading

func (l headingList) write(w io.Writer) error {
	if err := writeDelim(w, '['); err != nil {
		return err
	}
	for i, h := range l {
		if i > 0 {
			if err := writeDelim(w, ','); err != nil {
				return err
			}
		}
		if err := writeDelim(w, '{'); err != nil {
			return err
		}
		if err := writeField(w, "level", ',', num(h.Level)); err != nil {
			return err
		}
		if err := writeField(w, "label", '}', str(h.Label)); err != nil {
			return err
		}
	}
	return writeDelim(w, ']')
}

func writeField[T writable](w io.Writer, name string, d byte, v T) error {
	if err := writeKey(w, name); err != nil {
		return err
	}
	if err := v.write(w); err != nil {
		return err
	}
	return writeDelim(w, d)
}

func writeKey(w io.Writer, name string) error {
	if err := str(name).write(w); err != nil {
		return err
	}
	return writeDelim(w, ':')
}

func writeDelim(w io.Writer, d byte) error {
	_, err := w.Write([]byte{d})
	return err
}
