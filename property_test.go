//go:build property

package wikitext_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	wikitext "github.com/growler/go-wikitext"
	. "github.com/growler/go-wikitext/dot"
)

// TestParserProperties validates parse invariants over generated input
func TestParserProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1802)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// Property: a parse either yields a tree or the recursion-depth error,
	// never both and never a panic
	properties.Property("parse is total", prop.ForAll(
		func(src string) bool {
			tree, _, err := wikitext.Parse(src)
			if err != nil {
				return tree == nil && errors.Is(err, wikitext.ErrRecursionDepth)
			}
			return tree != nil
		},
		gen.AnyString(),
	))

	// Property: the block name and its aliases produce identical trees
	properties.Property("aliases are transparent", prop.ForAll(
		func(body string, pick int) bool {
			pairs := [][2]string{
				{"del", "deletion"},
				{"b", "strong"},
				{"i", "em"},
				{"quote", "blockquote"},
			}
			pair := pairs[pick%len(pairs)]
			canonical, _, err1 := wikitext.Parse("[[" + pair[0] + "]]" + body + "[[/" + pair[0] + "]]")
			aliased, _, err2 := wikitext.Parse("[[" + pair[1] + "]]" + body + "[[/" + pair[1] + "]]")
			if err1 != nil || err2 != nil {
				return err1 == err2
			}
			return canonical.PlainText() == aliased.PlainText() &&
				canonical.ParagraphSafe == aliased.ParagraphSafe
		},
		gen.AlphaString(),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}

// TestRenderProperties validates render invariants over generated trees
func TestRenderProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1802)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// Property: plain text never leaks markup-significant bytes into the
	// output
	properties.Property("text is always escaped", prop.ForAll(
		func(s string) bool {
			out := wikitext.Render(&wikitext.Tree{Elements: Elements(Text(s))}, wikitext.Options{})
			return !strings.ContainsAny(out.HTML, `<>"`)
		},
		gen.AnyString(),
	))

	// Property: n footnote references produce indices 1..n in order and n
	// gathered bodies
	properties.Property("footnote indices are monotonic", prop.ForAll(
		func(n int) bool {
			var elements []wikitext.Element
			for i := 0; i < n; i++ {
				elements = append(elements, Note(Text(fmt.Sprintf("body %d", i))))
			}
			elements = append(elements, NoteList())
			out := wikitext.Render(&wikitext.Tree{Elements: elements}, wikitext.Options{})
			if len(out.Footnotes) != n {
				return false
			}
			last := -1
			for i := 1; i <= n; i++ {
				at := strings.Index(out.HTML, fmt.Sprintf(`id="wt-footnote-ref-%d"`, i))
				if at < 0 || at < last {
					return false
				}
				last = at
			}
			return true
		},
		gen.IntRange(0, 30),
	))

	// Property: a container of paragraph-safe children is paragraph-safe
	// and a single unsafe child poisons it
	properties.Property("paragraph safety composes", prop.ForAll(
		func(texts []string, poison bool) bool {
			var children []wikitext.Element
			for _, s := range texts {
				children = append(children, Text(s))
			}
			if poison {
				children = append(children, Div())
			}
			c := Del(children...)
			return c.ParagraphSafe() == !poison
		},
		gen.SliceOf(gen.AlphaString()),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
