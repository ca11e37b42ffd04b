package wikitext

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, src string) (*Tree, []Exception) {
	t.Helper()
	tree, exceptions, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %s", src, err)
	}
	return tree, exceptions
}

func TestParseDeletion(t *testing.T) {
	tree, exceptions := mustParse(t, "[[del]]old[[/del]]")
	if len(exceptions) != 0 {
		t.Errorf("expected no exceptions, got %v", exceptions)
	}
	want := []Element{
		NewContainer(Deletion, []Element{&Text{Text: "old"}}, nil),
	}
	if diff := cmp.Diff(want, tree.Elements); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
	if !tree.ParagraphSafe {
		t.Errorf("expected paragraph-safe tree")
	}
}

func TestAliasTransparency(t *testing.T) {
	var tests = []struct {
		canonical string
		aliases   []string
	}{
		{"del", []string{"deletion"}},
		{"ins", []string{"insertion"}},
		{"b", []string{"bold", "strong"}},
		{"i", []string{"italic", "em"}},
		{"sup", []string{"super", "superscript"}},
		{"tt", []string{"mono", "monospace"}},
		{"quote", []string{"blockquote"}},
	}
	for _, tt := range tests {
		reference, exceptions := mustParse(t, "[["+tt.canonical+"]]x[[/"+tt.canonical+"]]")
		if len(exceptions) != 0 {
			t.Fatalf("%s: unexpected exceptions %v", tt.canonical, exceptions)
		}
		for _, alias := range tt.aliases {
			tree, exceptions := mustParse(t, "[["+alias+"]]x[[/"+alias+"]]")
			if len(exceptions) != 0 {
				t.Errorf("%s: unexpected exceptions %v", alias, exceptions)
			}
			if diff := cmp.Diff(reference.Elements, tree.Elements); diff != "" {
				t.Errorf("alias %s differs from %s (-canonical +alias):\n%s", alias, tt.canonical, diff)
			}
		}
	}
}

func TestCloseTagAcceptsAlias(t *testing.T) {
	tree, exceptions := mustParse(t, "[[del]]x[[/deletion]]")
	if len(exceptions) != 0 {
		t.Fatalf("unexpected exceptions: %v", exceptions)
	}
	want := []Element{
		NewContainer(Deletion, []Element{&Text{Text: "x"}}, nil),
	}
	if diff := cmp.Diff(want, tree.Elements); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestHeadMapOrderAndUnknownKeys(t *testing.T) {
	tree, exceptions := mustParse(t, `[[div class="big" fruit="banana" id="x"]]body[[/div]]`)
	if len(exceptions) != 0 {
		t.Fatalf("unexpected exceptions: %v", exceptions)
	}
	div, ok := tree.Elements[0].(*Container)
	if !ok || div.Type != DivType {
		t.Fatalf("expected div container, got %T", tree.Elements[0])
	}
	want := AttributeMap{{"class", "big"}, {"fruit", "banana"}, {"id", "x"}}
	if diff := cmp.Diff(want, div.Attributes); diff != "" {
		t.Errorf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestMalformedArgumentsAreLenient(t *testing.T) {
	tree, exceptions := mustParse(t, `[[div class="a" bogus id=x title="t"]]body[[/div]]`)
	div := tree.Elements[0].(*Container)
	// bogus (no value) and id (unquoted) each record an exception, but
	// the remaining arguments and the body still parse
	var kinds []ExceptionKind
	for _, exc := range exceptions {
		kinds = append(kinds, exc.Kind)
	}
	if diff := cmp.Diff([]ExceptionKind{ExceptionMalformedArgument, ExceptionMalformedArgument}, kinds); diff != "" {
		t.Errorf("exception kinds mismatch (-want +got):\n%s", diff)
	}
	want := AttributeMap{{"class", "a"}, {"id", "x"}, {"title", "t"}}
	if diff := cmp.Diff(want, div.Attributes); diff != "" {
		t.Errorf("attributes mismatch (-want +got):\n%s", diff)
	}
	if len(div.Elements) != 1 {
		t.Errorf("body lost: %v", div.Elements)
	}
}

func TestDuplicateArgumentKeepsFirst(t *testing.T) {
	tree, exceptions := mustParse(t, `[[div class="a" class="b"]]x[[/div]]`)
	if len(exceptions) != 1 || exceptions[0].Kind != ExceptionDuplicateArgument {
		t.Fatalf("expected one duplicate-argument exception, got %v", exceptions)
	}
	div := tree.Elements[0].(*Container)
	if v, _ := div.Attributes.Get("class"); v != "a" {
		t.Errorf("expected first value kept, got %q", v)
	}
}

func TestNoSuchBlock(t *testing.T) {
	tree, exceptions := mustParse(t, "[[bogus]]text")
	if len(exceptions) != 1 || exceptions[0].Kind != ExceptionNoSuchBlock {
		t.Fatalf("expected one no-such-block exception, got %v", exceptions)
	}
	if exceptions[0].Offset != 0 {
		t.Errorf("expected offset 0, got %d", exceptions[0].Offset)
	}
	// the construct degrades to literal text
	if got := tree.PlainText(); got != "[[bogus]]text" {
		t.Errorf("expected literal text, got %q", got)
	}
}

func TestEmptyBlockName(t *testing.T) {
	tree, exceptions := mustParse(t, "[[]]x")
	if len(exceptions) != 1 || exceptions[0].Kind != ExceptionEmptyBlockName {
		t.Fatalf("expected one empty-block-name exception, got %v", exceptions)
	}
	if got := tree.PlainText(); got != "[[]]x" {
		t.Errorf("expected literal text, got %q", got)
	}
}

func TestDisallowedModifiers(t *testing.T) {
	var tests = []struct {
		src  string
		kind ExceptionKind
	}{
		{"[[*del]]x[[/del]]", ExceptionDisallowedStar},
		{"[[del_]]x[[/del]]", ExceptionDisallowedScore},
		{"[[del=]]x[[/del]]", ExceptionDisallowedNewlines},
	}
	for _, tt := range tests {
		tree, exceptions := mustParse(t, tt.src)
		if len(exceptions) != 1 || exceptions[0].Kind != tt.kind {
			t.Errorf("%s: expected one %s exception, got %v", tt.src, tt.kind, exceptions)
		}
		// flag is ignored, the block still parses
		if c, ok := tree.Elements[0].(*Container); !ok || c.Type != Deletion {
			t.Errorf("%s: expected deletion container, got %#v", tt.src, tree.Elements[0])
		}
	}
}

func TestScoreCollapsesNewlines(t *testing.T) {
	tree, exceptions := mustParse(t, "[[span_]]a\nb[[/span]]")
	if len(exceptions) != 0 {
		t.Fatalf("unexpected exceptions: %v", exceptions)
	}
	span := tree.Elements[0].(*Container)
	for _, e := range span.Elements {
		if _, ok := e.(*LineBreak); ok {
			t.Errorf("score variant should collapse line breaks, got %#v", span.Elements)
		}
	}
}

func TestNewlineMarkerSuppressesParagraphs(t *testing.T) {
	tree, _ := mustParse(t, "[[div=]]a\n\nb[[/div]]")
	div := tree.Elements[0].(*Container)
	for _, e := range div.Elements {
		if c, ok := e.(*Container); ok && c.Type == Paragraph {
			t.Fatalf("newline variant should not wrap paragraphs, got %#v", div.Elements)
		}
	}
}

func TestMissingCloseTag(t *testing.T) {
	tree, exceptions := mustParse(t, "[[del]]abc")
	if len(exceptions) != 1 || exceptions[0].Kind != ExceptionMissingCloseTag {
		t.Fatalf("expected one missing-close-tag exception, got %v", exceptions)
	}
	del := tree.Elements[0].(*Container)
	if del.Type != Deletion || len(del.Elements) != 1 {
		t.Errorf("expected best-effort deletion container, got %#v", del)
	}
}

func TestRecursionLimit(t *testing.T) {
	nested := strings.Repeat("[[div]]", MaxDepth+1)
	tree, exceptions, err := Parse(nested)
	if !errors.Is(err, ErrRecursionDepth) {
		t.Fatalf("expected ErrRecursionDepth, got %v", err)
	}
	if tree != nil || exceptions != nil {
		t.Errorf("fatal parse must not return a partial tree")
	}

	// one level below the limit is an ordinary (if unclosed) document
	if _, _, err := Parse(strings.Repeat("[[div]]", MaxDepth)); err != nil {
		t.Errorf("depth at the limit should parse, got %v", err)
	}
}

func TestParagraphGathering(t *testing.T) {
	tree, _ := mustParse(t, "one\n\ntwo")
	if len(tree.Elements) != 2 {
		t.Fatalf("expected two paragraphs, got %#v", tree.Elements)
	}
	for _, e := range tree.Elements {
		c, ok := e.(*Container)
		if !ok || c.Type != Paragraph {
			t.Errorf("expected paragraph container, got %#v", e)
		}
	}
	if tree.ParagraphSafe {
		t.Errorf("paragraph containers are not paragraph-safe")
	}
}

func TestSingleRunStaysUnwrapped(t *testing.T) {
	tree, _ := mustParse(t, "hello")
	want := []Element{&Text{Text: "hello"}}
	if diff := cmp.Diff(want, tree.Elements); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
	if !tree.ParagraphSafe {
		t.Errorf("bare text is paragraph-safe")
	}
}

func TestParagraphSafetyPropagates(t *testing.T) {
	tree, _ := mustParse(t, "[[del]]a[[div]]b[[/div]]c[[/del]]")
	del := tree.Elements[0].(*Container)
	if del.ParagraphSafe() {
		t.Errorf("container with an unsafe child must be unsafe")
	}
	if tree.ParagraphSafe {
		t.Errorf("tree with an unsafe element must be unsafe")
	}
}

func TestHeadingsAndRule(t *testing.T) {
	tree, exceptions := mustParse(t, "+ Title\n\n----\n\n++ Section\n")
	if len(exceptions) != 0 {
		t.Fatalf("unexpected exceptions: %v", exceptions)
	}
	want := []Heading{{1, "Title"}, {2, "Section"}}
	if diff := cmp.Diff(want, tree.Headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	var seenRule bool
	for _, e := range tree.Elements {
		if _, ok := e.(*HorizontalRule); ok {
			seenRule = true
		}
	}
	if !seenRule {
		t.Errorf("expected a horizontal rule, got %#v", tree.Elements)
	}
}

func TestRawSpanIsInert(t *testing.T) {
	tree, exceptions := mustParse(t, "@@[[del]]@@")
	if len(exceptions) != 0 {
		t.Fatalf("unexpected exceptions: %v", exceptions)
	}
	want := []Element{&Text{Text: "[[del]]"}}
	if diff := cmp.Diff(want, tree.Elements); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestUnclosedRawSpan(t *testing.T) {
	_, exceptions := mustParse(t, "@@abc")
	if len(exceptions) != 1 || exceptions[0].Kind != ExceptionUnclosedRaw {
		t.Errorf("expected one unclosed-raw exception, got %v", exceptions)
	}
}

func TestCodeBodyIsLiteral(t *testing.T) {
	tree, exceptions := mustParse(t, "[[code type=\"go\"]]\nif a < b {\n\t[[del]]\n}\n[[/code]]")
	if len(exceptions) != 0 {
		t.Fatalf("unexpected exceptions: %v", exceptions)
	}
	code, ok := tree.Elements[0].(*Code)
	if !ok {
		t.Fatalf("expected code element, got %T", tree.Elements[0])
	}
	if code.Language != "go" {
		t.Errorf("expected language go, got %q", code.Language)
	}
	if want := "if a < b {\n\t[[del]]\n}"; code.Text != want {
		t.Errorf("expected %q, got %q", want, code.Text)
	}
}

func TestStarVariants(t *testing.T) {
	tree, _ := mustParse(t, "[[*user alice]]")
	user := tree.Elements[0].(*User)
	if user.Name != "alice" || !user.ShowAvatar {
		t.Errorf("expected avatar user alice, got %#v", user)
	}

	tree, _ = mustParse(t, "[[user alice]]")
	user = tree.Elements[0].(*User)
	if user.Name != "alice" || user.ShowAvatar {
		t.Errorf("expected plain user alice, got %#v", user)
	}

	tree, _ = mustParse(t, "[[*checkbox]]")
	box := tree.Elements[0].(*CheckBox)
	if !box.Checked {
		t.Errorf("star checkbox should be checked")
	}
}

func TestNestedBlocks(t *testing.T) {
	tree, exceptions := mustParse(t, "[[quote]]a [[b]]loud[[/b]] word[[/quote]]")
	if len(exceptions) != 0 {
		t.Fatalf("unexpected exceptions: %v", exceptions)
	}
	want := []Element{
		NewContainer(Blockquote, []Element{
			&Text{Text: "a "},
			NewContainer(Bold, []Element{&Text{Text: "loud"}}, nil),
			&Text{Text: " word"},
		}, nil),
	}
	if diff := cmp.Diff(want, tree.Elements); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestStrayCloseTagIsLiteral(t *testing.T) {
	tree, exceptions := mustParse(t, "x[[/del]]y")
	if len(exceptions) != 0 {
		t.Fatalf("unexpected exceptions: %v", exceptions)
	}
	if got := tree.PlainText(); got != "x[[/del]]y" {
		t.Errorf("expected literal close tag, got %q", got)
	}
}

func FuzzParse(f *testing.F) {
	f.Add("[[del]]old[[/del]]")
	f.Add("[[div class=\"a\"]]\n\ntext\n\n[[/div]]")
	f.Add("@@raw@@ и [[*user кто]]")
	f.Add("+ Title\n----\n[[footnotes title=\"x\"]]")
	f.Fuzz(func(t *testing.T, src string) {
		tree, _, err := Parse(src)
		if err != nil {
			if !errors.Is(err, ErrRecursionDepth) {
				t.Fatalf("unexpected fatal error: %s", err)
			}
			return
		}
		// a successful parse always renders
		Render(tree, Options{})
	})
}
