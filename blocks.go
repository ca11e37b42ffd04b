package wikitext

import (
	"strconv"
	"strings"
)

// The block rule table. Modifier capability flags are checked centrally
// by the parser before a rule's parse behavior runs, so a parse func
// only sees the flags its rule accepts.

func init() {
	registerBlocks(
		containerBlock("del", []string{"deletion"}, Deletion),
		containerBlock("ins", []string{"insertion"}, Insertion),
		containerBlock("b", []string{"bold", "strong"}, Bold),
		containerBlock("i", []string{"italic", "em"}, Italic),
		containerBlock("u", []string{"underline"}, Underline),
		containerBlock("s", []string{"strikethrough"}, Strikethrough),
		containerBlock("sub", []string{"subscript"}, Subscript),
		containerBlock("sup", []string{"super", "superscript"}, Superscript),
		containerBlock("tt", []string{"mono", "monospace"}, Monospace),
		containerBlock("mark", []string{"highlight"}, Mark),
		spanRule,
		sizeRule,
		divRule,
		quoteRule,
		codeRule,
		footnoteRule,
		footnotesRule,
		tocRule,
		userRule,
		checkboxRule,
	)
}

// containerBlock builds the common inline-wrapper rule: head map, body
// without paragraph wrapping, container with the head map flattened
// into attributes.
func containerBlock(name string, aliases []string, typ ContainerType) *BlockRule {
	rule := &BlockRule{
		Name:    name,
		Aliases: aliases,
	}
	rule.parseFn = func(p *parser, rule *BlockRule, m modifiers, inHead bool) Element {
		p.debug("parsing container block", "name", rule.Name, "in-head", inHead)
		arguments := p.getHeadMap(rule, inHead)
		elements := p.getBodyElements(rule, m, false)
		return NewContainer(typ, elements, arguments)
	}
	return rule
}

var spanRule = &BlockRule{
	Name:            "span",
	AcceptsScore:    true,
	AcceptsNewlines: true,
	parseFn: func(p *parser, rule *BlockRule, m modifiers, inHead bool) Element {
		p.debug("parsing span block", "score", m.score)
		arguments := p.getHeadMap(rule, inHead)
		elements := p.getBodyElements(rule, m, false)
		return NewContainer(SpanType, elements, arguments)
	},
}

// size takes its value as the raw head text: [[size 85%]].
var sizeRule = &BlockRule{
	Name: "size",
	parseFn: func(p *parser, rule *BlockRule, m modifiers, inHead bool) Element {
		value := p.getHeadValue(rule, inHead)
		elements := p.getBodyElements(rule, m, false)
		var arguments AttributeMap
		arguments.Set("size", value)
		return NewContainer(SizeType, elements, arguments)
	},
}

var divRule = &BlockRule{
	Name:            "div",
	Aliases:         []string{"div-block"},
	AcceptsScore:    true,
	AcceptsNewlines: true,
	parseFn: func(p *parser, rule *BlockRule, m modifiers, inHead bool) Element {
		p.debug("parsing div block", "in-head", inHead)
		arguments := p.getHeadMap(rule, inHead)
		elements := p.getBodyElements(rule, m, true)
		return NewContainer(DivType, elements, arguments)
	},
}

var quoteRule = &BlockRule{
	Name:            "quote",
	Aliases:         []string{"blockquote"},
	AcceptsScore:    true,
	AcceptsNewlines: true,
	parseFn: func(p *parser, rule *BlockRule, m modifiers, inHead bool) Element {
		p.debug("parsing quote block", "in-head", inHead)
		arguments := p.getHeadMap(rule, inHead)
		elements := p.getBodyElements(rule, m, true)
		return NewContainer(Blockquote, elements, arguments)
	},
}

// code keeps its body literal; nothing inside is parsed as wikitext.
var codeRule = &BlockRule{
	Name:            "code",
	AcceptsNewlines: true,
	parseFn: func(p *parser, rule *BlockRule, m modifiers, inHead bool) Element {
		arguments := p.getHeadMap(rule, inHead)
		language, _ := arguments.Get("type")
		text := p.getBodyText(rule)
		text = strings.TrimPrefix(text, "\n")
		text = strings.TrimSuffix(strings.TrimRight(text, " \t"), "\n")
		return &Code{Language: language, Text: text}
	},
}

var footnoteRule = &BlockRule{
	Name: "footnote",
	parseFn: func(p *parser, rule *BlockRule, m modifiers, inHead bool) Element {
		p.debug("parsing footnote reference")
		p.getHeadMap(rule, inHead)
		elements := p.getBodyElements(rule, m, false)
		return &Footnote{Elements: elements}
	},
}

// footnotes is a void block: the list body comes from the render
// context, not from the source.
var footnotesRule = &BlockRule{
	Name:            "footnotes",
	Aliases:         []string{"footnoteblock"},
	AcceptsNewlines: true,
	parseFn: func(p *parser, rule *BlockRule, m modifiers, inHead bool) Element {
		p.debug("parsing footnote list block")
		arguments := p.getHeadMap(rule, inHead)
		title, hasTitle := arguments.Get("title")
		return &FootnoteBlock{Title: title, HasTitle: hasTitle}
	},
}

var tocRule = &BlockRule{
	Name:    "toc",
	Aliases: []string{"table-of-contents"},
	parseFn: func(p *parser, rule *BlockRule, m modifiers, inHead bool) Element {
		p.getHeadMap(rule, inHead)
		return &TableOfContents{}
	},
}

// user takes the name as raw head text; the star variant renders the
// avatar as well: [[*user name]].
var userRule = &BlockRule{
	Name:        "user",
	AcceptsStar: true,
	parseFn: func(p *parser, rule *BlockRule, m modifiers, inHead bool) Element {
		name := p.getHeadValue(rule, inHead)
		return &User{Name: name, ShowAvatar: m.star}
	},
}

// checkbox is void; the star variant marks it checked: [[*checkbox]].
var checkboxRule = &BlockRule{
	Name:        "checkbox",
	AcceptsStar: true,
	parseFn: func(p *parser, rule *BlockRule, m modifiers, inHead bool) Element {
		arguments := p.getHeadMap(rule, inHead)
		return &CheckBox{Checked: m.star, Attributes: arguments}
	},
}

// headerElement builds the container for a heading line and records it
// for the table of contents.
func headerElement(level int, label string) *Container {
	var arguments AttributeMap
	arguments.Set("level", strconv.Itoa(level))
	return NewContainer(Header, []Element{&Text{Text: label}}, arguments)
}
