package wikitext

import (
	"fmt"
	"log/slog"
	"strings"
)

// parser owns one parse pass over one document.
type parser struct {
	scanner
	depth      int
	err        error // fatal; poisons the whole parse
	exceptions []Exception
	headings   []Heading
	log        *slog.Logger
}

// Parse converts raw wikitext into an element tree. The exception list
// holds the recoverable diagnostics collected along the way; a document
// with exceptions still produces a best-effort tree. The error return
// is reserved for fatal conditions such as [ErrRecursionDepth], in
// which case no tree is returned at all.
func Parse(src string) (*Tree, []Exception, error) {
	return ParseLogger(nil, src)
}

// ParseLogger is Parse with a logger for per-rule debug events. A nil
// logger discards them.
func ParseLogger(log *slog.Logger, src string) (*Tree, []Exception, error) {
	p := &parser{scanner: scanner{src: src}, log: log}
	elements, _ := p.parseNodes(nil)
	if p.err != nil {
		return nil, nil, p.err
	}
	elements = gatherParagraphs(elements)
	tree := &Tree{
		Elements:      elements,
		Headings:      p.headings,
		ParagraphSafe: allParagraphSafe(elements),
	}
	p.debug("parse complete",
		"elements", len(tree.Elements),
		"exceptions", len(p.exceptions),
		"paragraph-safe", tree.ParagraphSafe)
	return tree, p.exceptions, nil
}

func (p *parser) debug(msg string, args ...any) {
	if p.log != nil {
		p.log.Debug(msg, args...)
	}
}

func (p *parser) exception(kind ExceptionKind, offset int, format string, args ...any) {
	p.exceptions = append(p.exceptions, Exception{
		Kind:    kind,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
	})
}

// parseNodes parses content until EOF or until a close tag resolving to
// the 'until' rule. The returned elements are raw: newlines appear as
// LineBreak elements and paragraph gathering has not happened yet.
func (p *parser) parseNodes(until *BlockRule) (elements []Element, closed bool) {
	for !p.eof() && p.err == nil {
		switch {
		case p.startsWith("[[/"):
			start := p.pos
			name, ok := p.scanCloseTag()
			if !ok {
				// malformed close tag renders literally
				p.pos = start + 2
				elements = append(elements, &Text{Text: "[["})
				continue
			}
			if rule, found := LookupBlock(name); found && until != nil && rule == until {
				return elements, true
			}
			// stray or mismatched close tag renders literally
			elements = append(elements, &Text{Text: p.src[start:p.pos]})

		case p.startsWith("[["):
			if elt := p.parseBlock(); elt != nil {
				elements = append(elements, elt)
			}

		case p.startsWith("@@"):
			elements = append(elements, p.parseRawSpan())

		case p.atLineStart() && p.lineIsRule():
			p.readLine()
			elements = append(elements, HR)

		case p.atLineStart() && p.lineIsHeading():
			elements = append(elements, p.parseHeading())

		case p.peekByte() == '\n':
			p.advance(1)
			elements = append(elements, LB)

		default:
			if text := p.readText(); text != "" {
				elements = append(elements, &Text{Text: text})
			}
		}
	}
	return elements, false
}

// readText consumes a plain text run up to the next construct marker.
// Always makes progress.
func (p *parser) readText() string {
	text := p.readUntil("[[", "@@", "\n")
	if text == "" {
		// lone marker byte that no construct claimed
		text = p.src[p.pos : p.pos+1]
		p.advance(1)
	}
	return strings.ReplaceAll(text, "\r", "")
}

// parseRawSpan handles @@...@@: the inner text is markup-inert, shown
// literally (and still escaped at render).
func (p *parser) parseRawSpan() Element {
	start := p.pos
	p.advance(2)
	text := p.readUntil("@@")
	if p.eof() {
		p.exception(ExceptionUnclosedRaw, start, "raw span not closed")
		return &Text{Text: text}
	}
	p.advance(2)
	return &Text{Text: text}
}

// lineIsRule reports whether the current line is a horizontal rule:
// four or more dashes alone on the line.
func (p *parser) lineIsRule() bool {
	line := strings.TrimRight(p.lineAhead(), " \t\r")
	if len(line) < 4 {
		return false
	}
	return strings.Count(line, "-") == len(line)
}

// lineIsHeading reports whether the current line starts a heading: one
// to six '+' characters followed by a space.
func (p *parser) lineIsHeading() bool {
	line := p.lineAhead()
	level := 0
	for level < len(line) && line[level] == '+' {
		level++
	}
	return level >= 1 && level <= 6 && level < len(line) && line[level] == ' '
}

func (p *parser) lineAhead() string {
	line := p.rest()
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return line
}

func (p *parser) parseHeading() Element {
	line := p.readLine()
	level := 0
	for level < len(line) && line[level] == '+' {
		level++
	}
	label := strings.TrimSpace(line[level:])
	p.debug("parsing heading", "level", level, "label", label)
	p.headings = append(p.headings, Heading{Level: level, Label: label})
	return headerElement(level, label)
}

// scanCloseTag consumes a close tag "[[/name]]" and returns the name.
// On malformed input the position is restored and ok is false.
func (p *parser) scanCloseTag() (name string, ok bool) {
	start := p.pos
	p.advance(3)
	p.skipSpaces()
	name = p.readName()
	p.skipSpaces()
	if name == "" || !p.startsWith("]]") {
		p.pos = start
		return "", false
	}
	p.advance(2)
	return name, true
}

// parseBlock parses one "[[...]]" block invocation: name, written
// modifier flags, rule resolution, then the rule-specific head and body
// behavior. Failures degrade to literal text with an exception; only
// the recursion limit is fatal.
func (p *parser) parseBlock() Element {
	start := p.pos
	p.advance(2)
	p.skipSpaces()

	var m modifiers
	if p.peekByte() == '*' {
		m.star = true
		p.advance(1)
	}
	name := p.readName()
	if p.peekByte() == '_' {
		m.score = true
		p.advance(1)
	}
	if p.peekByte() == '=' {
		m.newlines = true
		p.advance(1)
	}
	if name == "" {
		p.exception(ExceptionEmptyBlockName, start, "block name missing")
		p.pos = start + 2
		return &Text{Text: "[["}
	}

	rule, ok := LookupBlock(name)
	if !ok {
		p.exception(ExceptionNoSuchBlock, start, "no such block %q", name)
		p.pos = start + 2
		return &Text{Text: "[["}
	}

	// a written flag the rule does not accept is recoverable: record it
	// and ignore the flag
	if m.star && !rule.AcceptsStar {
		p.exception(ExceptionDisallowedStar, start, "block %q does not accept the star variant", rule.Name)
		m.star = false
	}
	if m.score && !rule.AcceptsScore {
		p.exception(ExceptionDisallowedScore, start, "block %q does not accept the score variant", rule.Name)
		m.score = false
	}
	if m.newlines && !rule.AcceptsNewlines {
		p.exception(ExceptionDisallowedNewlines, start, "block %q does not accept the newline variant", rule.Name)
		m.newlines = false
	}

	p.skipSpaces()
	inHead := !p.startsWith("]]")
	return rule.parseFn(p, rule, m, inHead)
}

// getHeadMap extracts the ordered key="value" arguments of a block's
// opening tag and consumes the closing "]]". Parsing is lenient:
// malformed arguments become exceptions without stopping the remaining
// arguments or the body. Unknown keys are preserved.
func (p *parser) getHeadMap(rule *BlockRule, inHead bool) AttributeMap {
	if !inHead {
		p.expectTagEnd()
		return nil
	}
	var arguments AttributeMap
	for {
		if rule.AcceptsNewlines {
			p.skipWhitespace()
		} else {
			p.skipSpaces()
		}
		if p.eof() {
			p.exception(ExceptionMalformedArgument, p.pos, "unterminated head for block %q", rule.Name)
			return arguments
		}
		if p.startsWith("]]") {
			p.advance(2)
			return arguments
		}
		if p.peekByte() == '\n' {
			p.exception(ExceptionDisallowedNewlines, p.pos, "newline in head for block %q", rule.Name)
			p.advance(1)
			continue
		}

		keyStart := p.pos
		key := p.readKey()
		if key == "" {
			p.exception(ExceptionMalformedArgument, keyStart, "expected argument key in block %q", rule.Name)
			p.skipJunk()
			continue
		}
		if p.peekByte() != '=' {
			p.exception(ExceptionMalformedArgument, keyStart, "argument %q has no value", key)
			continue
		}
		p.advance(1)

		var value string
		if p.peekByte() == '"' {
			p.advance(1)
			value = p.readUntil(`"`, "]]")
			if p.startsWith(`"`) {
				p.advance(1)
			} else {
				p.exception(ExceptionMalformedArgument, keyStart, "argument %q value not terminated", key)
			}
		} else {
			p.exception(ExceptionMalformedArgument, keyStart, "argument %q value not quoted", key)
			value = p.readBareToken()
		}
		if _, dup := arguments.Get(key); dup {
			p.exception(ExceptionDuplicateArgument, keyStart, "argument %q given twice", key)
			continue
		}
		arguments = append(arguments, KV{key, value})
	}
}

// getHeadValue extracts the raw head text of a value-style block such
// as [[size 85%]] or [[user name]], consuming the closing "]]".
func (p *parser) getHeadValue(rule *BlockRule, inHead bool) string {
	if !inHead {
		p.expectTagEnd()
		return ""
	}
	value := strings.TrimSpace(p.readUntil("]]"))
	if p.eof() {
		p.exception(ExceptionMalformedArgument, p.pos, "unterminated head for block %q", rule.Name)
		return value
	}
	p.advance(2)
	return value
}

func (p *parser) expectTagEnd() {
	p.skipSpaces()
	if p.startsWith("]]") {
		p.advance(2)
	}
}

// readBareToken consumes an unquoted argument value up to whitespace or
// the end of the head.
func (p *parser) readBareToken() string {
	start := p.pos
	for !p.eof() && !p.startsWith("]]") {
		switch p.peekByte() {
		case ' ', '\t', '\n', '\r':
			return p.src[start:p.pos]
		}
		p.advance(1)
	}
	return p.src[start:p.pos]
}

// skipJunk discards a malformed head token.
func (p *parser) skipJunk() {
	for !p.eof() {
		switch p.peekByte() {
		case ' ', '\t', '\n', '\r':
			return
		}
		if p.startsWith("]]") {
			return
		}
		p.advance(1)
	}
}

// getBodyElements recursively parses a block body up to the matching
// close tag. Nesting past MaxDepth is fatal for the whole document.
// With paragraphs set the body is wrapped the same way the document
// top level is; the score modifier collapses the body's line breaks and
// the '=' modifier preserves them verbatim instead of paragraphing.
func (p *parser) getBodyElements(rule *BlockRule, m modifiers, paragraphs bool) []Element {
	open := p.pos
	p.depth++
	if p.depth > MaxDepth {
		p.err = ErrRecursionDepth
		p.depth--
		return nil
	}
	elements, closed := p.parseNodes(rule)
	p.depth--
	if p.err != nil {
		return nil
	}
	if !closed {
		p.exception(ExceptionMissingCloseTag, open, "block %q missing close tag", rule.Name)
	}
	if m.score {
		elements = dropLineBreaks(elements)
	}
	if paragraphs && !m.newlines {
		elements = gatherParagraphs(elements)
	}
	return elements
}

// getBodyText extracts a literal body: everything up to the matching
// close tag, unparsed.
func (p *parser) getBodyText(rule *BlockRule) string {
	start := p.pos
	search := p.pos
	for {
		idx := strings.Index(p.src[search:], "[[/")
		if idx < 0 {
			p.exception(ExceptionMissingCloseTag, start, "block %q missing close tag", rule.Name)
			p.pos = len(p.src)
			return p.src[start:]
		}
		end := search + idx
		p.pos = end
		if name, ok := p.scanCloseTag(); ok {
			if r, found := LookupBlock(name); found && r == rule {
				return p.src[start:end]
			}
		}
		search = end + 3
	}
}

func dropLineBreaks(elements []Element) []Element {
	out := elements[:0]
	for _, e := range elements {
		if _, ok := e.(*LineBreak); ok {
			continue
		}
		out = append(out, e)
	}
	return out
}
