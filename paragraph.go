package wikitext

import "strings"

// Paragraph gathering. Raw parsed content carries newlines as LineBreak
// elements; here runs of content are wrapped into paragraph containers.
// A blank line (two or more consecutive breaks) separates paragraphs,
// and a paragraph-unsafe element closes the current paragraph and
// stands alone. A document or body amounting to a single run of
// paragraph-safe content is left unwrapped; wrapping begins once a
// second run or a block-level sibling appears.
func gatherParagraphs(elements []Element) []Element {
	var (
		out     []Element
		current []Element
	)
	flush := func() {
		current = trimEdges(current)
		if len(current) == 0 || blankRun(current) {
			current = nil
			return
		}
		out = append(out, NewContainer(Paragraph, current, nil))
		current = nil
	}
	for i := 0; i < len(elements); {
		e := elements[i]
		if !e.ParagraphSafe() {
			flush()
			out = append(out, e)
			i++
			continue
		}
		if _, ok := e.(*LineBreak); ok {
			j := i
			for j < len(elements) {
				if _, ok := elements[j].(*LineBreak); !ok {
					break
				}
				j++
			}
			if j-i >= 2 {
				flush()
				i = j
				continue
			}
			current = append(current, e)
			i++
			continue
		}
		current = append(current, e)
		i++
	}
	flush()

	if len(out) == 1 {
		if para, ok := out[0].(*Container); ok && para.Type == Paragraph {
			return para.Elements
		}
	}
	return out
}

// trimEdges removes leading and trailing line breaks and
// whitespace-only text from a paragraph run.
func trimEdges(elements []Element) []Element {
	start, end := 0, len(elements)
	for start < end && edgePadding(elements[start]) {
		start++
	}
	for end > start && edgePadding(elements[end-1]) {
		end--
	}
	return elements[start:end]
}

func edgePadding(e Element) bool {
	switch e := e.(type) {
	case *LineBreak:
		return true
	case *Text:
		return strings.TrimSpace(e.Text) == ""
	}
	return false
}

// blankRun reports whether a run contains nothing visible.
func blankRun(elements []Element) bool {
	for _, e := range elements {
		if !edgePadding(e) {
			return false
		}
	}
	return true
}

func allParagraphSafe(elements []Element) bool {
	for _, e := range elements {
		if !e.ParagraphSafe() {
			return false
		}
	}
	return true
}
