package wikitext

import "strings"

// Low-level positional scanner over the raw source. Offsets are byte
// positions, kept for exception reporting.

type scanner struct {
	src string
	pos int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) rest() string {
	return s.src[s.pos:]
}

func (s *scanner) peekByte() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) startsWith(prefix string) bool {
	return strings.HasPrefix(s.rest(), prefix)
}

// atLineStart reports whether the scanner sits at the beginning of the
// source or just after a newline.
func (s *scanner) atLineStart() bool {
	return s.pos == 0 || s.src[s.pos-1] == '\n'
}

func (s *scanner) advance(n int) {
	s.pos += n
	if s.pos > len(s.src) {
		s.pos = len(s.src)
	}
}

// skipSpaces consumes spaces and tabs, and carriage returns so that
// CRLF input scans like LF input.
func (s *scanner) skipSpaces() {
	for !s.eof() {
		switch s.src[s.pos] {
		case ' ', '\t', '\r':
			s.pos++
		default:
			return
		}
	}
}

// skipWhitespace consumes spaces, tabs and newlines.
func (s *scanner) skipWhitespace() {
	for !s.eof() {
		switch s.src[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-'
}

func isKeyByte(c byte) bool {
	return isNameByte(c) || c == '_'
}

// readName consumes a block name: a run of letters, digits and hyphens.
func (s *scanner) readName() string {
	start := s.pos
	for !s.eof() && isNameByte(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

// readKey consumes an argument key, which additionally allows
// underscores.
func (s *scanner) readKey() string {
	start := s.pos
	for !s.eof() && isKeyByte(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

// readUntil consumes text up to (not including) the nearest occurrence
// of any of the markers, or to EOF. Returns the consumed text.
func (s *scanner) readUntil(markers ...string) string {
	end := len(s.src)
	for _, m := range markers {
		if i := strings.Index(s.rest(), m); i >= 0 && s.pos+i < end {
			end = s.pos + i
		}
	}
	text := s.src[s.pos:end]
	s.pos = end
	return text
}

// readLine consumes the remainder of the current line, not including
// the newline itself.
func (s *scanner) readLine() string {
	line := s.readUntil("\n")
	return strings.TrimRight(line, "\r")
}
