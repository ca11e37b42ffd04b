package wikitext

import (
	"errors"
	"fmt"
)

// ErrRecursionDepth is the fatal condition returned when block nesting
// exceeds [MaxDepth]. Unlike exceptions it aborts the whole parse; no
// partial tree is produced.
var ErrRecursionDepth = errors.New("wikitext: recursion depth exceeded")

// ExceptionKind classifies a recoverable parse exception.
type ExceptionKind int

const (
	ExceptionNoSuchBlock ExceptionKind = iota
	ExceptionDisallowedStar
	ExceptionDisallowedScore
	ExceptionDisallowedNewlines
	ExceptionMalformedArgument
	ExceptionDuplicateArgument
	ExceptionMissingCloseTag
	ExceptionUnclosedRaw
	ExceptionEmptyBlockName
)

func (k ExceptionKind) String() string {
	switch k {
	case ExceptionNoSuchBlock:
		return "no-such-block"
	case ExceptionDisallowedStar:
		return "disallowed-star"
	case ExceptionDisallowedScore:
		return "disallowed-score"
	case ExceptionDisallowedNewlines:
		return "disallowed-newlines"
	case ExceptionMalformedArgument:
		return "malformed-argument"
	case ExceptionDuplicateArgument:
		return "duplicate-argument"
	case ExceptionMissingCloseTag:
		return "missing-close-tag"
	case ExceptionUnclosedRaw:
		return "unclosed-raw"
	case ExceptionEmptyBlockName:
		return "empty-block-name"
	default:
		return fmt.Sprintf("exception(%d)", int(k))
	}
}

// Exception is a non-fatal diagnostic produced while parsing. Exceptions
// never abort the surrounding parse; they are collected in document
// order and returned alongside the tree. Offset is a byte position in
// the raw input.
type Exception struct {
	Kind    ExceptionKind
	Offset  int
	Message string
}

func (e Exception) String() string {
	return fmt.Sprintf("%s at %d: %s", e.Kind, e.Offset, e.Message)
}
