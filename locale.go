package wikitext

import "golang.org/x/text/language"

// MessageFunc is the localization lookup capability supplied by the
// host: a pure function of (locale, message key). The second return
// reports whether the catalog had the key; on a miss the renderer falls
// back to [DefaultMessage].
type MessageFunc func(locale language.Tag, key string) (string, bool)

// Message keys the renderer consumes.
const (
	MessageFootnote           = "footnote"
	MessageFootnoteBlockTitle = "footnote-block-title"
	MessageTableOfContents    = "table-of-contents"
)

var defaultMessages = map[string]string{
	MessageFootnote:           "Footnote",
	MessageFootnoteBlockTitle: "Footnotes",
	MessageTableOfContents:    "Table of Contents",
}

// DefaultMessage returns the compiled-in English fallback for a message
// key, or the key itself if the key is unknown. The renderer never
// fails a render on a lookup miss.
func DefaultMessage(key string) string {
	if s, ok := defaultMessages[key]; ok {
		return s
	}
	return key
}
