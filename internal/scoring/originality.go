package scoring

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinOriginalTextLength is the length, after removing mentions and links, at
// which plain text counts as original content.
const MinOriginalTextLength = 100

var (
	mentionPattern = regexp.MustCompile(`@\w+`)
	urlPattern     = regexp.MustCompile(`https?://\S+`)
)

// HasOriginalityFeatures reports whether a tweet qualifies for the originality
// bonus: it links out, starts a thread, carries media, or has enough text of
// its own.
func HasOriginalityFeatures(text string, hasLink, isThreadRoot, hasMedia bool) bool {
	if hasLink || isThreadRoot || hasMedia {
		return true
	}
	return utf8.RuneCountInString(StripMentionsAndURLs(text)) >= MinOriginalTextLength
}

// StripMentionsAndURLs removes @handles and links and trims the result.
// Inner whitespace is kept and counts toward the text length.
func StripMentionsAndURLs(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
