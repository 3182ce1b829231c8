// Package textutil shortens free text for listings and previews.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// WordsEllipsis follows text cut by TruncateWords.
	WordsEllipsis = " ..."
	// CharsEllipsis ends text cut by TruncateChars and counts toward its length.
	CharsEllipsis = "…"
)

// TruncateWords keeps the first n words of text. When words are dropped the
// kept words are joined by single spaces and WordsEllipsis is appended;
// otherwise text is returned unchanged.
func TruncateWords(text string, n int) string {
	if n <= 0 {
		return ""
	}
	words := strings.Fields(text)
	if len(words) <= n {
		return text
	}
	return strings.Join(words[:n], " ") + WordsEllipsis
}

// TruncateChars limits text to n runes, including the trailing CharsEllipsis
// when it has to cut.
func TruncateChars(text string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	keep := n - utf8.RuneCountInString(CharsEllipsis)
	if keep <= 0 {
		return CharsEllipsis
	}
	rs := []rune(text)
	return strings.TrimRightFunc(string(rs[:keep]), unicode.IsSpace) + CharsEllipsis
}
