package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters that survive NFD decomposition but have a conventional ASCII spelling.
var asciiFolds = strings.NewReplacer(
	"ß", "ss", "æ", "ae", "Æ", "AE", "œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O", "ł", "l", "Ł", "L", "đ", "d", "Đ", "D", "þ", "th", "Þ", "TH",
)

// foldDiacritics strips combining marks: "Crème Brûlée" -> "Creme Brulee".
// Transformers are stateful so a fresh chain is built per call.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return asciiFolds.Replace(folded)
}

// splitWords breaks an identifier into words. Any rune that is not a letter
// or digit is a boundary, as is a lower-to-upper case change. Runs of
// capitals stay together, so "HTTPServer" yields ["HTTP", "Server"].
func splitWords(s string) []string {
	rs := []rune(s)
	var words []string
	start := -1

	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(rs[start:end]))
		}
		start = -1
	}

	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		if unicode.IsUpper(r) {
			prev := rs[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				flush(i)
				start = i
				continue
			}
			if unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1]) {
				flush(i)
				start = i
			}
		}
	}
	flush(len(rs))

	return words
}
