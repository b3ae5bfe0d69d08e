package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minTokenRunes drops single-character tokens.
const minTokenRunes = 2

// Fold lowercases text and strips combining marks so "Amélie" and "amelie"
// produce the same tokens.
func Fold(text string) string {
	// Transformers and casers carry state; build fresh ones per call.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, text)
	if err != nil {
		folded = text
	}
	return cases.Lower(language.Und).String(folded)
}

// Tokenize splits text into folded tokens of at least two letters or digits.
// Underscores count as word characters.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(Fold(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		if utf8.RuneCountInString(field) < minTokenRunes {
			continue
		}
		terms = append(terms, field)
	}
	return terms
}

// Terms tokenizes text and removes English stop words.
func Terms(text string) []string {
	tokens := Tokenize(text)
	terms := tokens[:0]
	for _, token := range tokens {
		if IsStopWord(token) {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}
