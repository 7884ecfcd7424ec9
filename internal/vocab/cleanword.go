package vocab

import (
	"regexp"
	"strings"
)

var (
	articleRE       = regexp.MustCompile(`^(der|die|das|ein|eine)\s+`)
	parentheticalRE = regexp.MustCompile(`\(.*\)`)
)

// cleanWord strips the leading article and any parenthetical annotation so
// only the bare headword is sent to the lookup service.
func cleanWord(word string) string {
	word = strings.TrimSpace(word)
	word = strings.TrimSpace(articleRE.ReplaceAllString(word, ""))
	word = strings.TrimSpace(parentheticalRE.ReplaceAllString(word, ""))
	return word
}
