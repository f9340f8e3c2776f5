// Package metrics computes the local text statistics reported by analyze_text.
package metrics

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Features holds the size and structure counts of a text.
type Features struct {
	Bytes     int `json:"bytes"`
	Runes     int `json:"runes"`
	Words     int `json:"words"`
	Lines     int `json:"lines"`
	Sentences int `json:"sentences"`
}

// CountFeatures computes byte, rune, word, line and sentence counts for s.
func CountFeatures(s string) Features {
	return Features{
		Bytes:     len(s),
		Runes:     utf8.RuneCountInString(s),
		Words:     len(strings.Fields(s)),
		Lines:     countLines(s),
		Sentences: CountSentences(s),
	}
}

// countLines returns 0 for empty strings; otherwise 1 plus the number of '\n' runes.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return 1 + strings.Count(s, "\n")
}

// CountSentences counts runs of text terminated by '.', '!' or '?', plus a
// trailing unterminated run. Repeated terminators ("?!", "...") count once.
func CountSentences(s string) int {
	n := 0
	inSentence := false
	for _, r := range s {
		switch {
		case r == '.' || r == '!' || r == '?':
			if inSentence {
				n++
				inSentence = false
			}
		case !unicode.IsSpace(r):
			inSentence = true
		}
	}
	if inSentence {
		n++
	}
	return n
}
