package kb

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// minTokenLen is the shortest token that takes part in scoring; shorter
	// tokens are treated as noise.
	minTokenLen = 3

	exactMatchWeight  = 1.0
	prefixMatchWeight = 0.2
)

var nonWord = regexp.MustCompile(`\W+`)

// Retrieve scores every entry against question and returns the highest
// scoring one. Iteration order matters: on equal scores the earlier entry
// wins, and an entry must score strictly above zero to be selected.
//
// For each question token longer than two characters an entry gains 1.0 if
// its title+content contains the token, plus 0.2 if it contains the token's
// prefix of length max(3, len/2). Both checks run independently, so a full
// match is worth 1.2.
func Retrieve(entries []Entry, question string) Result {
	lower := cases.Lower(language.Und)
	tokens := tokenize(lower.String(question))

	var result Result
	for i := range entries {
		text := lower.String(entries[i].Title + " " + entries[i].Content)
		score := scoreText(text, tokens)
		if score > result.Score {
			best := entries[i].Clone()
			result = Result{Best: &best, Score: score}
		}
	}
	return result
}

func tokenize(q string) []string {
	parts := nonWord.Split(q, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func scoreText(text string, tokens []string) float64 {
	var score float64
	for _, t := range tokens {
		if len(t) < minTokenLen {
			continue
		}
		if strings.Contains(text, t) {
			score += exactMatchWeight
		}
		if strings.Contains(text, t[:max(minTokenLen, len(t)/2)]) {
			score += prefixMatchWeight
		}
	}
	return score
}
