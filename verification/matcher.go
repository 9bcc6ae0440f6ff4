package verification

import (
	"regexp"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// DefaultThreshold is the similarity cutoff used when callers do not
// configure their own.
const DefaultThreshold = 70

var nonAlnum = regexp.MustCompile(`\W+`)

// CleanText lowercases the input and collapses runs of non-alphanumeric
// characters into single spaces, so that OCR punctuation noise and user
// formatting differences do not affect matching.
func CleanText(text string) string {
	return strings.ToLower(strings.TrimSpace(nonAlnum.ReplaceAllString(text, " ")))
}

// IsSimilar reports whether the claimed value is supported by the extracted
// text. It compares the normalized claim against the whole text first, then
// against each line individually — certificates usually print names and
// issuers on lines of their own, which whole-text matching alone can miss.
func IsSimilar(claim, text string, threshold int) bool {
	claimClean := CleanText(claim)
	textClean := CleanText(text)

	// Compare with the entire OCR text
	if fuzzy.PartialRatio(claimClean, textClean) >= threshold {
		return true
	}

	// Compare line by line
	for _, line := range strings.Split(text, "\n") {
		lineClean := CleanText(line)
		if lineClean == "" {
			continue
		}
		if fuzzy.PartialRatio(claimClean, lineClean) >= threshold {
			return true
		}
	}
	return false
}
