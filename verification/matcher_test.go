package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "jane doe", CleanText("  Jane--Doe!! "))
	assert.Equal(t, "certificate of completion", CleanText("CERTIFICATE   of\tCompletion"))
	assert.Equal(t, "", CleanText("!!! ***"))
}

func TestIsSimilarWholeText(t *testing.T) {
	text := "This certifies that Jane Doe has completed the Python course on Coursera"

	assert.True(t, IsSimilar("Jane Doe", text, 70))
	assert.True(t, IsSimilar("jane doe", text, 70))
	assert.True(t, IsSimilar("Coursera", text, 70))
	assert.False(t, IsSimilar("Udemy", text, 70))
}

func TestIsSimilarLineWise(t *testing.T) {
	// Names and issuers are usually printed on isolated lines
	text := "CERTIFICATE OF COMPLETION\nJane Doe\nPython for Everybody\nCoursera\nMarch 2026"

	assert.True(t, IsSimilar("Jane Doe", text, 70))
	assert.True(t, IsSimilar("Python", text, 70))
	assert.True(t, IsSimilar("Coursera", text, 70))
	assert.False(t, IsSimilar("Udacity Nanodegree", text, 70))
}

func TestIsSimilarToleratesOCRNoise(t *testing.T) {
	// Common OCR substitutions should still clear the default threshold
	text := "This cert1ficate is awarded to Jane D0e\nC0ursera"

	assert.True(t, IsSimilar("Jane Doe", text, 70))
	assert.True(t, IsSimilar("Coursera", text, 70))
}

func TestIsSimilarThresholdMonotonic(t *testing.T) {
	text := "Certificate awarded to Jane Doe\nissued by Coursera"
	claims := []string{"Jane Doe", "Coursera", "Udemy", "Python"}

	for _, claim := range claims {
		for threshold := 100; threshold > 0; threshold-- {
			if IsSimilar(claim, text, threshold) {
				// Once a claim passes at some threshold, it must pass at
				// every lower threshold
				for lower := threshold - 1; lower > 0; lower-- {
					assert.True(t, IsSimilar(claim, text, lower),
						"claim %q passed at %d but failed at %d", claim, threshold, lower)
				}
				break
			}
		}
	}
}
