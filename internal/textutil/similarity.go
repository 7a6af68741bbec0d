package textutil

import (
	"math"

	"github.com/hbollon/go-edlib"
)

const scorePrecision = 1e4

// Similarity returns the Jaro similarity of a and b in [0,1].
// Identical non-empty strings score 1; an empty operand scores 0.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	score, err := edlib.StringsSimilarity(a, b, edlib.Jaro)
	if err != nil {
		return 0
	}
	return roundScore(float64(score))
}

// roundScore keeps four decimals, so a raw 0.89996 compares as 0.9 against
// the auto-replace threshold.
func roundScore(score float64) float64 {
	return math.Round(score*scorePrecision) / scorePrecision
}
