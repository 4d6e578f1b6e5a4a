// Package baseline scores reviews with the VADER sentiment lexicon,
// giving the trained models a non-learned accuracy floor to beat.
package baseline

import (
	"strings"

	"github.com/jonreiter/govader"
)

var analyzer = govader.NewSentimentIntensityAnalyzer()

// AnalyzeWithVADER returns the compound polarity score and the binary
// label it implies: 1 for non-negative compound, 0 otherwise.
func AnalyzeWithVADER(text string) (float64, int8) {
	sentiment := analyzer.PolarityScores(text)
	score := sentiment.Compound

	var label int8
	if score >= 0 {
		label = 1
	}
	return score, label
}

// Accuracy scores decoded review texts against their labels. Reserved
// "?" placeholder tokens left by decoding are dropped first so they do
// not dilute the lexicon matches.
func Accuracy(texts []string, labels []int8) float64 {
	if len(texts) == 0 {
		return 0
	}
	var correct int
	for i, text := range texts {
		_, predicted := AnalyzeWithVADER(stripPlaceholders(text))
		if predicted == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(texts))
}

func stripPlaceholders(text string) string {
	fields := strings.Fields(text)
	kept := fields[:0]
	for _, f := range fields {
		if f != "?" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}
