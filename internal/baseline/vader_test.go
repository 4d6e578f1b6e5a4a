package baseline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeWithVADERPolarity(t *testing.T) {
	_, pos := AnalyzeWithVADER("this movie was wonderful, brilliant and deeply moving")
	assert.Equal(t, int8(1), pos)

	_, neg := AnalyzeWithVADER("this movie was terrible, boring and a complete waste of time")
	assert.Equal(t, int8(0), neg)
}

func TestAccuracyOnObviousReviews(t *testing.T) {
	texts := []string{
		"an absolute masterpiece, loved every minute",
		"awful acting and a horrible script, I hated it",
	}
	labels := []int8{1, 0}

	assert.Equal(t, 1.0, Accuracy(texts, labels))
}

func TestStripPlaceholders(t *testing.T) {
	assert.Equal(t, "great film", stripPlaceholders("? great ? film ?"))
}

func TestAccuracyEmptyInput(t *testing.T) {
	assert.Equal(t, 0.0, Accuracy(nil, nil))
}
