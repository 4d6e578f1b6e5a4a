package lessons

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sternxxxx/ML-Methods-and-Tools/internal/models"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/results"
)

func TestAllLessonsRegisteredInTeachingOrder(t *testing.T) {
	var names []string
	for _, l := range All() {
		names = append(names, l.Name)
	}

	want := []string{
		"dense-baseline",
		"validation-curves",
		"model-capacity",
		"weight-regularization",
		"dropout",
		"alternative-loss",
		"embeddings",
		"simple-rnn",
		"lstm",
		"conv1d",
		"lexicon-baseline",
	}
	assert.Subset(t, names, want)

	// The feed-forward arc precedes the sequence models.
	pos := map[string]int{}
	for i, n := range names {
		pos[n] = i
	}
	assert.Less(t, pos["dense-baseline"], pos["validation-curves"])
	assert.Less(t, pos["validation-curves"], pos["model-capacity"])
	assert.Less(t, pos["dropout"], pos["embeddings"])
	assert.Less(t, pos["embeddings"], pos["simple-rnn"])
	assert.Less(t, pos["simple-rnn"], pos["lstm"])
	assert.Less(t, pos["lstm"], pos["conv1d"])
}

func TestGetUnknownLesson(t *testing.T) {
	_, err := Get("no-such-lesson")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dense-baseline")
}

func TestEveryLessonHasProse(t *testing.T) {
	for _, l := range All() {
		assert.NotEmpty(t, l.Title, "lesson %s", l.Name)
		assert.NotEmpty(t, l.Summary, "lesson %s", l.Name)
		assert.NotNil(t, l.Run, "lesson %s", l.Name)
	}
}

func TestParamOverrides(t *testing.T) {
	var p Params
	assert.Equal(t, 4, p.epochs(4))
	assert.Equal(t, 512, p.batchSize(512))
	assert.Equal(t, 500, p.maxLen(500))

	p = Params{Epochs: 2, BatchSize: 64, MaxLen: 20}
	assert.Equal(t, 2, p.epochs(4))
	assert.Equal(t, 64, p.batchSize(512))
	assert.Equal(t, 20, p.maxLen(500))
}

func TestRunOnePersistsArtifacts(t *testing.T) {
	fake := Lesson{
		Name:    "fake-lesson",
		Title:   "Fake",
		Summary: "For the runner test.",
		Run: func(ctx context.Context, p Params) ([]models.RunRecord, error) {
			return []models.RunRecord{{
				Lesson:    "fake-lesson",
				Variant:   "only",
				StartedAt: time.Now(),
				History: models.History{
					models.MetricLoss:     {0.5, 0.3},
					models.MetricAccuracy: {0.6, 0.8},
				},
			}}, nil
		},
	}

	root := t.TempDir()
	store := results.NewStore(root)
	require.NoError(t, runOne(context.Background(), fake, Params{ResultsDir: root}, store))

	runs, err := store.LoadRuns("fake-lesson")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "only", runs[0].Variant)

	assert.FileExists(t, filepath.Join(root, "fake-lesson", "report.html"))
}
