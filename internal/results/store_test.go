package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sternxxxx/ML-Methods-and-Tools/internal/models"
)

func sampleRuns() []models.RunRecord {
	return []models.RunRecord{
		{
			Lesson:    "demo",
			Variant:   "baseline",
			ModelSpec: "dense_16 -> dense_16 -> dense_1",
			Epochs:    2,
			BatchSize: 512,
			StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			History: models.History{
				models.MetricLoss:        {0.6, 0.4},
				models.MetricAccuracy:    {0.7, 0.85},
				models.MetricValLoss:     {0.65, 0.5},
				models.MetricValAccuracy: {0.68, 0.8},
			},
			EpochTimes: []float64{1.2, 1.1},
			TestAcc:    0.83,
		},
	}
}

func TestSaveAndLoadRunsRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	runs := sampleRuns()

	require.NoError(t, store.SaveRuns("demo", runs))

	loaded, err := store.LoadRuns("demo")
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	assert.Equal(t, runs[0].Variant, loaded[0].Variant)
	assert.Equal(t, runs[0].History[models.MetricLoss], loaded[0].History[models.MetricLoss])
	assert.Equal(t, runs[0].History.Epochs(), loaded[0].History.Epochs())
}

func TestSaveRunsWritesAllArtifacts(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)
	require.NoError(t, store.SaveRuns("demo", sampleRuns()))

	for _, file := range []string{"history.json", "epochs.csv", "loss.png", "accuracy.png"} {
		_, err := os.Stat(filepath.Join(root, "demo", file))
		assert.NoError(t, err, "missing %s", file)
	}
}

func TestEpochCSVHasOneRowPerEpoch(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)
	require.NoError(t, store.SaveRuns("demo", sampleRuns()))

	b, err := os.ReadFile(filepath.Join(root, "demo", "epochs.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	// Header plus one row per epoch.
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "val_loss")
}

func TestWriteReport(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)
	runs := sampleRuns()

	require.NoError(t, store.WriteReport("demo", "A **markdown** summary.", runs))

	b, err := os.ReadFile(filepath.Join(root, "demo", "report.html"))
	require.NoError(t, err)
	html := string(b)

	assert.Contains(t, html, "<strong>markdown</strong>")
	assert.Contains(t, html, "baseline")
	assert.Contains(t, html, "loss.png")
}

func TestLessonsListsSavedDirs(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)
	require.NoError(t, store.SaveRuns("a", sampleRuns()))
	require.NoError(t, store.SaveRuns("b", sampleRuns()))

	lessons, err := store.Lessons()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, lessons)
}

func TestLessonsOnMissingRoot(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope"))
	lessons, err := store.Lessons()
	require.NoError(t, err)
	assert.Empty(t, lessons)
}
