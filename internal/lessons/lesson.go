// Package lessons sequences the course material: each lesson loads the
// review dataset, builds one or more model variants, trains them, and
// hands the per-epoch histories to the results store for charts and
// reports.
package lessons

import (
	"context"

	"github.com/sternxxxx/ML-Methods-and-Tools/internal/models"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/monitoring"
)

// Params are the run-time knobs shared by every lesson. Zero values
// fall back to each lesson's defaults (25k examples, 10k vocabulary).
type Params struct {
	DataDir    string
	ResultsDir string

	// Epochs and BatchSize override the lesson defaults when positive.
	Epochs    int
	BatchSize int
	// MaxSamples caps the train and test splits, for quick runs.
	MaxSamples int
	// MaxLen overrides the sequence length of sequence lessons.
	MaxLen int
	Seed   int64

	Progress bool
	Status   *monitoring.TrainingStatus
}

func (p Params) epochs(def int) int {
	if p.Epochs > 0 {
		return p.Epochs
	}
	return def
}

func (p Params) batchSize(def int) int {
	if p.BatchSize > 0 {
		return p.BatchSize
	}
	return def
}

func (p Params) maxLen(def int) int {
	if p.MaxLen > 0 {
		return p.MaxLen
	}
	return def
}

// Lesson is one unit of the course: a name for the CLI, a title and markdown
// summary for the report, and the run function producing one RunRecord
// per trained variant.
type Lesson struct {
	Name    string
	Title   string
	Summary string
	Run     func(ctx context.Context, p Params) ([]models.RunRecord, error)
}
