package models

import "time"

// RunRecord captures one trained model variant within a lesson: its
// configuration summary, the per-epoch history, and timing.
type RunRecord struct {
	Lesson      string        `json:"lesson"`
	Variant     string        `json:"variant"`
	ModelSpec   string        `json:"model_spec"`
	Epochs      int           `json:"epochs"`
	BatchSize   int           `json:"batch_size"`
	Samples     int           `json:"samples"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	History     History       `json:"history"`
	TestLoss    float64       `json:"test_loss,omitempty"`
	TestAcc     float64       `json:"test_accuracy,omitempty"`
	EpochTimes  []float64     `json:"epoch_seconds,omitempty"`
	Description string        `json:"description,omitempty"`
}

// EpochStat is the flat per-epoch row exported to CSV.
type EpochStat struct {
	Variant     string  `csv:"variant"`
	Epoch       int     `csv:"epoch"`
	Loss        float64 `csv:"loss"`
	Accuracy    float64 `csv:"accuracy"`
	ValLoss     float64 `csv:"val_loss"`
	ValAccuracy float64 `csv:"val_accuracy"`
}

// EpochStats flattens a run's history into CSV rows. Validation columns
// are zero when the run had no validation set.
func (r RunRecord) EpochStats() []EpochStat {
	stats := make([]EpochStat, 0, r.History.Epochs())
	for i := 0; i < r.History.Epochs(); i++ {
		s := EpochStat{
			Variant:  r.Variant,
			Epoch:    i + 1,
			Loss:     r.History[MetricLoss][i],
			Accuracy: r.History[MetricAccuracy][i],
		}
		if i < len(r.History[MetricValLoss]) {
			s.ValLoss = r.History[MetricValLoss][i]
		}
		if i < len(r.History[MetricValAccuracy]) {
			s.ValAccuracy = r.History[MetricValAccuracy][i]
		}
		stats = append(stats, s)
	}
	return stats
}
