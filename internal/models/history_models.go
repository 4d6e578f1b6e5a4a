package models

// Canonical metric keys recorded during a fit. Validation keys are only
// present when a validation set or split was supplied.
const (
	MetricLoss        = "loss"
	MetricAccuracy    = "accuracy"
	MetricValLoss     = "val_loss"
	MetricValAccuracy = "val_accuracy"
)

// History maps a metric name to its per-epoch values, in epoch order.
type History map[string][]float64

func (h History) Append(metric string, value float64) {
	h[metric] = append(h[metric], value)
}

// Epochs reports the number of recorded epochs, taken from the training
// loss series.
func (h History) Epochs() int {
	return len(h[MetricLoss])
}

// Final returns the last recorded value for a metric, or 0 when the
// series is empty.
func (h History) Final(metric string) float64 {
	series := h[metric]
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}

func (h History) HasValidation() bool {
	return len(h[MetricValLoss]) > 0
}
