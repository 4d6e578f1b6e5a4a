// Package monitoring provides a training heartbeat: a side goroutine
// that periodically logs how far a fit has progressed and how much
// memory the process is using.
package monitoring

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

const HEARTBEAT_INTERVAL = 15 * time.Second

// TrainingStatus is updated by the fit loop and read by the heartbeat.
type TrainingStatus struct {
	Epoch        atomic.Int64
	TotalEpochs  atomic.Int64
	Batch        atomic.Int64
	TotalBatches atomic.Int64
}

// MonitorTraining logs progress until the context is canceled. Run it
// as a goroutine alongside a fit.
func MonitorTraining(ctx context.Context, lesson string, status *TrainingStatus) {
	ticker := time.NewTicker(HEARTBEAT_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			slog.Info("[Heartbeat] Training in progress",
				slog.String("lesson", lesson),
				slog.Int64("epoch", status.Epoch.Load()),
				slog.Int64("total_epochs", status.TotalEpochs.Load()),
				slog.Int64("batch", status.Batch.Load()),
				slog.Int64("total_batches", status.TotalBatches.Load()),
				slog.String("heap", humanize.Bytes(ms.HeapAlloc)))
		}
	}
}
