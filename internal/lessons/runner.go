package lessons

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sternxxxx/ML-Methods-and-Tools/internal/monitoring"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/results"
)

// RunAll executes the named lessons sequentially in registration
// order, persisting each lesson's artifacts before the next begins.
// The first failure stops the run.
func RunAll(ctx context.Context, names []string, p Params) error {
	store := results.NewStore(p.ResultsDir)

	for _, name := range names {
		lesson, err := Get(name)
		if err != nil {
			return err
		}
		if err := runOne(ctx, lesson, p, store); err != nil {
			return fmt.Errorf("lesson %q: %w", name, err)
		}
	}
	return nil
}

func runOne(ctx context.Context, lesson Lesson, p Params, store *results.Store) error {
	slog.Info("[Lessons] Starting lesson",
		slog.String("lesson", lesson.Name),
		slog.String("title", lesson.Title))
	start := time.Now()

	// The heartbeat goroutine lives exactly as long as this lesson.
	status := p.Status
	if status == nil {
		status = &monitoring.TrainingStatus{}
		p.Status = status
	}
	hbCtx, stopHeartbeat := context.WithCancel(ctx)
	go monitoring.MonitorTraining(hbCtx, lesson.Name, status)
	defer stopHeartbeat()

	runs, err := lesson.Run(ctx, p)
	if err != nil {
		return err
	}

	if err := store.SaveRuns(lesson.Name, runs); err != nil {
		return err
	}
	if err := store.WriteReport(lesson.Name, lesson.Summary, runs); err != nil {
		return err
	}

	slog.Info("[Lessons] Lesson complete",
		slog.String("lesson", lesson.Name),
		slog.Int("variants", len(runs)),
		slog.Duration("duration", time.Since(start)))
	return nil
}
