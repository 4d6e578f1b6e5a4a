// Package results persists lesson artifacts: run history as JSON,
// per-epoch metrics as CSV, training-curve PNGs, and an HTML report.
package results

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/sternxxxx/ML-Methods-and-Tools/internal/models"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/plot"
)

// Store writes one lesson's artifacts under <root>/<lesson>/.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) lessonDir(lesson string) string {
	return filepath.Join(s.root, lesson)
}

// SaveRuns persists the runs of a lesson: history.json, epochs.csv, and
// the two comparison charts (loss and accuracy vs. epoch).
func (s *Store) SaveRuns(lesson string, runs []models.RunRecord) error {
	dir := s.lessonDir(lesson)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("[Results] creating %s: %w", dir, err)
	}

	if err := s.writeJSON(filepath.Join(dir, "history.json"), runs); err != nil {
		return err
	}
	if err := s.writeCSV(filepath.Join(dir, "epochs.csv"), runs); err != nil {
		return err
	}
	if err := s.writeCharts(dir, lesson, runs); err != nil {
		return err
	}

	slog.Info("[Results] Lesson artifacts written",
		slog.String("lesson", lesson),
		slog.String("dir", dir),
		slog.Int("runs", len(runs)))
	return nil
}

func (s *Store) writeJSON(path string, runs []models.RunRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("[Results] creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(runs); err != nil {
		return fmt.Errorf("[Results] encoding %s: %w", path, err)
	}
	return nil
}

func (s *Store) writeCSV(path string, runs []models.RunRecord) error {
	var rows []models.EpochStat
	for _, r := range runs {
		rows = append(rows, r.EpochStats()...)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("[Results] creating %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("[Results] writing %s: %w", path, err)
	}
	return nil
}

// writeCharts renders loss and accuracy charts, each overlaying the
// training series of every run plus validation series when present.
func (s *Store) writeCharts(dir, lesson string, runs []models.RunRecord) error {
	charts := []struct {
		file     string
		metric   string
		valKey   string
		trainKey string
	}{
		{"loss.png", "loss", models.MetricValLoss, models.MetricLoss},
		{"accuracy.png", "accuracy", models.MetricValAccuracy, models.MetricAccuracy},
	}

	for _, c := range charts {
		var series []plot.Series
		for _, r := range runs {
			series = append(series, plot.Series{
				Name:   r.Variant + " (train)",
				Values: r.History[c.trainKey],
			})
			if vals := r.History[c.valKey]; len(vals) > 0 {
				series = append(series, plot.Series{
					Name:   r.Variant + " (val)",
					Values: vals,
				})
			}
		}
		title := fmt.Sprintf("%s: %s vs. epoch", lesson, c.metric)
		if err := plot.SaveCurves(title, c.metric, filepath.Join(dir, c.file), series); err != nil {
			return err
		}
	}
	return nil
}

// LoadRuns reads a lesson's saved history.json back, for report
// regeneration.
func (s *Store) LoadRuns(lesson string) ([]models.RunRecord, error) {
	path := filepath.Join(s.lessonDir(lesson), "history.json")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("[Results] opening %s: %w", path, err)
	}
	defer f.Close()

	var runs []models.RunRecord
	if err := json.NewDecoder(f).Decode(&runs); err != nil {
		return nil, fmt.Errorf("[Results] decoding %s: %w", path, err)
	}
	return runs, nil
}

// Lessons lists the lesson directories that have saved artifacts.
func (s *Store) Lessons() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var lessons []string
	for _, e := range entries {
		if e.IsDir() {
			lessons = append(lessons, e.Name())
		}
	}
	return lessons, nil
}
