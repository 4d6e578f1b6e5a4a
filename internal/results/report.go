package results

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/russross/blackfriday/v2"

	"github.com/sternxxxx/ML-Methods-and-Tools/internal/models"
)

// WriteReport renders report.html for a lesson: the lesson's markdown
// summary followed by a metric table per run, with mean/stddev epoch
// time when recorded.
func (s *Store) WriteReport(lesson, summaryMarkdown string, runs []models.RunRecord) error {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", lesson)
	if summaryMarkdown != "" {
		md.WriteString(summaryMarkdown)
		md.WriteString("\n\n")
	}

	md.WriteString("| variant | model | epochs | final loss | final acc | final val loss | final val acc | test acc |\n")
	md.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, r := range runs {
		fmt.Fprintf(&md, "| %s | %s | %d | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
			r.Variant, r.ModelSpec, r.History.Epochs(),
			r.History.Final(models.MetricLoss),
			r.History.Final(models.MetricAccuracy),
			r.History.Final(models.MetricValLoss),
			r.History.Final(models.MetricValAccuracy),
			r.TestAcc)
	}
	md.WriteString("\n")

	for _, r := range runs {
		if len(r.EpochTimes) == 0 {
			continue
		}
		mean, err := stats.Mean(r.EpochTimes)
		if err != nil {
			continue
		}
		sd, _ := stats.StandardDeviation(r.EpochTimes)
		fmt.Fprintf(&md, "- `%s`: %.2fs/epoch (±%.2fs) over %d epochs\n",
			r.Variant, mean, sd, len(r.EpochTimes))
	}

	md.WriteString("\n![loss](loss.png)\n\n![accuracy](accuracy.png)\n")

	html := blackfriday.Run([]byte(md.String()))
	page := fmt.Sprintf("<!DOCTYPE html>\n<html><head><meta charset=%q><title>%s</title></head><body>\n%s</body></html>\n",
		"utf-8", lesson, html)

	dir := s.lessonDir(lesson)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("[Results] creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, "report.html")
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return fmt.Errorf("[Results] writing %s: %w", path, err)
	}

	slog.Debug("[Results] Report written", slog.String("path", path))
	return nil
}
