package imdb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mholt/archiver/v3"
)

const (
	DATASET_URL      = "https://ai.stanford.edu/~amaas/data/sentiment/aclImdb_v1.tar.gz"
	DOWNLOAD_RETRIES = 3
	RETRY_DELAY      = 5 * time.Second
)

// ensureCorpus makes sure the extracted aclImdb tree exists under
// dataDir, downloading and unpacking the archive on first use. The
// result path is dataDir/aclImdb.
func ensureCorpus(ctx context.Context, dataDir string) (string, error) {
	corpusDir := filepath.Join(dataDir, "aclImdb")
	if _, err := os.Stat(filepath.Join(corpusDir, "train")); err == nil {
		return corpusDir, nil
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("creating data dir: %w", err)
	}

	archivePath := filepath.Join(dataDir, "aclImdb_v1.tar.gz")
	if _, err := os.Stat(archivePath); err != nil {
		if err := downloadArchive(ctx, archivePath); err != nil {
			return "", err
		}
	}

	slog.Info("[IMDB] Extracting corpus archive", slog.String("path", archivePath))
	if err := archiver.NewTarGz().Unarchive(archivePath, dataDir); err != nil {
		return "", fmt.Errorf("extracting %s: %w", archivePath, err)
	}

	if _, err := os.Stat(filepath.Join(corpusDir, "train")); err != nil {
		return "", fmt.Errorf("archive did not contain the expected aclImdb tree: %w", err)
	}
	return corpusDir, nil
}

// downloadArchive fetches the corpus with a bounded retry loop. A failed
// download after all attempts is fatal to the lesson run.
func downloadArchive(ctx context.Context, dest string) error {
	var lastErr error
	for attempt := 1; attempt <= DOWNLOAD_RETRIES; attempt++ {
		slog.Info("[IMDB] Downloading dataset",
			slog.String("url", DATASET_URL),
			slog.Int("attempt", attempt))

		start := time.Now()
		n, err := fetchOnce(ctx, dest)
		if err == nil {
			elapsed := time.Since(start)
			slog.Info("[IMDB] Download complete",
				slog.String("size", humanize.Bytes(uint64(n))),
				slog.String("rate", humanize.Bytes(uint64(float64(n)/elapsed.Seconds()))+"/s"),
				slog.Duration("duration", elapsed))
			return nil
		}
		lastErr = err
		slog.Warn("[IMDB] Download failed, retrying...",
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(RETRY_DELAY):
		}
	}
	return fmt.Errorf("downloading dataset after %d attempts: %w", DOWNLOAD_RETRIES, lastErr)
}

func fetchOnce(ctx context.Context, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, DATASET_URL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %s", resp.Status)
	}

	tmp := dest + ".partial"
	f, err := os.Create(tmp)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return 0, err
	}
	return n, os.Rename(tmp, dest)
}
