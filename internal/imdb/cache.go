package imdb

import (
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// cacheVersion invalidates existing encoded caches when the tokenizer or
// the on-disk format changes.
const cacheVersion = 1

type cacheFile struct {
	Version  int
	Checksum string
	Corpus   encodedCorpus
}

// loadEncodedCorpus returns the rank-encoded corpus, preferring the local
// cache and falling back to downloading and encoding the raw corpus.
func loadEncodedCorpus(ctx context.Context, dataDir string) (*encodedCorpus, error) {
	cachePath := filepath.Join(dataDir, "imdb_encoded.gob")

	if enc, err := readCache(cachePath); err == nil {
		slog.Debug("[IMDB] Using encoded cache", slog.String("path", cachePath))
		return enc, nil
	} else if !os.IsNotExist(err) {
		slog.Warn("[IMDB] Encoded cache unusable, rebuilding",
			slog.String("path", cachePath),
			slog.String("error", err.Error()))
	}

	corpusDir, err := ensureCorpus(ctx, dataDir)
	if err != nil {
		return nil, err
	}
	enc, err := encodeCorpus(corpusDir)
	if err != nil {
		return nil, err
	}
	if err := writeCache(cachePath, enc); err != nil {
		slog.Warn("[IMDB] Failed to write encoded cache",
			slog.String("error", err.Error()))
	}
	return enc, nil
}

func readCache(path string) (*encodedCorpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cf cacheFile
	if err := gob.NewDecoder(f).Decode(&cf); err != nil {
		return nil, fmt.Errorf("decoding cache: %w", err)
	}
	if cf.Version != cacheVersion {
		return nil, fmt.Errorf("cache version %d, want %d", cf.Version, cacheVersion)
	}
	if sum := corpusChecksum(&cf.Corpus); sum != cf.Checksum {
		return nil, fmt.Errorf("cache checksum mismatch")
	}
	return &cf.Corpus, nil
}

func writeCache(path string, enc *encodedCorpus) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	cf := cacheFile{
		Version:  cacheVersion,
		Checksum: corpusChecksum(enc),
		Corpus:   *enc,
	}
	if err := gob.NewEncoder(f).Encode(&cf); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// corpusChecksum hashes the shape and a sample of the corpus rather than
// every token; enough to catch truncated or mismatched cache files.
func corpusChecksum(enc *encodedCorpus) string {
	h := sha256.New()
	fmt.Fprintf(h, "v%d|train=%d|test=%d|vocab=%d|",
		cacheVersion, len(enc.TrainReviews), len(enc.TestReviews), len(enc.WordIndex))
	for i := 0; i < len(enc.TrainReviews); i += 1000 {
		fmt.Fprintf(h, "%d:%d|", i, len(enc.TrainReviews[i]))
	}
	return hex.EncodeToString(h.Sum(nil))
}
