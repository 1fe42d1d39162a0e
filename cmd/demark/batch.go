package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/demark-tools/demark/internal/watermark"
)

var supportedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

// processDir runs the pipeline over every supported image directly inside
// dir, fanning files out over a worker pool. Each image is an independent
// computation over its own buffer, so the only shared state is the outcome
// tally.
//
// A non-nil error is returned iff at least one image failed; skipped images
// are a normal outcome and do not affect the exit status.
func processDir(dir string, opts watermark.Options, workers int, annotate bool, logger *slog.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !supportedExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		// Output from a previous run is not re-processed.
		base := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if strings.HasSuffix(base, "_clean") || strings.HasSuffix(base, "_detect") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		logger.Warn("no images to process", "dir", dir)
		return nil
	}

	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	var (
		mu        sync.Mutex
		recovered int
		skipped   int
		failed    int
	)

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				status, err := processFile(path, "", opts, annotate, logger)
				if err != nil {
					logger.Error("processing failed", "file", path, "err", err)
				}
				mu.Lock()
				switch status {
				case watermark.StatusRecovered:
					recovered++
				case watermark.StatusSkipped:
					skipped++
				case watermark.StatusFailed:
					failed++
				}
				mu.Unlock()
			}
		}()
	}

	for _, path := range paths {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	logger.Info("batch complete",
		"dir", dir,
		"total", len(paths),
		"recovered", recovered,
		"skipped", skipped,
		"failed", failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(paths))
	}
	return nil
}
