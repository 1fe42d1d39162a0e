package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/demark-tools/demark/internal/detection"
	"github.com/demark-tools/demark/internal/imaging"
	"github.com/demark-tools/demark/internal/watermark"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	in := flag.StringP("in", "i", "", "path to one input image (png/jpg/gif/webp/bmp)")
	out := flag.StringP("out", "o", "", "output path for --in (default <input>_clean.<ext>)")
	dir := flag.String("dir", "", "process every supported image in a directory")
	threshold := flag.Float64("threshold", detection.DefaultThreshold, "detection threshold in [0, 1]")
	force := flag.Bool("force", false, "skip detection and always invert the corner region")
	forceSmall := flag.Bool("force-small", false, "force the 48x48 mask regardless of image size")
	forceLarge := flag.Bool("force-large", false, "force the 96x96 mask regardless of image size")
	annotate := flag.Bool("annotate", false, "also write <input>_detect.png with the evaluated region outlined")
	workers := flag.Int("workers", runtime.NumCPU(), "concurrent workers in directory mode")
	configPath := flag.String("config", "", "YAML file with defaults for threshold, workers, annotate, blur_radius")
	showVersion := flag.BoolP("version", "v", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("demark %s (built %s, commit %s)\n", Version, BuildTime, GitCommit)
		return nil
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	// Explicit flags win over the config file, which wins over defaults.
	if cfg.Threshold != nil && !flag.CommandLine.Changed("threshold") {
		*threshold = *cfg.Threshold
	}
	if cfg.Workers > 0 && !flag.CommandLine.Changed("workers") {
		*workers = cfg.Workers
	}
	if cfg.Annotate && !flag.CommandLine.Changed("annotate") {
		*annotate = true
	}

	opts := watermark.Options{
		Threshold:  *threshold,
		Force:      *force,
		ForceSmall: *forceSmall,
		ForceLarge: *forceLarge,
		Detection:  detection.Config{BlurRadius: cfg.BlurRadius},
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	switch {
	case *in != "" && *dir != "":
		return errors.New("--in and --dir are mutually exclusive")
	case *in != "":
		_, err := processFile(*in, *out, opts, *annotate, logger)
		return err
	case *dir != "":
		return processDir(*dir, opts, *workers, *annotate, logger)
	default:
		flag.Usage()
		return errors.New("one of --in or --dir is required")
	}
}

// processFile runs the pipeline for one file and writes the results. A
// skipped image produces no output file, so the input is never silently
// altered; failures are reported and the caller decides what they abort.
func processFile(inPath, outPath string, opts watermark.Options, annotate bool, logger *slog.Logger) (watermark.Status, error) {
	img, format, err := imaging.Load(inPath)
	if err != nil {
		return watermark.StatusFailed, err
	}

	outcome := watermark.Run(img, opts)

	if annotate && !opts.Force && outcome.Status != watermark.StatusFailed {
		marked := imaging.MarkRegion(img, outcome.Region, outcome.Score.Overall)
		if err := imaging.Save(marked, annotatePath(inPath)); err != nil {
			return watermark.StatusFailed, err
		}
	}

	switch outcome.Status {
	case watermark.StatusFailed:
		return outcome.Status, fmt.Errorf("%s: %w", inPath, outcome.Err)
	case watermark.StatusSkipped:
		logger.Info("no watermark detected",
			"file", inPath,
			"score", outcome.Score.Overall,
			"threshold", opts.Threshold,
			"mask", outcome.MaskSize)
		return outcome.Status, nil
	}

	if outPath == "" {
		outPath = defaultOutPath(inPath)
	}
	if err := imaging.Save(outcome.Image, outPath); err != nil {
		return watermark.StatusFailed, err
	}

	logger.Info("watermark removed",
		"file", inPath,
		"format", format,
		"out", outPath,
		"mask", outcome.MaskSize,
		"region", outcome.Region.String(),
		"score", outcome.Score.Overall)
	return outcome.Status, nil
}

// defaultOutPath derives <name>_clean.<ext> next to the input. WebP has no
// encoder, so WebP inputs come back as PNG.
func defaultOutPath(inPath string) string {
	ext := filepath.Ext(inPath)
	base := strings.TrimSuffix(inPath, ext)
	if strings.EqualFold(ext, ".webp") || ext == "" {
		ext = ".png"
	}
	return base + "_clean" + ext
}

func annotatePath(inPath string) string {
	return strings.TrimSuffix(inPath, filepath.Ext(inPath)) + "_detect.png"
}
