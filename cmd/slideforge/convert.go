package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	slideforge "github.com/alnah/go-slideforge"
	"github.com/alnah/go-slideforge/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput  = errors.New("no slides directory specified")
	ErrBadFlags = errors.New("invalid flags")
)

// runConvert orchestrates one conversion run: resolve slides, pick the
// renderer and sink from flags/config, render, and print the report.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadFlags, err)
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrBadFlags, err)
	}

	slidesDir, err := resolveSlidesDir(positional, cfg)
	if err != nil {
		return err
	}

	set, err := slideforge.Resolve(slidesDir)
	if err != nil {
		if errors.Is(err, slideforge.ErrNoSlides) {
			return fmt.Errorf("%w (run 'slideforge init %s' to scaffold template slides)", err, slidesDir)
		}
		return err
	}

	if flags.slides != "" {
		set, err = set.Select(flags.slides)
		if err != nil {
			return err
		}
	}

	format := strings.ToLower(cfg.Output.Format)
	outPath := resolveOutputPath(cfg, format)
	kind := artifactKindFor(format)

	if !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "Converting %d slide(s) from %s to %s\n", set.Len(), slidesDir, outPath)
	}

	store, err := slideforge.NewArtifactStore()
	if err != nil {
		return err
	}

	sink := sinkFor(format, outPath)
	timeout := cfg.Timeout()

	start := env.Now()
	report, err := runAggregation(ctx, set, sink, store, cfg, kind, timeout, env)
	if err != nil {
		printReport(report, env, flags.common.quiet)
		return err
	}

	printReport(report, env, flags.common.quiet)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Elapsed: %s\n", env.Now().Sub(start).Round(time.Millisecond))
	}
	return nil
}

// runAggregation picks the sequential or parallel path from the resolved
// worker count.
func runAggregation(ctx context.Context, set *slideforge.SlideSet, sink slideforge.Sink, store *slideforge.ArtifactStore, cfg *config.Config, kind slideforge.ArtifactKind, timeout time.Duration, env *Environment) (*slideforge.Report, error) {
	workers := slideforge.ResolveWorkers(cfg.Render.Workers)

	if workers == 1 {
		r, err := newRenderer(cfg.Render.Method, kind, timeout, env)
		if err != nil {
			return nil, err
		}
		defer func() { _ = r.Close() }()

		return slideforge.RunSequential(ctx, set, r, sink, store)
	}

	pool := slideforge.NewRendererPool(workers, func() (slideforge.Renderer, error) {
		return newRenderer(cfg.Render.Method, kind, timeout, env)
	})
	defer func() { _ = pool.Close() }()

	return slideforge.RunParallel(ctx, set, pool, sink, store, workers)
}

// newRenderer builds the engine selected by method.
func newRenderer(method string, kind slideforge.ArtifactKind, timeout time.Duration, env *Environment) (slideforge.Renderer, error) {
	switch strings.ToLower(method) {
	case "", "chrome":
		return slideforge.NewChromeRenderer(kind, slideforge.WithTimeout(timeout)), nil
	case "weasyprint":
		return slideforge.NewWeasyPrintRenderer(env.Runner, kind, slideforge.WithTimeout(timeout))
	default:
		return nil, fmt.Errorf("unknown render method %q (must be chrome or weasyprint)", method)
	}
}

// loadConfig loads the named config, or defaults when none is given.
func loadConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config (CLI wins).
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.Name = flags.output
	}
	if flags.format != "" {
		cfg.Output.Format = flags.format
	}
	if flags.method != "" {
		cfg.Render.Method = flags.method
	}
	if flags.workers != 0 {
		cfg.Render.Workers = flags.workers
	}
	if flags.timeout != "" {
		cfg.Render.Timeout = flags.timeout
	}
}

// resolveSlidesDir picks the slides directory from the positional argument
// or the config default.
func resolveSlidesDir(positional []string, cfg *config.Config) (string, error) {
	if len(positional) > 0 {
		return positional[0], nil
	}
	if cfg.Input.SlidesDir != "" {
		return cfg.Input.SlidesDir, nil
	}
	return "", fmt.Errorf("%w: pass a directory or set input.slidesDir in config", ErrNoInput)
}

// resolveOutputPath builds the output file path: configured name or
// slides.<format>, under the configured output dir, with the format
// extension appended when missing.
func resolveOutputPath(cfg *config.Config, format string) string {
	name := cfg.Output.Name
	if name == "" {
		name = "slides"
	}
	if !strings.EqualFold(filepath.Ext(name), "."+format) {
		name += "." + format
	}
	if cfg.Output.Dir != "" && !filepath.IsAbs(name) {
		return filepath.Join(cfg.Output.Dir, name)
	}
	return name
}

// artifactKindFor maps an output format to the per-slide artifact kind.
func artifactKindFor(format string) slideforge.ArtifactKind {
	if format == "pptx" {
		return slideforge.ArtifactPNG
	}
	return slideforge.ArtifactPDF
}

// sinkFor builds the sink for an output format.
func sinkFor(format, outPath string) slideforge.Sink {
	if format == "pptx" {
		return slideforge.NewDeckSink(outPath)
	}
	return slideforge.NewPDFSink(outPath)
}

// printReport writes per-slide failures and the run summary.
func printReport(report *slideforge.Report, env *Environment, quiet bool) {
	if report == nil {
		return
	}
	for _, f := range report.Failures {
		fmt.Fprintf(env.Stderr, "FAILED slide %d (%s): %v\n", f.Index+1, filepath.Base(f.Path), f.Reason)
	}
	if !quiet || report.Failed() {
		fmt.Fprintln(env.Stderr, report.Summary())
	}
}
