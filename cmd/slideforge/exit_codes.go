package main

import (
	"context"
	"errors"
	"os"

	slideforge "github.com/alnah/go-slideforge"
	"github.com/alnah/go-slideforge/internal/config"
)

// Exit codes for the slideforge CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom codes < 126,
// 130 for interrupt (128+SIGINT).
const (
	ExitSuccess   = 0 // Output written (possibly with per-slide failures)
	ExitGeneral   = 1 // General/unexpected error, including all-slides-failed
	ExitUsage     = 2 // Invalid flags, config, range, or worker count
	ExitIO        = 3 // File not found, permission denied
	ExitRender    = 4 // Rendering engine errors
	ExitCancelled = 130
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, slideforge.ErrCancelled) ||
		errors.Is(err, context.Canceled) {
		return ExitCancelled
	}

	// Engine errors (exit 4)
	if errors.Is(err, slideforge.ErrBrowserConnect) ||
		errors.Is(err, slideforge.ErrPageCreate) ||
		errors.Is(err, slideforge.ErrPageLoad) ||
		errors.Is(err, slideforge.ErrCapture) ||
		errors.Is(err, slideforge.ErrEngineMissing) {
		return ExitRender
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, slideforge.ErrNoSlides) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrBadFlags) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, slideforge.ErrInvalidRange) ||
		errors.Is(err, slideforge.ErrEmptySelection) ||
		errors.Is(err, slideforge.ErrInvalidWorkers) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrEmptyConfigName) {
		return ExitUsage
	}

	return ExitGeneral
}
