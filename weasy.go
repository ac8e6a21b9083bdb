package slideforge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-slideforge/internal/fileutil"
)

// Compile-time interface check
var _ Renderer = (*WeasyPrintRenderer)(nil)

// frameStylesheet forces WeasyPrint onto the canonical slide frame.
// WeasyPrint has no viewport concept; page geometry comes from @page.
const frameStylesheet = `@page { size: 1280px 720px; margin: 0; }
html, body { width: 1280px; height: 720px; margin: 0; overflow: hidden; }
`

// WeasyPrintRenderer renders slides by invoking the weasyprint executable
// per slide. PNG artifacts additionally rasterize the single-page PDF
// through pdftoppm.
type WeasyPrintRenderer struct {
	runner  CommandRunner
	kind    ArtifactKind
	timeout time.Duration
}

// NewWeasyPrintRenderer creates a WeasyPrint-backed renderer producing
// artifacts of the given kind. It fails early when the weasyprint
// executable (or pdftoppm, for PNG output) is not on PATH.
func NewWeasyPrintRenderer(runner CommandRunner, kind ArtifactKind, opts ...Option) (*WeasyPrintRenderer, error) {
	if kind != ArtifactPDF && kind != ArtifactPNG {
		panic(fmt.Sprintf("slideforge: unknown artifact kind %q", kind))
	}

	if err := runner.LookPath("weasyprint"); err != nil {
		return nil, fmt.Errorf("%w: weasyprint: %v", ErrEngineMissing, err)
	}
	if kind == ArtifactPNG {
		if err := runner.LookPath("pdftoppm"); err != nil {
			return nil, fmt.Errorf("%w: pdftoppm: %v", ErrEngineMissing, err)
		}
	}

	cfg := rendererConfig{timeout: defaultRenderTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &WeasyPrintRenderer{runner: runner, kind: kind, timeout: cfg.timeout}, nil
}

// Kind reports the artifact format this renderer produces.
func (r *WeasyPrintRenderer) Kind() ArtifactKind {
	return r.kind
}

// Close is a no-op; each render is an independent process.
func (r *WeasyPrintRenderer) Close() error {
	return nil
}

// Render converts one slide to a single-page PDF via weasyprint, then
// rasterizes it when the renderer produces PNG artifacts.
func (r *WeasyPrintRenderer) Render(ctx context.Context, slide SlideInput) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cssPath, cleanupCSS, err := fileutil.WriteTempFile(frameStylesheet, "css")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}
	defer cleanupCSS()

	workDir, err := os.MkdirTemp("", "slideforge-weasy-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	pdfPath := filepath.Join(workDir, "slide.pdf")
	_, stderr, err := r.runner.Run(ctx, "weasyprint", "-s", cssPath, slide.Path, pdfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: weasyprint: %s: %v", ErrCapture, stderr, err)
	}

	if r.kind == ArtifactPDF {
		data, err := os.ReadFile(pdfPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCapture, err)
		}
		return data, nil
	}

	pngBase := filepath.Join(workDir, "slide")
	_, stderr, err = r.runner.Run(ctx, "pdftoppm", "-png", "-r", "150", "-singlefile", pdfPath, pngBase)
	if err != nil {
		return nil, fmt.Errorf("%w: pdftoppm: %s: %v", ErrCapture, stderr, err)
	}

	data, err := os.ReadFile(pngBase + ".png")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}
	return data, nil
}
