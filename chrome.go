package slideforge

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Compile-time interface check
var _ Renderer = (*ChromeRenderer)(nil)

// clampScript pins the document to the canonical slide frame before
// capture so overflowing content never bleeds onto a second page.
const clampScript = `() => {
	const targets = [document.documentElement, document.body];
	const slide = document.querySelector('.slide');
	if (slide) targets.push(slide);
	for (const el of targets) {
		el.style.width = '1280px';
		el.style.height = '720px';
		el.style.margin = '0';
		el.style.overflow = 'hidden';
	}
}`

// ChromeRenderer renders slides in headless Chrome via go-rod. The browser
// launches lazily on first use; rod downloads Chromium on first run when no
// pre-installed binary is configured.
type ChromeRenderer struct {
	browser *rod.Browser
	kind    ArtifactKind
	timeout time.Duration
}

// NewChromeRenderer creates a Chrome-backed renderer producing artifacts
// of the given kind. Panics if kind is not a known artifact kind.
func NewChromeRenderer(kind ArtifactKind, opts ...Option) *ChromeRenderer {
	if kind != ArtifactPDF && kind != ArtifactPNG {
		panic(fmt.Sprintf("slideforge: unknown artifact kind %q", kind))
	}

	cfg := rendererConfig{timeout: defaultRenderTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &ChromeRenderer{kind: kind, timeout: cfg.timeout}
}

// Kind reports the artifact format this renderer produces.
func (r *ChromeRenderer) Kind() ArtifactKind {
	return r.kind
}

// ensureBrowser lazily launches and connects to the browser.
func (r *ChromeRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *ChromeRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// Render opens the slide document in a fresh page, waits for load and for
// web fonts, clamps the frame, and captures a single-page PDF or a PNG
// screenshot depending on the renderer's kind.
func (r *ChromeRenderer) Render(ctx context.Context, slide SlideInput) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(slide.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + abs})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Timeout(timeout)

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Fonts load asynchronously after the load event.
	if _, err := page.Eval(`() => document.fonts.ready`); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if _, err := page.Eval(clampScript); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.kind == ArtifactPNG {
		return r.capturePNG(page)
	}
	return r.capturePDF(page)
}

// capturePDF prints the page as a single borderless 1280x720 PDF page.
func (r *ChromeRenderer) capturePDF(page *rod.Page) ([]byte, error) {
	reader, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(FrameWidth / frameDPI),
		PaperHeight:     floatPtr(FrameHeight / frameDPI),
		MarginTop:       floatPtr(0),
		MarginBottom:    floatPtr(0),
		MarginLeft:      floatPtr(0),
		MarginRight:     floatPtr(0),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrCapture, err)
	}
	return data, nil
}

// capturePNG screenshots the canonical frame at device scale 1.
func (r *ChromeRenderer) capturePNG(page *rod.Page) ([]byte, error) {
	err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             FrameWidth,
		Height:            FrameHeight,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}

	data, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      0,
			Y:      0,
			Width:  FrameWidth,
			Height: FrameHeight,
			Scale:  1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}
	return data, nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
