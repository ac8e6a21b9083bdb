package slideforge

import "time"

// Canonical slide frame in CSS pixels. Every capture is clipped to this
// frame so decks stay uniform regardless of per-slide content overflow.
const (
	FrameWidth  = 1280
	FrameHeight = 720

	// frameDPI converts the pixel frame to the inch dimensions Chrome's
	// print-to-PDF API expects.
	frameDPI = 96.0
)

// ArtifactKind identifies the format of an intermediate single-page artifact.
type ArtifactKind string

// Artifact kinds produced by renderers.
const (
	ArtifactPDF ArtifactKind = "pdf"
	ArtifactPNG ArtifactKind = "png"
)

// SlideInput identifies one source slide document. Immutable once resolved.
type SlideInput struct {
	Path     string // file path of the slide document
	Key      int    // first integer found in the filename
	HasKey   bool   // false when the filename contains no digits
	Position int    // position in the resolved slide set
}

// RenderTask pairs a slide with its merge index. Created per slide by an
// aggregator, consumed by the render invoker, never persisted.
type RenderTask struct {
	Slide SlideInput
	Index int
}

// RenderResult is the tagged outcome of one RenderTask: a stored artifact
// on success, an error on failure. Exactly one result is produced per task.
type RenderResult struct {
	Index    int
	Artifact *Artifact
	Err      error
}

// Succeeded reports whether the task produced an artifact.
func (r RenderResult) Succeeded() bool {
	return r.Err == nil
}

// Option configures a renderer.
type Option func(*rendererConfig)

// rendererConfig holds shared renderer settings.
type rendererConfig struct {
	timeout time.Duration
}

// defaultRenderTimeout bounds how long a single slide may take to render.
const defaultRenderTimeout = 30 * time.Second

// WithTimeout sets the per-slide render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("slideforge: WithTimeout duration must be positive")
	}
	return func(c *rendererConfig) {
		c.timeout = d
	}
}
