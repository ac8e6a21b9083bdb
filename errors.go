package slideforge

import "errors"

// Sentinel errors for library operations.
var (
	// Input errors. Fatal before any rendering happens.
	ErrNoSlides       = errors.New("no slide documents found")
	ErrInvalidRange   = errors.New("invalid slide range")
	ErrEmptySelection = errors.New("slide range selects no slides")
	ErrInvalidWorkers = errors.New("invalid worker count")

	// Per-slide failures. Recorded in the report, never fatal on their own.
	ErrRenderFailed = errors.New("slide render failed")
	ErrMergeFailed  = errors.New("failed to append page to output")

	// Run-level failures.
	ErrAllSlidesFailed = errors.New("no slides were successfully converted")
	ErrCancelled       = errors.New("run cancelled")

	// Rendering engine errors. Converted to ErrRenderFailed at the
	// invoker boundary so engine-specific types never reach the aggregators.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load slide document")
	ErrCapture        = errors.New("failed to capture slide")
	ErrEngineMissing  = errors.New("rendering engine not available")

	// Pool errors.
	ErrPoolClosed = errors.New("renderer pool closed")

	// Sink and artifact errors.
	ErrArtifactKind  = errors.New("artifact kind does not match sink")
	ErrSinkFinalized = errors.New("sink already finalized")
	ErrNoPages       = errors.New("no pages appended to sink")

	// Format bridge errors.
	ErrBridgeFailed = errors.New("format conversion failed")
)
