package slideforge

import (
	"context"
	"fmt"
)

// Renderer turns one slide document into the bytes of a single-page
// artifact. Implementations own their engine lifecycle; Close releases it.
type Renderer interface {
	// Render produces the artifact bytes for one slide. It must honor
	// ctx cancellation and bound its own execution time.
	Render(ctx context.Context, slide SlideInput) ([]byte, error)
	// Kind reports the artifact format this renderer produces.
	Kind() ArtifactKind
	// Close releases the underlying engine.
	Close() error
}

// renderTask executes one task against a renderer and stores the result.
// It is the boundary between rendering engines and aggregators: every
// engine error, timeout, or panic becomes a failed RenderResult wrapping
// ErrRenderFailed, and never an aggregator-visible error type.
func renderTask(ctx context.Context, r Renderer, store *ArtifactStore, task RenderTask) (result RenderResult) {
	result.Index = task.Index

	defer func() {
		if rec := recover(); rec != nil {
			result.Artifact = nil
			result.Err = fmt.Errorf("%w: renderer panic: %v", ErrRenderFailed, rec)
		}
	}()

	data, err := r.Render(ctx, task.Slide)
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrRenderFailed, err)
		return result
	}

	artifact, err := store.Put(task.Index, r.Kind(), data)
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrRenderFailed, err)
		return result
	}

	result.Artifact = artifact
	return result
}
