package slideforge

import (
	"context"
	"fmt"
	"sync"
)

// RunSequential renders the slide set one task at a time in index order,
// appending each page to the sink as soon as it is produced. Per-slide
// failures are recorded in the report and skipped; the run only fails as
// a whole when no slide succeeds or the context is cancelled.
func RunSequential(ctx context.Context, set *SlideSet, r Renderer, sink Sink, store *ArtifactStore) (*Report, error) {
	report := &Report{Total: set.Len()}

	for i := 0; i < set.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, abortRun(sink, store, err)
		}

		task := RenderTask{Slide: set.At(i), Index: i}
		result := renderTask(ctx, r, store, task)
		appendResult(report, sink, store, set, result)
	}

	return finishRun(ctx, report, sink, store)
}

// RunParallel renders the slide set with a fixed number of workers drawing
// renderers from the pool. Workers only render; results land in an
// index-addressed slice and the merge replays them in index order after
// all workers finish, so output page order never depends on scheduling.
func RunParallel(ctx context.Context, set *SlideSet, pool *RendererPool, sink Sink, store *ArtifactStore, workers int) (*Report, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}

	n := set.Len()
	if workers > n {
		workers = n
	}

	jobs := make(chan RenderTask)
	results := make([]RenderResult, n)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range jobs {
				results[task.Index] = runPooled(ctx, pool, store, task)
			}
		}()
	}

	cancelled := false
feed:
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			cancelled = true
			break feed
		case jobs <- RenderTask{Slide: set.At(i), Index: i}:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled {
		return nil, abortRun(sink, store, ctx.Err())
	}

	report := &Report{Total: n}
	for i := 0; i < n; i++ {
		appendResult(report, sink, store, set, results[i])
	}

	return finishRun(ctx, report, sink, store)
}

// runPooled renders one task with a renderer borrowed from the pool.
// Acquire failures become per-slide failures like any engine error.
func runPooled(ctx context.Context, pool *RendererPool, store *ArtifactStore, task RenderTask) RenderResult {
	r, err := pool.Acquire(ctx)
	if err != nil {
		return RenderResult{Index: task.Index, Err: fmt.Errorf("%w: %v", ErrRenderFailed, err)}
	}
	defer pool.Release(r)

	return renderTask(ctx, r, store, task)
}

// appendResult folds one render result into the report and the sink.
// Appended artifacts must outlive the append: sinks merge their recorded
// files at Finalize, so only rejected artifacts are released here and the
// rest are swept by finishRun after the sink is done with them.
func appendResult(report *Report, sink Sink, store *ArtifactStore, set *SlideSet, result RenderResult) {
	path := set.At(result.Index).Path

	if !result.Succeeded() {
		report.addFailure(result.Index, path, result.Err)
		return
	}

	if err := sink.AppendPage(result.Artifact); err != nil {
		store.Release(result.Index)
		report.addFailure(result.Index, path, err)
		return
	}
	report.Succeeded++
}

// abortRun tears down a cancelled run: no output file, no leftover artifacts.
func abortRun(sink Sink, store *ArtifactStore, cause error) error {
	_ = sink.Discard()
	store.ReleaseAll()
	return fmt.Errorf("%w: %v", ErrCancelled, cause)
}

// finishRun ends a completed run. Zero successes discards the sink and
// fails hard; otherwise the sink finalizes into the output document.
func finishRun(ctx context.Context, report *Report, sink Sink, store *ArtifactStore) (*Report, error) {
	defer store.ReleaseAll()

	if err := ctx.Err(); err != nil {
		_ = sink.Discard()
		return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	if report.Succeeded == 0 {
		_ = sink.Discard()
		return report, fmt.Errorf("%w: 0/%d slides", ErrAllSlidesFailed, report.Total)
	}

	if err := sink.Finalize(); err != nil {
		return report, err
	}
	return report, nil
}
