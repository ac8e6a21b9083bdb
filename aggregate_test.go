package slideforge

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// recordingSink captures appended pages in order without touching disk.
type recordingSink struct {
	pages     []int // artifact indices in append order
	appendErr map[int]error
	finalized bool
	discarded bool
}

var _ Sink = (*recordingSink)(nil)

func newRecordingSink() *recordingSink {
	return &recordingSink{appendErr: map[int]error{}}
}

func (s *recordingSink) AppendPage(a *Artifact) error {
	if err := s.appendErr[a.Index]; err != nil {
		return err
	}
	s.pages = append(s.pages, a.Index)
	return nil
}

func (s *recordingSink) Finalize() error {
	s.finalized = true
	return nil
}

func (s *recordingSink) Discard() error {
	s.discarded = true
	return nil
}

func assertOrdered(t *testing.T, pages []int, want []int) {
	t.Helper()

	if len(pages) != len(want) {
		t.Fatalf("sink pages = %v, want %v", pages, want)
	}
	for i := range pages {
		if pages[i] != want[i] {
			t.Errorf("page %d = index %d, want %d", i, pages[i], want[i])
		}
	}
}

func TestRunSequential_AllSucceed(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	sink := newRecordingSink()
	r := newFakeRenderer(ArtifactPDF)

	report, err := RunSequential(context.Background(), testSet(4), r, sink, store)
	if err != nil {
		t.Fatalf("RunSequential() error: %v", err)
	}
	if report.Succeeded != 4 || report.Failed() {
		t.Errorf("report = %+v, want 4 successes", report)
	}
	assertOrdered(t, sink.pages, []int{0, 1, 2, 3})
	if !sink.finalized {
		t.Error("sink not finalized")
	}
	if store.Count() != 0 {
		t.Errorf("store.Count() = %d, want 0 after run", store.Count())
	}
}

func TestRunSequential_PartialFailureSkipsSlide(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	sink := newRecordingSink()
	r := newFakeRenderer(ArtifactPDF)
	r.fail[1] = errors.New("render exploded")

	report, err := RunSequential(context.Background(), testSet(3), r, sink, store)
	if err != nil {
		t.Fatalf("RunSequential() error: %v", err)
	}
	if report.Succeeded != 2 || len(report.Failures) != 1 {
		t.Fatalf("report = %+v, want 2 successes 1 failure", report)
	}
	if report.Failures[0].Index != 1 {
		t.Errorf("failure index = %d, want 1", report.Failures[0].Index)
	}
	if !errors.Is(report.Failures[0].Reason, ErrRenderFailed) {
		t.Errorf("failure reason = %v, want ErrRenderFailed", report.Failures[0].Reason)
	}
	// Remaining pages keep slide order with the failed one skipped.
	assertOrdered(t, sink.pages, []int{0, 2})
}

func TestRunSequential_AppendFailureRecorded(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	sink := newRecordingSink()
	sink.appendErr[2] = fmt.Errorf("%w: bad page", ErrMergeFailed)
	r := newFakeRenderer(ArtifactPDF)

	report, err := RunSequential(context.Background(), testSet(3), r, sink, store)
	if err != nil {
		t.Fatalf("RunSequential() error: %v", err)
	}
	if report.Succeeded != 2 || len(report.Failures) != 1 {
		t.Fatalf("report = %+v, want 2 successes 1 failure", report)
	}
	if !errors.Is(report.Failures[0].Reason, ErrMergeFailed) {
		t.Errorf("failure reason = %v, want ErrMergeFailed", report.Failures[0].Reason)
	}
	if store.Count() != 0 {
		t.Errorf("store.Count() = %d, want 0 after run", store.Count())
	}
}

func TestRunSequential_ZeroSuccessDiscardsSink(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	sink := newRecordingSink()
	r := newFakeRenderer(ArtifactPDF)
	for i := 0; i < 3; i++ {
		r.fail[i] = errors.New("down")
	}

	report, err := RunSequential(context.Background(), testSet(3), r, sink, store)
	if !errors.Is(err, ErrAllSlidesFailed) {
		t.Fatalf("RunSequential() error = %v, want ErrAllSlidesFailed", err)
	}
	if report == nil || len(report.Failures) != 3 {
		t.Errorf("report = %+v, want 3 failures", report)
	}
	if !sink.discarded || sink.finalized {
		t.Error("sink must be discarded, not finalized")
	}
	if store.Count() != 0 {
		t.Errorf("store.Count() = %d, want 0 after failed run", store.Count())
	}
}

func TestRunSequential_Cancellation(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	sink := newRecordingSink()
	r := newFakeRenderer(ArtifactPDF)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunSequential(ctx, testSet(3), r, sink, store)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("RunSequential() error = %v, want ErrCancelled", err)
	}
	if !sink.discarded {
		t.Error("sink not discarded on cancellation")
	}
	if store.Count() != 0 {
		t.Errorf("store.Count() = %d, want 0 after cancelled run", store.Count())
	}
}

func TestRunParallel_InvalidWorkers(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	pool := NewRendererPool(1, func() (Renderer, error) { return newFakeRenderer(ArtifactPDF), nil })
	defer pool.Close()

	for _, workers := range []int{0, -1} {
		_, err := RunParallel(context.Background(), testSet(2), pool, newRecordingSink(), store, workers)
		if !errors.Is(err, ErrInvalidWorkers) {
			t.Errorf("RunParallel(workers=%d) error = %v, want ErrInvalidWorkers", workers, err)
		}
	}
}

func TestRunParallel_PreservesSlideOrder(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	sink := newRecordingSink()
	pool := NewRendererPool(4, func() (Renderer, error) { return newFakeRenderer(ArtifactPDF), nil })
	defer pool.Close()

	report, err := RunParallel(context.Background(), testSet(12), pool, sink, store, 4)
	if err != nil {
		t.Fatalf("RunParallel() error: %v", err)
	}
	if report.Succeeded != 12 {
		t.Errorf("report.Succeeded = %d, want 12", report.Succeeded)
	}

	want := make([]int, 12)
	for i := range want {
		want[i] = i
	}
	assertOrdered(t, sink.pages, want)
	if store.Count() != 0 {
		t.Errorf("store.Count() = %d, want 0 after run", store.Count())
	}
}

func TestRunParallel_MatchesSequentialOutcome(t *testing.T) {
	t.Parallel()

	// Same failure pattern through both aggregators must produce the same
	// page order and failure set.
	makeRenderer := func() *fakeRenderer {
		r := newFakeRenderer(ArtifactPDF)
		r.fail[1] = errors.New("down")
		r.fail[4] = errors.New("down")
		return r
	}

	seqStore := newTestStore(t)
	seqSink := newRecordingSink()
	seqReport, err := RunSequential(context.Background(), testSet(6), makeRenderer(), seqSink, seqStore)
	if err != nil {
		t.Fatalf("RunSequential() error: %v", err)
	}

	parStore := newTestStore(t)
	parSink := newRecordingSink()
	pool := NewRendererPool(3, func() (Renderer, error) { return makeRenderer(), nil })
	defer pool.Close()
	parReport, err := RunParallel(context.Background(), testSet(6), pool, parSink, parStore, 3)
	if err != nil {
		t.Fatalf("RunParallel() error: %v", err)
	}

	assertOrdered(t, parSink.pages, seqSink.pages)
	if parReport.Succeeded != seqReport.Succeeded || len(parReport.Failures) != len(seqReport.Failures) {
		t.Errorf("parallel report %+v differs from sequential %+v", parReport, seqReport)
	}
}

func TestRunParallel_WorkerPanicBecomesFailure(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	sink := newRecordingSink()
	pool := NewRendererPool(2, func() (Renderer, error) {
		r := newFakeRenderer(ArtifactPDF)
		r.panicOn[1] = true
		return r, nil
	})
	defer pool.Close()

	report, err := RunParallel(context.Background(), testSet(3), pool, sink, store, 2)
	if err != nil {
		t.Fatalf("RunParallel() error: %v", err)
	}
	if report.Succeeded != 2 || len(report.Failures) != 1 {
		t.Fatalf("report = %+v, want 2 successes 1 failure", report)
	}
	if !errors.Is(report.Failures[0].Reason, ErrRenderFailed) {
		t.Errorf("failure reason = %v, want ErrRenderFailed", report.Failures[0].Reason)
	}
}

func TestRunParallel_Cancellation(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	sink := newRecordingSink()
	pool := NewRendererPool(2, func() (Renderer, error) { return newFakeRenderer(ArtifactPDF), nil })
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunParallel(ctx, testSet(8), pool, sink, store, 2)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("RunParallel() error = %v, want ErrCancelled", err)
	}
	if !sink.discarded {
		t.Error("sink not discarded on cancellation")
	}
	if store.Count() != 0 {
		t.Errorf("store.Count() = %d, want 0 after cancelled run", store.Count())
	}
}

func TestRunParallel_FactoryErrorBecomesFailure(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	sink := newRecordingSink()
	pool := NewRendererPool(1, func() (Renderer, error) { return nil, errors.New("no engine") })
	defer pool.Close()

	report, err := RunParallel(context.Background(), testSet(2), pool, sink, store, 1)
	if !errors.Is(err, ErrAllSlidesFailed) {
		t.Fatalf("RunParallel() error = %v, want ErrAllSlidesFailed", err)
	}
	for _, f := range report.Failures {
		if !errors.Is(f.Reason, ErrRenderFailed) {
			t.Errorf("failure reason = %v, want ErrRenderFailed", f.Reason)
		}
	}
}
