package slideforge

import (
	"fmt"
	"os"

	"github.com/alnah/go-slideforge/internal/deck"
)

// Compile-time interface check
var _ Sink = (*DeckSink)(nil)

// DeckSink collects PNG artifacts and writes a 16x9 slide deck with one
// full-bleed image per page at Finalize.
type DeckSink struct {
	outPath   string
	images    []string
	finalized bool
}

// NewDeckSink creates a sink that will write the deck to outPath.
func NewDeckSink(outPath string) *DeckSink {
	return &DeckSink{outPath: outPath}
}

// AppendPage records one PNG artifact as the next slide image.
func (s *DeckSink) AppendPage(a *Artifact) error {
	if s.finalized {
		return ErrSinkFinalized
	}
	if a.Kind != ArtifactPNG {
		return fmt.Errorf("%w: got %q, want %q", ErrArtifactKind, a.Kind, ArtifactPNG)
	}

	s.images = append(s.images, a.Path)
	return nil
}

// Finalize writes the deck container to a temporary file next to the
// output path and renames it into place, so the output path never holds
// a partial container and prior output survives a failed write.
func (s *DeckSink) Finalize() error {
	if s.finalized {
		return ErrSinkFinalized
	}
	s.finalized = true

	if len(s.images) == 0 {
		return ErrNoPages
	}

	tmp := s.outPath + ".tmp"
	if err := deck.Write(tmp, s.images); err != nil {
		return fmt.Errorf("%w: %v", ErrMergeFailed, err)
	}
	if err := os.Rename(tmp, s.outPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrMergeFailed, err)
	}
	return nil
}

// Discard drops the recorded images. The output path is only written by a
// successful Finalize, so anything already there belongs to an earlier
// run and is preserved.
func (s *DeckSink) Discard() error {
	s.finalized = true
	s.images = nil
	return nil
}
