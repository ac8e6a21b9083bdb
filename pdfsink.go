package slideforge

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Compile-time interface check
var _ Sink = (*PDFSink)(nil)

// PDFSink merges single-page PDF artifacts into one document. Pages are
// recorded in append order and merged at Finalize, so a corrupt page
// surfaces as a per-slide append failure instead of poisoning the merge.
type PDFSink struct {
	outPath   string
	pages     []string
	conf      *model.Configuration
	finalized bool
}

// NewPDFSink creates a sink that will write the merged document to outPath.
func NewPDFSink(outPath string) *PDFSink {
	return &PDFSink{
		outPath: outPath,
		conf:    model.NewDefaultConfiguration(),
	}
}

// AppendPage validates and records one single-page PDF artifact.
func (s *PDFSink) AppendPage(a *Artifact) error {
	if s.finalized {
		return ErrSinkFinalized
	}
	if a.Kind != ArtifactPDF {
		return fmt.Errorf("%w: got %q, want %q", ErrArtifactKind, a.Kind, ArtifactPDF)
	}

	if err := api.ValidateFile(a.Path, s.conf); err != nil {
		return fmt.Errorf("%w: page %d: %v", ErrMergeFailed, a.Index, err)
	}

	s.pages = append(s.pages, a.Path)
	return nil
}

// Finalize merges the recorded pages into a temporary file next to the
// output path and renames the validated result into place. The output
// path itself never holds a partial or invalid document, and whatever
// was there before stays intact until the merge has been validated.
func (s *PDFSink) Finalize() error {
	if s.finalized {
		return ErrSinkFinalized
	}
	s.finalized = true

	if len(s.pages) == 0 {
		return ErrNoPages
	}

	tmp := s.outPath + ".tmp"
	if err := api.MergeCreateFile(s.pages, tmp, false, s.conf); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrMergeFailed, err)
	}
	if err := api.ValidateFile(tmp, s.conf); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: merged output invalid: %v", ErrMergeFailed, err)
	}
	if err := os.Rename(tmp, s.outPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrMergeFailed, err)
	}
	return nil
}

// Discard drops the recorded pages. The output path is only written by a
// successful Finalize, so anything already there belongs to an earlier
// run and is preserved.
func (s *PDFSink) Discard() error {
	s.finalized = true
	s.pages = nil
	return nil
}
