package slideforge

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/alnah/go-slideforge/internal/deck"
)

func TestPDFToDeck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "in.pdf")
	writeSinglePagePDF(t, pdfPath, "page 1")
	outPath := filepath.Join(dir, "out.pptx")

	// The fake pdftoppm writes one PNG per page with the real tool's
	// prefix-N.png naming.
	runner := &fakeRunner{handle: func(name string, args []string) error {
		if name != "pdftoppm" {
			return fmt.Errorf("unexpected command %s", name)
		}
		prefix := args[len(args)-1]
		writeTestPNG(t, prefix+"-1.png", color.White)
		return nil
	}}

	if err := PDFToDeck(context.Background(), runner, pdfPath, outPath); err != nil {
		t.Fatalf("PDFToDeck() error: %v", err)
	}

	slides, err := deck.Read(outPath)
	if err != nil {
		t.Fatalf("reading produced deck: %v", err)
	}
	if len(slides) != 1 || slides[0].Image == nil {
		t.Errorf("deck slides = %+v, want 1 image slide", slides)
	}
}

func TestPDFToDeck_MissingPdftoppm(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{missing: map[string]bool{"pdftoppm": true}}
	err := PDFToDeck(context.Background(), runner, "in.pdf", "out.pptx")
	if !errors.Is(err, ErrEngineMissing) {
		t.Errorf("PDFToDeck() error = %v, want ErrEngineMissing", err)
	}
}

func TestPDFToDeck_InvalidInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.pdf")
	if err := os.WriteFile(bad, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{}
	err := PDFToDeck(context.Background(), runner, bad, filepath.Join(dir, "out.pptx"))
	if !errors.Is(err, ErrBridgeFailed) {
		t.Errorf("PDFToDeck() error = %v, want ErrBridgeFailed", err)
	}
}

func TestSortByPageNumber(t *testing.T) {
	t.Parallel()

	images := []string{"/tmp/x/page-10.png", "/tmp/x/page-2.png", "/tmp/x/page-1.png"}
	sortByPageNumber(images)

	want := []string{"/tmp/x/page-1.png", "/tmp/x/page-2.png", "/tmp/x/page-10.png"}
	for i := range want {
		if images[i] != want[i] {
			t.Errorf("images[%d] = %s, want %s", i, images[i], want[i])
		}
	}
}

// writeTestDeck builds a small deck container from generated PNGs.
func writeTestDeck(t *testing.T, dir string, n int) string {
	t.Helper()

	var images []string
	for i := 0; i < n; i++ {
		p := filepath.Join(dir, fmt.Sprintf("img-%d.png", i))
		writeTestPNG(t, p, color.RGBA{G: uint8(60 * i), A: 255})
		images = append(images, p)
	}

	deckPath := filepath.Join(dir, "deck.pptx")
	if err := deck.Write(deckPath, images); err != nil {
		t.Fatalf("writing test deck: %v", err)
	}
	return deckPath
}

func TestDeckToPDF_DegradedPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	deckPath := writeTestDeck(t, dir, 2)
	outPath := filepath.Join(dir, "out.pdf")

	// No soffice on PATH forces the degraded path.
	runner := &fakeRunner{missing: map[string]bool{"soffice": true}}
	if err := DeckToPDF(context.Background(), runner, deckPath, outPath); err != nil {
		t.Fatalf("DeckToPDF() error: %v", err)
	}

	conf := model.NewDefaultConfiguration()
	if err := api.ValidateFile(outPath, conf); err != nil {
		t.Fatalf("degraded output is not a valid PDF: %v", err)
	}
	n, err := api.PageCountFile(outPath)
	if err != nil {
		t.Fatalf("PageCountFile() error: %v", err)
	}
	if n != 2 {
		t.Errorf("degraded output has %d pages, want 2", n)
	}
	if len(runner.calls) != 0 {
		t.Errorf("commands run = %v, want none on degraded path", runner.calls)
	}
}

func TestDeckToPDF_SofficeFailureFallsBack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	deckPath := writeTestDeck(t, dir, 1)
	outPath := filepath.Join(dir, "out.pdf")

	// soffice is present but fails; the degraded path must still produce
	// a valid output.
	runner := &fakeRunner{handle: func(name string, _ []string) error {
		if name == "soffice" {
			return errors.New("exit status 77")
		}
		return nil
	}}
	if err := DeckToPDF(context.Background(), runner, deckPath, outPath); err != nil {
		t.Fatalf("DeckToPDF() error: %v", err)
	}

	if err := api.ValidateFile(outPath, model.NewDefaultConfiguration()); err != nil {
		t.Fatalf("fallback output is not a valid PDF: %v", err)
	}
}

func TestDeckToPDF_MissingDeck(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{missing: map[string]bool{"soffice": true}}
	err := DeckToPDF(context.Background(), runner, filepath.Join(t.TempDir(), "nope.pptx"), "out.pdf")
	if !errors.Is(err, ErrBridgeFailed) {
		t.Errorf("DeckToPDF() error = %v, want ErrBridgeFailed", err)
	}
}

func TestWrapText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{
			name:  "fits on one line",
			in:    "short text",
			width: 20,
			want:  []string{"short text"},
		},
		{
			name:  "wraps on word boundary",
			in:    "alpha beta gamma delta",
			width: 11,
			want:  []string{"alpha beta", "gamma delta"},
		},
		{
			name:  "long word gets own line",
			in:    "a verylongwordthatcannotbreak b",
			width: 10,
			want:  []string{"a", "verylongwordthatcannotbreak", "b"},
		},
		{
			name:  "empty input",
			in:    "   ",
			width: 10,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := wrapText(tt.in, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("wrapText() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}

	// No line exceeds the width unless it is a single unbreakable word.
	for _, line := range wrapText(strings.Repeat("word ", 50), 20) {
		if len(line) > 20 && strings.Contains(line, " ") {
			t.Errorf("line %q exceeds width with a break available", line)
		}
	}
}
