package slideforge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/alnah/go-slideforge/internal/deck"
	"github.com/alnah/go-slideforge/internal/fileutil"
)

// rasterDPI is the resolution used when rasterizing PDF pages to slide
// images. 150 dpi keeps decks readable without ballooning file size.
const rasterDPI = "150"

// PDFToDeck converts an existing PDF into a slide deck: every page becomes
// one full-bleed image slide. Rasterization runs through pdftoppm.
func PDFToDeck(ctx context.Context, runner CommandRunner, pdfPath, outPath string) error {
	if err := runner.LookPath("pdftoppm"); err != nil {
		return fmt.Errorf("%w: pdftoppm: %v", ErrEngineMissing, err)
	}

	conf := model.NewDefaultConfiguration()
	pages, err := api.PageCountFile(pdfPath)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrBridgeFailed, pdfPath, err)
	}
	if err := api.ValidateFile(pdfPath, conf); err != nil {
		return fmt.Errorf("%w: %s is not a valid PDF: %v", ErrBridgeFailed, pdfPath, err)
	}

	workDir, err := os.MkdirTemp("", "slideforge-bridge-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBridgeFailed, err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	prefix := filepath.Join(workDir, "page")
	_, stderr, err := runner.Run(ctx, "pdftoppm", "-png", "-r", rasterDPI, pdfPath, prefix)
	if err != nil {
		return fmt.Errorf("%w: pdftoppm: %s: %v", ErrBridgeFailed, stderr, err)
	}

	images, err := filepath.Glob(prefix + "-*.png")
	if err != nil || len(images) == 0 {
		return fmt.Errorf("%w: pdftoppm produced no pages for %d-page input", ErrBridgeFailed, pages)
	}
	sortByPageNumber(images)

	tmp := outPath + ".tmp"
	if err := deck.Write(tmp, images); err != nil {
		return fmt.Errorf("%w: %v", ErrBridgeFailed, err)
	}
	if err := os.Rename(tmp, outPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrBridgeFailed, err)
	}
	return nil
}

// sortByPageNumber orders rasterized page files numerically. pdftoppm pads
// page numbers to a fixed width, but numeric ordering is safer than
// trusting the padding across versions.
func sortByPageNumber(images []string) {
	sort.Slice(images, func(i, j int) bool {
		a, aok := orderKey(pageSuffix(images[i]))
		b, bok := orderKey(pageSuffix(images[j]))
		if aok && bok && a != b {
			return a < b
		}
		return images[i] < images[j]
	})
}

// pageSuffix strips the shared prefix so the page number is the first
// digit run seen by orderKey.
func pageSuffix(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndex(base, "-"); i >= 0 {
		return base[i+1:]
	}
	return base
}

// DeckToPDF converts a slide deck into a PDF. It prefers LibreOffice
// (soffice) for a faithful conversion; when soffice is unavailable or
// fails, it falls back to a degraded rendition built from the deck's
// embedded images and text runs.
func DeckToPDF(ctx context.Context, runner CommandRunner, deckPath, outPath string) error {
	if runner.LookPath("soffice") == nil {
		if err := sofficeConvert(ctx, runner, deckPath, outPath); err == nil {
			return nil
		}
		// soffice present but failed; the degraded path still applies.
	}

	if err := degradedDeckToPDF(deckPath, outPath); err != nil {
		return fmt.Errorf("%w: %v", ErrBridgeFailed, err)
	}
	return nil
}

// sofficeConvert runs LibreOffice headless and moves its output into place.
// soffice only writes <input stem>.pdf into --outdir.
func sofficeConvert(ctx context.Context, runner CommandRunner, deckPath, outPath string) error {
	workDir, err := os.MkdirTemp("", "slideforge-soffice-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	_, stderr, err := runner.Run(ctx, "soffice", "--headless", "--convert-to", "pdf", "--outdir", workDir, deckPath)
	if err != nil {
		return fmt.Errorf("soffice: %s: %w", stderr, err)
	}

	stem := strings.TrimSuffix(filepath.Base(deckPath), filepath.Ext(deckPath))
	produced := filepath.Join(workDir, stem+".pdf")
	if !fileutil.FileExists(produced) {
		return fmt.Errorf("soffice produced no output for %s", deckPath)
	}

	// Stage next to the destination so a failed copy never clobbers
	// output from an earlier run.
	tmp := outPath + ".tmp"
	if err := fileutil.CopyFile(produced, tmp); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, outPath)
}

// textWrapWidth is the naive character wrap for degraded text pages.
const textWrapWidth = 90

// degradedDeckToPDF rebuilds a PDF from the deck container itself: slides
// with an embedded image become full-bleed image pages, slides without one
// become plain text pages. Layout fidelity is explicitly not preserved.
func degradedDeckToPDF(deckPath, outPath string) error {
	slides, err := deck.Read(deckPath)
	if err != nil {
		return err
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: FrameWidth, Ht: FrameHeight},
	})
	pdf.SetAutoPageBreak(false, 0)

	for _, slide := range slides {
		pdf.AddPage()
		if slide.Image != nil {
			addImagePage(pdf, slide)
			continue
		}
		addTextPage(pdf, slide)
	}

	tmp := outPath + ".tmp"
	if err := pdf.OutputFileAndClose(tmp); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, outPath)
}

func addImagePage(pdf *fpdf.Fpdf, slide deck.Slide) {
	name := fmt.Sprintf("slide-%d", slide.Index)
	opts := fpdf.ImageOptions{ImageType: strings.ToUpper(slide.ImageExt)}
	pdf.RegisterImageOptionsReader(name, opts, strings.NewReader(string(slide.Image)))
	pdf.ImageOptions(name, 0, 0, FrameWidth, FrameHeight, false, opts, 0, "")
}

func addTextPage(pdf *fpdf.Fpdf, slide deck.Slide) {
	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetXY(48, 48)
	pdf.Cell(0, 32, fmt.Sprintf("Slide %d", slide.Index+1))

	pdf.SetFont("Helvetica", "", 16)
	y := 110.0
	for _, run := range slide.Text {
		for _, line := range wrapText(run, textWrapWidth) {
			if y > FrameHeight-48 {
				return
			}
			pdf.SetXY(48, y)
			pdf.Cell(0, 20, line)
			y += 22
		}
	}
}

// wrapText breaks s into lines of at most width characters on word
// boundaries. Words longer than width get a line of their own.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
