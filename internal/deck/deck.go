// Package deck writes and reads minimal 16x9 slide deck containers
// (PPTX). The writer produces one full-bleed image per slide; the reader
// extracts slide images and text runs for degraded conversions.
package deck

import (
	"archive/zip"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed parts/*.xml parts/*.xml.rels
var parts embed.FS

// Sentinel errors for deck operations.
var (
	ErrNoImages     = errors.New("deck requires at least one slide image")
	ErrUnknownImage = errors.New("unsupported slide image format")
)

// presentationData feeds the presentation.xml template.
type presentationData struct {
	Slides []presentationSlide
	CX     int
	CY     int
}

type presentationSlide struct {
	SlideID int
	RelID   string
}

// slideData feeds the per-slide templates.
type slideData struct {
	N        int
	CX       int
	CY       int
	ImageExt string
}

// Write creates a deck at outPath with one slide per image, in order.
// Supported image formats: PNG and JPEG, judged by file extension.
func Write(outPath string, imagePaths []string) (err error) {
	if len(imagePaths) == 0 {
		return ErrNoImages
	}

	refs := make([]slideRef, len(imagePaths))
	for i, p := range imagePaths {
		ext, extErr := mediaExt(p)
		if extErr != nil {
			return extErr
		}
		refs[i] = slideRef{N: i + 1, RelID: fmt.Sprintf("rId%d", i+2), ImageExt: ext}
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating deck file: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(outPath)
		}
	}()

	zw := zip.NewWriter(out)

	if err = writeSkeleton(zw, refs); err != nil {
		return err
	}

	for i, ref := range refs {
		if err = writeSlide(zw, ref); err != nil {
			return err
		}
		if err = writeMedia(zw, ref, imagePaths[i]); err != nil {
			return err
		}
	}

	return zw.Close()
}

// writeSkeleton emits the fixed container parts plus the dynamic
// presentation parts that list the slides.
func writeSkeleton(zw *zip.Writer, refs []slideRef) error {
	if err := writeTemplate(zw, "[Content_Types].xml", contentTypesTmpl, refs); err != nil {
		return err
	}
	if err := writeRaw(zw, "_rels/.rels", []byte(rootRels)); err != nil {
		return err
	}

	pres := presentationData{CX: slideCX, CY: slideCY}
	for _, ref := range refs {
		pres.Slides = append(pres.Slides, presentationSlide{
			SlideID: 255 + ref.N,
			RelID:   ref.RelID,
		})
	}
	if err := writeTemplate(zw, "ppt/presentation.xml", presentationTmpl, pres); err != nil {
		return err
	}
	if err := writeTemplate(zw, "ppt/_rels/presentation.xml.rels", presentationRelsTmpl, refs); err != nil {
		return err
	}

	static := map[string]string{
		"ppt/slideMasters/slideMaster1.xml":            "parts/slideMaster1.xml",
		"ppt/slideMasters/_rels/slideMaster1.xml.rels": "parts/slideMaster1.xml.rels",
		"ppt/slideLayouts/slideLayout1.xml":            "parts/slideLayout1.xml",
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels": "parts/slideLayout1.xml.rels",
		"ppt/theme/theme1.xml":                         "parts/theme1.xml",
	}
	for name, src := range static {
		data, err := parts.ReadFile(src)
		if err != nil {
			return fmt.Errorf("reading embedded part %s: %w", src, err)
		}
		if err := writeRaw(zw, name, data); err != nil {
			return err
		}
	}
	return nil
}

// writeSlide emits one slide part and its relationships.
func writeSlide(zw *zip.Writer, ref slideRef) error {
	data := slideData{N: ref.N, CX: slideCX, CY: slideCY, ImageExt: ref.ImageExt}
	name := fmt.Sprintf("ppt/slides/slide%d.xml", ref.N)
	if err := writeTemplate(zw, name, slideTmpl, data); err != nil {
		return err
	}
	relsName := fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", ref.N)
	return writeTemplate(zw, relsName, slideRelsTmpl, data)
}

// writeMedia copies one source image into the media folder.
func writeMedia(zw *zip.Writer, ref slideRef, imagePath string) error {
	in, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("opening slide image: %w", err)
	}
	defer func() { _ = in.Close() }()

	name := fmt.Sprintf("ppt/media/image%d.%s", ref.N, ref.ImageExt)
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating part %s: %w", name, err)
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("writing part %s: %w", name, err)
	}
	return nil
}

func writeTemplate(zw *zip.Writer, name string, tmpl *template.Template, data any) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating part %s: %w", name, err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering part %s: %w", name, err)
	}
	return nil
}

func writeRaw(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating part %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing part %s: %w", name, err)
	}
	return nil
}

// mediaExt maps a source image path to its media part extension.
func mediaExt(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownImage, path)
	}
}
