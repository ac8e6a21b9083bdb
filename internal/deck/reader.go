package deck

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Slide is one slide read back from a deck container.
type Slide struct {
	Index    int      // 0-based position in the deck
	Image    []byte   // first embedded image, nil when the slide has none
	ImageExt string   // extension of Image (png, jpeg), empty when nil
	Text     []string // text runs in document order
}

var slidePartRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// relationship mirrors the OPC relationship element.
type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type relationships struct {
	Relationships []relationship `xml:"Relationship"`
}

// Read opens a deck container and extracts its slides in presentation
// order. It tolerates decks produced by other tools: slides without an
// embedded image yield their text runs instead.
func Read(deckPath string) ([]Slide, error) {
	zr, err := zip.OpenReader(deckPath)
	if err != nil {
		return nil, fmt.Errorf("opening deck: %w", err)
	}
	defer func() { _ = zr.Close() }()

	files := make(map[string]*zip.File, len(zr.File))
	var slideNames []string
	for _, f := range zr.File {
		files[f.Name] = f
		if slidePartRe.MatchString(f.Name) {
			slideNames = append(slideNames, f.Name)
		}
	}
	if len(slideNames) == 0 {
		return nil, fmt.Errorf("deck has no slides: %s", deckPath)
	}

	sort.Slice(slideNames, func(i, j int) bool {
		return slideNumber(slideNames[i]) < slideNumber(slideNames[j])
	})

	slides := make([]Slide, 0, len(slideNames))
	for i, name := range slideNames {
		slide, err := readSlide(files, name)
		if err != nil {
			return nil, fmt.Errorf("slide %s: %w", name, err)
		}
		slide.Index = i
		slides = append(slides, slide)
	}
	return slides, nil
}

func slideNumber(name string) int {
	m := slidePartRe.FindStringSubmatch(name)
	n, _ := strconv.Atoi(m[1])
	return n
}

func readSlide(files map[string]*zip.File, name string) (Slide, error) {
	var slide Slide

	data, err := readPart(files, name)
	if err != nil {
		return slide, err
	}
	text, err := extractText(data)
	if err != nil {
		return slide, err
	}
	slide.Text = text

	imgPart, err := firstImageTarget(files, name)
	if err != nil {
		return slide, err
	}
	if imgPart == "" {
		return slide, nil
	}

	img, err := readPart(files, imgPart)
	if err != nil {
		return slide, err
	}
	slide.Image = img
	slide.ImageExt = strings.TrimPrefix(path.Ext(imgPart), ".")
	return slide, nil
}

// firstImageTarget resolves the slide's first image relationship to a
// container part name. Returns "" when the slide embeds no image.
func firstImageTarget(files map[string]*zip.File, slideName string) (string, error) {
	relsName := path.Join(path.Dir(slideName), "_rels", path.Base(slideName)+".rels")
	f, ok := files[relsName]
	if !ok {
		return "", nil
	}

	data, err := readZipFile(f)
	if err != nil {
		return "", err
	}

	var rels relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return "", fmt.Errorf("parsing %s: %w", relsName, err)
	}

	for _, rel := range rels.Relationships {
		if !strings.HasSuffix(rel.Type, "/image") {
			continue
		}
		target := path.Clean(path.Join(path.Dir(slideName), rel.Target))
		if _, ok := files[target]; ok {
			return target, nil
		}
	}
	return "", nil
}

// extractText collects the character data of every a:t element.
func extractText(slideXML []byte) ([]string, error) {
	dec := xml.NewDecoder(strings.NewReader(string(slideXML)))

	var runs []string
	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing slide xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				depth++
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				depth--
			}
		case xml.CharData:
			if depth > 0 {
				if s := string(t); strings.TrimSpace(s) != "" {
					runs = append(runs, s)
				}
			}
		}
	}
	return runs, nil
}

func readPart(files map[string]*zip.File, name string) ([]byte, error) {
	f, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("missing part %s", name)
	}
	return readZipFile(f)
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening part %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	return io.ReadAll(rc)
}
