package slideforge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// SlideSet is an ordered sequence of slide inputs, unique by path.
// The sequence order at the end of resolution is exactly the order in
// which pages must appear in the final output.
type SlideSet struct {
	slides []SlideInput
}

// Len returns the number of slides in the set.
func (s *SlideSet) Len() int {
	return len(s.slides)
}

// At returns the slide at index i.
func (s *SlideSet) At(i int) SlideInput {
	return s.slides[i]
}

// Slides returns the ordered slides. Callers must not mutate the result.
func (s *SlideSet) Slides() []SlideInput {
	return s.slides
}

// Resolve discovers slide documents (.html, .htm) directly inside dir and
// orders them naturally: the first run of decimal digits in the filename is
// the ordering key, files without digits sort last, ties break by filename.
// This yields page1, page2, ..., page10 rather than lexical page1, page10.
// Subdirectories are not searched.
func Resolve(dir string) (*SlideSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSlides, err)
	}

	var slides []SlideInput
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".html" && ext != ".htm" {
			continue
		}
		key, ok := orderKey(e.Name())
		slides = append(slides, SlideInput{
			Path:   filepath.Join(dir, e.Name()),
			Key:    key,
			HasKey: ok,
		})
	}

	if len(slides) == 0 {
		return nil, fmt.Errorf("%w: no .html files in %s", ErrNoSlides, dir)
	}

	sort.SliceStable(slides, func(i, j int) bool {
		return slideLess(slides[i], slides[j])
	})
	for i := range slides {
		slides[i].Position = i
	}

	return &SlideSet{slides: slides}, nil
}

// slideLess orders keyed slides before keyless ones, keyed slides by key,
// and breaks every tie by filename.
func slideLess(a, b SlideInput) bool {
	switch {
	case a.HasKey && !b.HasKey:
		return true
	case !a.HasKey && b.HasKey:
		return false
	case a.HasKey && b.HasKey && a.Key != b.Key:
		return a.Key < b.Key
	default:
		return filepath.Base(a.Path) < filepath.Base(b.Path)
	}
}

// orderKey extracts the first run of decimal digits in name as an integer.
// Returns false when the name has no digits or the run overflows int, in
// which case the file sorts after all keyed files.
func orderKey(name string) (int, bool) {
	start := -1
	for i, r := range name {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return parseKey(name[start:i])
		}
	}
	if start >= 0 {
		return parseKey(name[start:])
	}
	return 0, false
}

func parseKey(digits string) (int, bool) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Select narrows the set to the 1-based positions described by spec,
// preserving set order. Grammar:
//
//	"3"      single position
//	"2-5"    inclusive range, clamped to the set bounds; a > b is empty
//	"1,3,5"  explicit positions, out-of-bounds entries silently dropped
//
// Malformed input returns ErrInvalidRange; a selection that matches no
// slides returns ErrEmptySelection. It never falls back to the full set.
func (s *SlideSet) Select(spec string) (*SlideSet, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return s, nil
	}

	indices, err := parseRangeSpec(spec, s.Len())
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: %q over %d slide(s)", ErrEmptySelection, spec, s.Len())
	}

	subset := make([]SlideInput, 0, len(indices))
	for _, i := range indices {
		subset = append(subset, s.slides[i])
	}
	return &SlideSet{slides: subset}, nil
}

// parseRangeSpec parses spec into ascending 0-based indices within [0, n).
func parseRangeSpec(spec string, n int) ([]int, error) {
	if strings.Contains(spec, ",") {
		return parsePositionList(spec, n)
	}
	if strings.Contains(spec, "-") {
		return parseDashRange(spec, n)
	}

	p, err := parsePosition(spec)
	if err != nil {
		return nil, err
	}
	if p < 1 || p > n {
		return nil, nil
	}
	return []int{p - 1}, nil
}

func parsePositionList(spec string, n int) ([]int, error) {
	seen := make(map[int]bool)
	var indices []int
	for _, token := range strings.Split(spec, ",") {
		p, err := parsePosition(token)
		if err != nil {
			return nil, err
		}
		if p < 1 || p > n || seen[p] {
			continue
		}
		seen[p] = true
		indices = append(indices, p-1)
	}
	// Selection must preserve slide-set order regardless of list order.
	sort.Ints(indices)
	return indices, nil
}

func parseDashRange(spec string, n int) ([]int, error) {
	parts := strings.SplitN(spec, "-", 2)
	a, err := parsePosition(parts[0])
	if err != nil {
		return nil, err
	}
	b, err := parsePosition(parts[1])
	if err != nil {
		return nil, err
	}

	if a < 1 {
		a = 1
	}
	if b > n {
		b = n
	}

	var indices []int
	for p := a; p <= b; p++ {
		indices = append(indices, p-1)
	}
	return indices, nil
}

func parsePosition(token string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidRange, strings.TrimSpace(token))
	}
	return p, nil
}
