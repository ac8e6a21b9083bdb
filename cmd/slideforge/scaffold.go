package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-slideforge/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// slideTemplate is the scaffolded slide document. Self-contained: all
// styling inline, sized to the canonical 1280x720 frame.
const slideTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Slide %d</title>
<style>
  html, body {
    margin: 0;
    padding: 0;
    width: 1280px;
    height: 720px;
    overflow: hidden;
  }
  .slide {
    width: 1280px;
    height: 720px;
    box-sizing: border-box;
    padding: 60px 80px;
    background: #ffffff;
    font-family: Helvetica, Arial, sans-serif;
    color: #1a1a2e;
  }
  .slide h1 {
    margin: 0 0 24px 0;
    font-size: 52px;
  }
  .slide p {
    font-size: 28px;
    line-height: 1.5;
  }
</style>
</head>
<body>
<div class="slide">
  <h1>Slide %d</h1>
  <p>Replace this content with your own.</p>
</div>
</body>
</html>
`

// runInit scaffolds numbered template slides in the target directory.
// Existing files are never overwritten.
func runInit(args []string, env *Environment) error {
	flags, positional, err := parseInitFlags(args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadFlags, err)
	}
	if flags.count < 1 {
		return fmt.Errorf("%w: --count must be at least 1, got %d", ErrBadFlags, flags.count)
	}

	dir := "slides"
	if len(positional) > 0 {
		dir = positional[0]
	}

	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("creating slides directory: %w", err)
	}

	created := 0
	for i := 1; i <= flags.count; i++ {
		path := filepath.Join(dir, fmt.Sprintf("slide%d.html", i))
		if fileutil.FileExists(path) {
			fmt.Fprintf(env.Stderr, "Skipping %s (already exists)\n", path)
			continue
		}

		content := fmt.Sprintf(slideTemplate, i, i)
		if err := os.WriteFile(path, []byte(content), filePermissions); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		created++
	}

	fmt.Fprintf(env.Stdout, "Created %d slide(s) in %s\n", created, dir)
	return nil
}
