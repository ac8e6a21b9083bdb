package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	slideforge "github.com/alnah/go-slideforge"
)

// runPDFToDeck converts an existing PDF into a slide deck.
func runPDFToDeck(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBridgeFlags("pdf2deck", args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadFlags, err)
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: pass a PDF file", ErrNoInput)
	}

	in := positional[0]
	out := bridgeOutputPath(flags.output, in, "pptx")

	if !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "Converting %s to %s\n", in, out)
	}
	return slideforge.PDFToDeck(ctx, env.Runner, in, out)
}

// runDeckToPDF converts a slide deck into a PDF.
func runDeckToPDF(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBridgeFlags("deck2pdf", args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadFlags, err)
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: pass a deck file", ErrNoInput)
	}

	in := positional[0]
	out := bridgeOutputPath(flags.output, in, "pdf")

	if !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "Converting %s to %s\n", in, out)
	}
	return slideforge.DeckToPDF(ctx, env.Runner, in, out)
}

// bridgeOutputPath derives the output path from the input when -o is not
// given: same stem, new extension.
func bridgeOutputPath(output, input, format string) string {
	if output != "" {
		if !strings.EqualFold(filepath.Ext(output), "."+format) {
			output += "." + format
		}
		return output
	}
	stem := strings.TrimSuffix(input, filepath.Ext(input))
	return stem + "." + format
}
