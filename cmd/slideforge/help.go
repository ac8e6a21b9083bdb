package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: slideforge <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert HTML slides to PDF or PPTX")
	fmt.Fprintln(w, "  pdf2deck   Convert an existing PDF into a PPTX deck")
	fmt.Fprintln(w, "  deck2pdf   Convert a PPTX deck into a PDF")
	fmt.Fprintln(w, "  list       List slides in conversion order")
	fmt.Fprintln(w, "  init       Scaffold numbered template slides")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'slideforge help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: slideforge convert [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a directory of HTML slides into one PDF or PPTX.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  dir    Slides directory (optional if config has input.slidesDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>    Output file (default slides.pdf / slides.pptx)")
	fmt.Fprintln(w, "  -f, --format <s>       Output format: pdf, pptx")
	fmt.Fprintln(w, "      --method <s>       Render method: chrome, weasyprint")
	fmt.Fprintln(w, "  -s, --slides <spec>    Slide range: N, A-B, or a,b,c (1-based)")
	fmt.Fprintln(w, "  -w, --workers <n>      Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --timeout <d>      Per-slide render timeout (e.g. 30s)")
	fmt.Fprintln(w, "  -c, --config <name>    Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet            Only show errors")
	fmt.Fprintln(w, "  -v, --verbose          Show detailed timing")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "pdf2deck":
		fmt.Fprintln(env.Stdout, "Usage: slideforge pdf2deck <file.pdf> [-o output.pptx]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Convert each PDF page into a full-bleed deck slide (requires pdftoppm).")
	case "deck2pdf":
		fmt.Fprintln(env.Stdout, "Usage: slideforge deck2pdf <file.pptx> [-o output.pdf]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Convert a deck into a PDF. Uses LibreOffice when available,")
		fmt.Fprintln(env.Stdout, "otherwise a degraded rendition from the deck's images and text.")
	case "list":
		fmt.Fprintln(env.Stdout, "Usage: slideforge list [dir]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List slides in conversion order, with sizes.")
	case "init":
		fmt.Fprintln(env.Stdout, "Usage: slideforge init [dir] [-n count]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Scaffold numbered template slides (default: 3 slides in ./slides).")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: slideforge version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: slideforge help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
