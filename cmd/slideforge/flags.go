package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  string
	format  string
	method  string
	slides  string
	workers int
	timeout string
}

// bridgeFlags holds flags for pdf2deck and deck2pdf.
type bridgeFlags struct {
	common commonFlags
	output string
}

// initFlags holds flags for the init command.
type initFlags struct {
	count int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// parseConvertFlags parses flags for the convert command.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.format, "format", "f", "", "output format: pdf, pptx")
	fs.StringVar(&f.method, "method", "", "render method: chrome, weasyprint")
	fs.StringVarP(&f.slides, "slides", "s", "", "slide range: N, A-B, or a,b,c")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.timeout, "timeout", "", "per-slide render timeout (e.g. 30s)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseBridgeFlags parses flags for pdf2deck and deck2pdf.
func parseBridgeFlags(name string, args []string) (*bridgeFlags, []string, error) {
	f := &bridgeFlags{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output file")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseInitFlags parses flags for the init command.
func parseInitFlags(args []string) (*initFlags, []string, error) {
	f := &initFlags{}
	fs := flag.NewFlagSet("init", flag.ContinueOnError)

	fs.IntVarP(&f.count, "count", "n", 3, "number of template slides to create")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
