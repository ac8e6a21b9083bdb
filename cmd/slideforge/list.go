package main

import (
	"fmt"
	"os"

	slideforge "github.com/alnah/go-slideforge"
)

// runList prints the resolved slide set in conversion order.
func runList(args []string, env *Environment) error {
	flags, positional, err := parseBridgeFlags("list", args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadFlags, err)
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}

	slidesDir, err := resolveSlidesDir(positional, cfg)
	if err != nil {
		return err
	}

	set, err := slideforge.Resolve(slidesDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Stdout, "%d slide(s) in %s:\n", set.Len(), slidesDir)
	for _, slide := range set.Slides() {
		size := "?"
		if info, err := os.Stat(slide.Path); err == nil {
			size = fmt.Sprintf("%.1f KB", float64(info.Size())/1024)
		}
		fmt.Fprintf(env.Stdout, "  %3d. %s (%s)\n", slide.Position+1, slide.Path, size)
	}
	return nil
}
