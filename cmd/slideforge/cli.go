package main

import (
	"context"
	"fmt"
)

// run dispatches the subcommand and maps its error to an exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "convert":
		return exitAndReport(env, runConvert(ctx, rest, env))
	case "pdf2deck":
		return exitAndReport(env, runPDFToDeck(ctx, rest, env))
	case "deck2pdf":
		return exitAndReport(env, runDeckToPDF(ctx, rest, env))
	case "list":
		return exitAndReport(env, runList(rest, env))
	case "init":
		return exitAndReport(env, runInit(rest, env))
	case "version":
		fmt.Fprintf(env.Stdout, "slideforge %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		runHelp(rest, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// exitAndReport prints the error, if any, and converts it to an exit code.
func exitAndReport(env *Environment, err error) int {
	if err != nil {
		fmt.Fprintln(env.Stderr, "Error:", err)
	}
	return exitCodeFor(err)
}
