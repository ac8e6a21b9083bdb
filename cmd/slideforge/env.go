package main

import (
	"io"
	"os"
	"time"

	slideforge "github.com/alnah/go-slideforge"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and external command execution.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Runner slideforge.CommandRunner
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Runner: &slideforge.ExecRunner{},
	}
}
