package main

import (
	"bytes"
	"time"

	slideforge "github.com/alnah/go-slideforge"
)

// testEnv returns an Environment with captured output and a frozen clock.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
		Runner: &slideforge.ExecRunner{},
	}
	return env, &stdout, &stderr
}
