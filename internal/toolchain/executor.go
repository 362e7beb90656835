// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolchain resolves external executables on PATH and runs them as
// subprocesses with captured output.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Output holds the captured result of a subprocess that was launched.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the subprocess exited with status zero.
func (o Output) Success() bool { return o.ExitCode == 0 }

// Executor abstracts tool resolution and subprocess execution so the build
// driver can be tested without the real tools installed.
type Executor interface {
	// LookPath resolves file on the execution search path.
	LookPath(file string) (string, error)

	// Run executes name with args in dir and waits for it to exit. The error
	// is non-nil only when the process could not be launched; a process that
	// ran and exited non-zero is reported through Output.ExitCode.
	Run(ctx context.Context, dir, name string, args ...string) (Output, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

// OS returns the Executor backed by os/exec.
func OS() Executor {
	return osExecutor{}
}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(ctx context.Context, dir, name string, args ...string) (Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return out, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, fmt.Errorf("launching %s: %w", name, err)
}

// Available reports whether name resolves on the search path. It never
// returns an error; an absent tool is simply false.
func Available(e Executor, name string) bool {
	_, err := e.LookPath(name)
	return err == nil
}

// CommandLine formats a command for log output.
func CommandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
