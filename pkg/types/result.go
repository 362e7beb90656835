// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Exit codes reported by a build run.
const (
	ExitOK     = 0
	ExitFailed = 2
)

// StageResult holds the outcome of the diagram stage.
type StageResult struct {
	// OK is the aggregate result: true when every attempted diagram rendered.
	OK bool `json:"ok" yaml:"ok"`

	Attempted int `json:"attempted" yaml:"attempted"`
	Rendered  int `json:"rendered" yaml:"rendered"`
	Failed    int `json:"failed" yaml:"failed"`
}

// HasFailures reports whether any diagram failed to render.
func (r StageResult) HasFailures() bool {
	return r.Failed > 0
}

// BuildResult summarises one run of the build driver.
type BuildResult struct {
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`

	// MissingTools lists required tools absent from PATH at startup.
	MissingTools []string `json:"missing_tools,omitempty" yaml:"missing_tools,omitempty"`

	MainOK   bool        `json:"main_ok" yaml:"main_ok"`
	Diagrams StageResult `json:"diagrams" yaml:"diagrams"`

	// FallbackCopied is the number of pre-rendered PDFs copied.
	FallbackCopied int `json:"fallback_copied" yaml:"fallback_copied"`

	// DiagramsOK is the diagram stage result after fallback reconciliation.
	DiagramsOK bool `json:"diagrams_ok" yaml:"diagrams_ok"`

	ExitCode int `json:"exit_code" yaml:"exit_code"`
}

// Succeeded reports whether the run exits with ExitOK.
func (r BuildResult) Succeeded() bool {
	return r.ExitCode == ExitOK
}
