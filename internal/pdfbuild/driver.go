// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfbuild drives the documentation PDF build: it renders the main
// markdown document with pandoc, renders every diagram source with
// mermaid-cli, and reconciles the output directory with pre-rendered
// diagram PDFs.
//
// The pipeline is sequential. Each subprocess is waited on before the next
// starts, and every failure is reduced to a boolean or a count at the unit
// of work that produced it. Only Run turns the aggregate into an exit code.
package pdfbuild

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/docpdf/internal/toolchain"
	"github.com/pdiddy/docpdf/pkg/types"
)

const (
	toolPandoc  = "pandoc"
	toolMermaid = "mmdc"
	toolLaTeX   = "xelatex"
	toolNpx     = "npx"
)

// RequiredTools lists the executables checked at startup, in report order.
// xelatex is only checked; pandoc invokes it.
var RequiredTools = []string{toolPandoc, toolMermaid, toolLaTeX}

// Driver runs the build pipeline for one BuildConfig.
type Driver struct {
	cfg      types.BuildConfig
	exec     toolchain.Executor
	log      *log.Logger
	diagrams []diagramCommand
}

// New creates a Driver. The root in cfg is made absolute so that every
// derived path stays valid when subprocesses run with the root as their
// working directory.
func New(cfg types.BuildConfig, exec toolchain.Executor, logger *log.Logger) (*Driver, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving documentation root %s: %w", cfg.Root, err)
	}
	cfg.Root = root
	if logger == nil {
		logger = log.Default()
	}
	return &Driver{
		cfg:      cfg,
		exec:     exec,
		log:      logger,
		diagrams: defaultDiagramCommands(),
	}, nil
}

// Config returns the resolved configuration the driver runs with.
func (d *Driver) Config() types.BuildConfig {
	return d.cfg
}

// CheckTool reports whether name resolves on the execution search path.
func (d *Driver) CheckTool(name string) bool {
	return toolchain.Available(d.exec, name)
}

// MissingTools returns the entries of RequiredTools that CheckTool reports
// absent.
func (d *Driver) MissingTools() []string {
	var missing []string
	for _, tool := range RequiredTools {
		if !d.CheckTool(tool) {
			missing = append(missing, tool)
		}
	}
	return missing
}

// Run executes the full pipeline: ensure the output directory, render the
// main document, render every diagram, then copy fallback PDFs. At least one
// copied fallback marks the diagram stage successful regardless of earlier
// render failures.
func (d *Driver) Run(ctx context.Context) types.BuildResult {
	result := types.BuildResult{StartedAt: time.Now(), ExitCode: types.ExitFailed}

	d.log.Info("Generating PDFs", "into", d.cfg.OutputPath())

	result.MissingTools = d.MissingTools()
	if len(result.MissingTools) > 0 {
		d.log.Warn("Tools not found in PATH; the build will still try to run",
			"missing", strings.Join(result.MissingTools, ", "))
	}

	if err := d.ensureOutputDir(); err != nil {
		d.log.Error("Cannot prepare output directory", "err", err)
		return d.finish(result)
	}

	result.MainOK = d.RenderMainDocument(ctx)
	result.Diagrams = d.RenderDiagrams(ctx)
	result.DiagramsOK = result.Diagrams.OK

	result.FallbackCopied = d.CopyFallbackDiagrams()
	if result.FallbackCopied > 0 {
		if result.Diagrams.HasFailures() {
			d.log.Warn("Diagram render failures covered by pre-rendered PDFs",
				"failed", result.Diagrams.Failed, "copied", result.FallbackCopied)
		}
		result.DiagramsOK = true
	}

	if result.MainOK && result.DiagramsOK {
		result.ExitCode = types.ExitOK
	}
	return d.finish(result)
}

func (d *Driver) finish(result types.BuildResult) types.BuildResult {
	result.Duration = time.Since(result.StartedAt)
	if result.ExitCode == types.ExitOK {
		d.log.Info("All PDFs generated successfully (or retrieved)")
	} else {
		d.log.Error("Some PDF generation steps failed; see logs above",
			"main_ok", result.MainOK, "diagrams_ok", result.DiagramsOK)
	}
	return result
}

func (d *Driver) ensureOutputDir() error {
	if err := os.MkdirAll(d.cfg.OutputPath(), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", d.cfg.OutputPath(), err)
	}
	return nil
}

// exists reports whether path names an existing file or directory.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
