// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfbuild

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/docpdf/internal/toolchain"
	"github.com/pdiddy/docpdf/pkg/types"
)

const mermaidPackage = "@mermaid-js/mermaid-cli"

// diagramCommand is one way of invoking the diagram renderer. Candidates are
// tried in order and the first whose tool resolves is used.
type diagramCommand struct {
	tool string
	args func(in, out string) []string
}

func defaultDiagramCommands() []diagramCommand {
	return []diagramCommand{
		{
			tool: toolMermaid,
			args: func(in, out string) []string {
				return []string{"-i", in, "-o", out, "--pdfFit"}
			},
		},
		{
			// npx may download mermaid-cli on first use.
			tool: toolNpx,
			args: func(in, out string) []string {
				return []string{"-y", mermaidPackage, "-i", in, "-o", out, "--pdfFit"}
			},
		},
	}
}

// resolveDiagramCommand returns the first candidate whose tool is on PATH.
func (d *Driver) resolveDiagramCommand(in, out string) (string, []string, bool) {
	for _, c := range d.diagrams {
		if d.CheckTool(c.tool) {
			return c.tool, c.args(in, out), true
		}
	}
	return "", nil, false
}

// DiscoverDiagramSources lists the files in the source directory
// whose name carries the diagram extension, sorted lexicographically. A
// missing directory yields an empty list.
func (d *Driver) DiscoverDiagramSources() []string {
	entries, err := os.ReadDir(d.cfg.SourcePath())
	if err != nil {
		return nil
	}
	var sources []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), d.cfg.DiagramExt) {
			continue
		}
		sources = append(sources, filepath.Join(d.cfg.SourcePath(), e.Name()))
	}
	sort.Strings(sources)
	return sources
}

// RenderDiagram converts one diagram source into a PDF of the same stem in
// the output directory. It returns false when no renderer resolves, when the
// renderer cannot be launched, or when it exits non-zero.
func (d *Driver) RenderDiagram(ctx context.Context, input string) bool {
	output := d.cfg.PDFPathFor(input)
	name, args, ok := d.resolveDiagramCommand(input, output)
	if !ok {
		d.log.Error("mermaid CLI not found (mmdc or npx); install mermaid-cli or npx",
			"diagram", input)
		return false
	}

	d.log.Info("Converting", "from", input, "to", output)
	d.log.Debug(toolchain.CommandLine(name, args))

	out, err := d.exec.Run(ctx, d.cfg.Root, name, args...)
	if err != nil {
		d.log.Error("Command not found when trying to run", "cmd", name, "err", err)
		return false
	}
	if !out.Success() {
		d.log.Error("mermaid conversion failed", "diagram", input, "exit", out.ExitCode,
			"stderr", out.Stderr)
		return false
	}

	d.log.Info("[OK] generated", "pdf", output)
	return true
}

// RenderDiagrams renders every discovered diagram source, continuing past
// failures. No sources, or no source directory, is success.
func (d *Driver) RenderDiagrams(ctx context.Context) types.StageResult {
	result := types.StageResult{OK: true}

	if !exists(d.cfg.SourcePath()) {
		d.log.Warn("Source folder missing, skipping diagrams", "path", d.cfg.SourcePath())
		return result
	}

	sources := d.DiscoverDiagramSources()
	if len(sources) == 0 {
		d.log.Info("No diagram sources to convert", "dir", d.cfg.SourcePath(), "ext", d.cfg.DiagramExt)
		return result
	}

	for _, src := range sources {
		result.Attempted++
		if d.RenderDiagram(ctx, src) {
			result.Rendered++
			continue
		}
		result.Failed++
		result.OK = false
	}
	return result
}
