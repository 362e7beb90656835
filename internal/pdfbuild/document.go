// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfbuild

import (
	"context"

	"github.com/pdiddy/docpdf/internal/toolchain"
)

// pandocArgs builds the pandoc argument list for the main document. The
// header include is appended only when the header file exists on disk.
func (d *Driver) pandocArgs() []string {
	r := d.cfg.Renderer
	args := []string{
		d.cfg.MainDocumentPath(),
		"-o", d.cfg.MainPDFPath(),
		"--pdf-engine=" + r.PDFEngine,
		"-V", "fontsize=" + r.FontSize,
		"-V", "geometry:margin=" + r.Margin,
		"--syntax-highlighting=" + r.Highlight,
		"-V", "linkcolor=" + r.LinkColor,
		"-V", "urlcolor=" + r.URLColor,
		"-V", "block-headings",
		"-V", "documentclass=" + r.DocumentClass,
	}
	if header := d.cfg.HeaderPath(); exists(header) {
		args = append(args, "-H", header)
	}
	return args
}

// RenderMainDocument runs pandoc on the main document with the documentation
// root as working directory. It returns false without launching anything
// when the main document is absent.
func (d *Driver) RenderMainDocument(ctx context.Context) bool {
	src := d.cfg.MainDocumentPath()
	if !exists(src) {
		d.log.Error("Main markdown not found", "path", src)
		return false
	}

	args := d.pandocArgs()
	d.log.Info("Running pandoc for main PDF")
	d.log.Debug(toolchain.CommandLine(toolPandoc, args))

	out, err := d.exec.Run(ctx, d.cfg.Root, toolPandoc, args...)
	if err != nil {
		d.log.Error("Command could not be started", "cmd", toolPandoc, "err", err)
		return false
	}
	if !out.Success() {
		d.log.Error("pandoc failed", "exit", out.ExitCode, "stderr", out.Stderr)
		return false
	}

	d.log.Info("[OK] generated", "pdf", d.cfg.MainPDFPath())
	return true
}
