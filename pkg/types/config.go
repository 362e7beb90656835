// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration and result types shared by the
// build driver and the CLI.
package types

import (
	"path/filepath"
	"strings"
)

// RendererOptions holds the formatting options passed to the markdown
// renderer. Each field maps to one pandoc flag or template variable.
type RendererOptions struct {
	// PDFEngine is the LaTeX engine pandoc drives (default "xelatex").
	PDFEngine string `json:"pdf_engine" yaml:"pdf_engine"`

	// FontSize is the document font size (default "10pt").
	FontSize string `json:"font_size" yaml:"font_size"`

	// Margin is the page margin passed as geometry:margin (default "2.5cm").
	Margin string `json:"margin" yaml:"margin"`

	// Highlight is the syntax highlighting style (default "pygments").
	Highlight string `json:"highlight" yaml:"highlight"`

	// LinkColor and URLColor color internal and external links (default "blue").
	LinkColor string `json:"link_color" yaml:"link_color"`
	URLColor  string `json:"url_color" yaml:"url_color"`

	// DocumentClass is the LaTeX document class (default "report").
	DocumentClass string `json:"document_class" yaml:"document_class"`
}

// BuildConfig describes one documentation build. All paths are derived from
// Root and are fixed for the duration of a run.
type BuildConfig struct {
	// Root is the documentation root. Every other path is relative to it.
	Root string `json:"root" yaml:"root"`

	// SourceDir holds the main document, the header and the diagram sources.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// OutputDir receives every generated PDF.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// MainDocument is the markdown file name inside SourceDir.
	MainDocument string `json:"main_document" yaml:"main_document"`

	// HeaderFile is an optional LaTeX header inside SourceDir.
	HeaderFile string `json:"header_file" yaml:"header_file"`

	// DiagramExt is the file extension of diagram sources, including the dot.
	DiagramExt string `json:"diagram_ext" yaml:"diagram_ext"`

	// FallbackDir holds pre-rendered diagram PDFs, relative to SourceDir.
	FallbackDir string `json:"fallback_dir" yaml:"fallback_dir"`

	// HistoryDB is an optional SQLite file that records each run.
	HistoryDB string `json:"history_db,omitempty" yaml:"history_db,omitempty"`

	Renderer RendererOptions `json:"renderer" yaml:"renderer"`
}

// DefaultBuildConfig returns the configuration used when nothing is
// overridden by flags, environment or config file.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Root:         "docs",
		SourceDir:    "source",
		OutputDir:    "pdf",
		MainDocument: "GATHORAPP.md",
		HeaderFile:   "pandoc-header.tex",
		DiagramExt:   ".mermaid",
		FallbackDir:  "pdf",
		Renderer: RendererOptions{
			PDFEngine:     "xelatex",
			FontSize:      "10pt",
			Margin:        "2.5cm",
			Highlight:     "pygments",
			LinkColor:     "blue",
			URLColor:      "blue",
			DocumentClass: "report",
		},
	}
}

// SourcePath returns R/source.
func (c BuildConfig) SourcePath() string {
	return filepath.Join(c.Root, c.SourceDir)
}

// OutputPath returns R/pdf.
func (c BuildConfig) OutputPath() string {
	return filepath.Join(c.Root, c.OutputDir)
}

// MainDocumentPath returns the path of the markdown source.
func (c BuildConfig) MainDocumentPath() string {
	return filepath.Join(c.SourcePath(), c.MainDocument)
}

// MainPDFPath returns the output path of the main document: same stem, .pdf
// extension, inside the output directory.
func (c BuildConfig) MainPDFPath() string {
	return c.PDFPathFor(c.MainDocument)
}

// HeaderPath returns the path of the optional LaTeX header.
func (c BuildConfig) HeaderPath() string {
	return filepath.Join(c.SourcePath(), c.HeaderFile)
}

// FallbackPath returns the directory of pre-rendered diagram PDFs.
func (c BuildConfig) FallbackPath() string {
	return filepath.Join(c.SourcePath(), c.FallbackDir)
}

// PDFPathFor maps a source file to its output PDF in the output directory.
func (c BuildConfig) PDFPathFor(source string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(c.OutputPath(), stem+".pdf")
}
