// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docpdf/internal/history"
	"github.com/pdiddy/docpdf/internal/pdfbuild"
	"github.com/pdiddy/docpdf/internal/toolchain"
	"github.com/pdiddy/docpdf/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the main document and all diagrams to PDF",
	Long: `Build checks for pandoc, mmdc and xelatex, renders the main markdown
document, converts every diagram source, and copies pre-rendered diagram PDFs
from source/pdf into the output directory. A missing tool is only a warning;
the build still runs. Exit status is 2 if any stage failed.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := buildConfigFrom(viper.GetViper())
	logger := commandLogger(cmd)

	ctx := cmd.Context()

	driver, err := pdfbuild.New(cfg, toolchain.OS(), logger)
	if err != nil {
		return err
	}

	result := driver.Run(ctx)
	if cfg.HistoryDB != "" {
		recordRun(ctx, logger, cfg.HistoryDB, driver.Config().Root, result)
	}

	if !result.Succeeded() {
		return &exitError{code: result.ExitCode}
	}
	return nil
}

// recordRun appends result to the history database. Failures are logged and
// never change the build outcome.
func recordRun(ctx context.Context, logger *log.Logger, path, root string, result types.BuildResult) {
	store, err := history.Open(path)
	if err != nil {
		logger.Warn("Cannot open build history", "path", path, "err", err)
		return
	}
	defer store.Close()

	id, err := store.Record(ctx, history.FromResult(root, result))
	if err != nil {
		logger.Warn("Cannot record build", "path", path, "err", err)
		return
	}
	logger.Debug("Recorded build", "id", id, "path", path)
}
