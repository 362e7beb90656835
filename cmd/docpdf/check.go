// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docpdf/internal/pdfbuild"
	"github.com/pdiddy/docpdf/internal/toolchain"
)

// npx is reported alongside the required tools because diagrams fall back
// to it when mmdc is absent.
const fallbackTool = "npx"

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report which external tools resolve on PATH",
	Long: `Check prints the resolved path of pandoc, mmdc, xelatex and npx, or
"missing" for tools that are not on PATH. It always exits 0; the build itself
decides whether a missing tool is fatal.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printToolReport(cmd.OutOrStdout(), toolchain.OS())
		return nil
	},
}

func printToolReport(w io.Writer, exec toolchain.Executor) {
	tools := append(append([]string{}, pdfbuild.RequiredTools...), fallbackTool)
	for _, tool := range tools {
		path, err := exec.LookPath(tool)
		if err != nil {
			path = "missing"
		}
		fmt.Fprintf(w, "%-8s  %s\n", tool, path)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
