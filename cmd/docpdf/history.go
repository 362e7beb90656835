// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docpdf/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded builds",
	Long: `History lists builds recorded with --history (or history_db in the
config file), newest first.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := viper.GetString("history_db")
	if path == "" {
		return fmt.Errorf("no history database configured: pass --history or set history_db")
	}
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryOutput(cmd.OutOrStdout(), runs, jsonOutput)
}

func formatHistoryOutput(w io.Writer, runs []history.Run, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No builds recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-20s  %-9s  %-4s  %-4s  %-8s  %-8s  %-6s  %s\n",
		"ID", "Started", "Duration", "Main", "Diag", "Rendered", "Fallback", "Exit", "Missing")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, r := range runs {
		fmt.Fprintf(w, "%-5d  %-20s  %-9s  %-4s  %-4s  %-8d  %-8d  %-6d  %s\n",
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			r.Duration.Round(time.Millisecond),
			okMark(r.MainOK),
			okMark(r.DiagramsOK),
			r.Rendered,
			r.FallbackCopied,
			r.ExitCode,
			strings.Join(r.MissingTools, ","))
	}

	fmt.Fprintf(w, "\n%d builds\n", len(runs))
	return nil
}

func okMark(ok bool) string {
	if ok {
		return "ok"
	}
	return "fail"
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of builds to list")
	historyCmd.Flags().Bool("json", false, "output builds as JSON")

	rootCmd.AddCommand(historyCmd)
}
