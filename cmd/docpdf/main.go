// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docpdf CLI, which builds the
// documentation PDFs: the main markdown document through pandoc and each
// mermaid diagram through mermaid-cli.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// exitError carries a process exit status out of a command.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// rootCmd is the base command for the docpdf CLI. Invoked with no
// subcommand it runs a build.
var rootCmd = &cobra.Command{
	Use:   "docpdf",
	Short: "Build documentation PDFs with pandoc and mermaid-cli",
	Long: `docpdf renders the main documentation markdown to PDF with pandoc and
xelatex, converts every .mermaid diagram to PDF with mermaid-cli, and copies
pre-rendered diagram PDFs from source/pdf as a fallback.

Running docpdf without a subcommand is the same as docpdf build. The exit
status is 0 when every stage succeeded and 2 otherwise.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBuild,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docpdf.yaml or ~/.config/docpdf/docpdf.yaml)")
	rootCmd.PersistentFlags().String("root", "", "documentation root (default docs)")
	rootCmd.PersistentFlags().String("main", "", "main markdown document inside source/ (default GATHORAPP.md)")
	rootCmd.PersistentFlags().String("history", "", "SQLite file that records each build (disabled when empty)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log full command lines and resolved paths")

	bindFlag("root", "root")
	bindFlag("main_document", "main")
	bindFlag("history_db", "history")

	setDefaults(viper.GetViper())
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docpdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docpdf"))
		}
	}

	viper.SetEnvPrefix("DOCPDF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	// An interrupt cancels the context, which kills the running tool.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}
	var exit *exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
