// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docpdf/pkg/types"
)

// setDefaults registers every configuration key with its default so that
// environment variables and config files can override any of them.
func setDefaults(v *viper.Viper) {
	d := types.DefaultBuildConfig()
	v.SetDefault("root", d.Root)
	v.SetDefault("source_dir", d.SourceDir)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("main_document", d.MainDocument)
	v.SetDefault("header_file", d.HeaderFile)
	v.SetDefault("diagram_ext", d.DiagramExt)
	v.SetDefault("fallback_dir", d.FallbackDir)
	v.SetDefault("history_db", d.HistoryDB)
	v.SetDefault("renderer.pdf_engine", d.Renderer.PDFEngine)
	v.SetDefault("renderer.font_size", d.Renderer.FontSize)
	v.SetDefault("renderer.margin", d.Renderer.Margin)
	v.SetDefault("renderer.highlight", d.Renderer.Highlight)
	v.SetDefault("renderer.link_color", d.Renderer.LinkColor)
	v.SetDefault("renderer.url_color", d.Renderer.URLColor)
	v.SetDefault("renderer.document_class", d.Renderer.DocumentClass)
}

// buildConfigFrom reads the effective BuildConfig out of v.
func buildConfigFrom(v *viper.Viper) types.BuildConfig {
	return types.BuildConfig{
		Root:         v.GetString("root"),
		SourceDir:    v.GetString("source_dir"),
		OutputDir:    v.GetString("output_dir"),
		MainDocument: v.GetString("main_document"),
		HeaderFile:   v.GetString("header_file"),
		DiagramExt:   v.GetString("diagram_ext"),
		FallbackDir:  v.GetString("fallback_dir"),
		HistoryDB:    v.GetString("history_db"),
		Renderer: types.RendererOptions{
			PDFEngine:     v.GetString("renderer.pdf_engine"),
			FontSize:      v.GetString("renderer.font_size"),
			Margin:        v.GetString("renderer.margin"),
			Highlight:     v.GetString("renderer.highlight"),
			LinkColor:     v.GetString("renderer.link_color"),
			URLColor:      v.GetString("renderer.url_color"),
			DocumentClass: v.GetString("renderer.document_class"),
		},
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Config prints the configuration a build would use after applying
defaults, the config file, DOCPDF_* environment variables and flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(buildConfigFrom(viper.GetViper()))
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
