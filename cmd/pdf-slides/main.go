// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-slides CLI, which turns a PDF
// into one JPEG image per page using Poppler's pdftoppm.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-slides/internal/convert"
	"github.com/pdiddy/pdf-slides/internal/poppler"
	"github.com/pdiddy/pdf-slides/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	appName   = "pdf-slides"
	envPrefix = "PDF_SLIDES"
)

// Config keys, shared by flags, environment variables, and the config file.
const (
	keyOutputDir = "output_dir"
	keyPrefix    = "prefix"
	keyDPI       = "dpi"
	keyManifest  = "manifest"
)

// newRootCmd builds the pdf-slides command tree. Each call gets its own viper
// instance so tests can run commands independently.
func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   appName + " <pdf>",
		Short: "Convert a PDF into JPEG slide images using pdftoppm",
		Long: `pdf-slides converts every page of a PDF into a JPEG image by running
Poppler's pdftoppm. Images are named <prefix>-<page>.jpg and written to the
output directory, which is created if missing.

Flags may also be set through PDF_SLIDES_* environment variables or a
pdf-slides.yaml config file.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadSlidesConfig(v, args[0])
			return runConvert(cmd, cfg)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf-slides.yaml or ~/.config/pdf-slides/pdf-slides.yaml)")

	flags := rootCmd.Flags()
	flags.String("output-dir", types.DefaultOutputDir, "directory to write slide images")
	flags.String("prefix", types.DefaultPrefix, "filename prefix for generated slides")
	flags.Int("dpi", types.DefaultDPI, "resolution in DPI for pdftoppm")
	flags.Bool("manifest", false, "write <prefix>.yaml listing the generated slides")

	_ = v.BindPFlag(keyOutputDir, flags.Lookup("output-dir"))
	_ = v.BindPFlag(keyPrefix, flags.Lookup("prefix"))
	_ = v.BindPFlag(keyDPI, flags.Lookup("dpi"))
	_ = v.BindPFlag(keyManifest, flags.Lookup("manifest"))

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// initConfig layers the config file and environment under the flags.
func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(appName)
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	return nil
}

func loadSlidesConfig(v *viper.Viper, pdfPath string) types.SlidesConfig {
	return types.SlidesConfig{
		PDFPath:   pdfPath,
		OutputDir: v.GetString(keyOutputDir),
		Prefix:    v.GetString(keyPrefix),
		DPI:       v.GetInt(keyDPI),
		Manifest:  v.GetBool(keyManifest),
	}
}

func runConvert(cmd *cobra.Command, cfg types.SlidesConfig) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	result, err := convert.ConvertSlides(poppler.NewPdftoppm(stdout, stderr), cfg)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(stderr, "warning: %v\n", w)
	}
	fmt.Fprintf(stderr, "Wrote %d slide image(s).\n", len(result.Slides))
	if result.ManifestPath != "" {
		fmt.Fprintf(stderr, "Wrote manifest %s\n", result.ManifestPath)
	}
	fmt.Fprintf(stdout, "Generated JPEG slides in %s using prefix '%s'.\n", result.OutputDir, result.Prefix)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
