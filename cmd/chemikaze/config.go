// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/elsci/chemikaze/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `chemikaze config` command tree.
func newConfigCommand(app *App, flags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage chemikaze configuration",
		Long: `Manage chemikaze configuration.

Configuration is stored in:
  - Linux: ~/.config/chemikaze/config.cue
  - macOS: ~/Library/Application Support/chemikaze/config.cue
  - Windows: %APPDATA%\chemikaze\config.cue

A config.cue in the current directory is used when the file above is missing.
Every key can be overridden with an environment variable, for example
CHEMIKAZE_OUTPUT_FORMAT=json or CHEMIKAZE_BATCH_JOBS=4.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: app.runWithSession(flags, func(cmd *cobra.Command, s *session, args []string) error {
			if s.format != config.OutputFormatText {
				return writeDocument(app.stdout, s.format, s.cfg)
			}
			showConfig(app.stdout, s)
			return nil
		}),
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app.stdout)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app.stdout)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		RunE: app.runWithSession(flags, func(cmd *cobra.Command, s *session, args []string) error {
			_, err := fmt.Fprint(app.stdout, config.GenerateCUE(s.cfg))
			return err
		}),
	})

	return cfgCmd
}

func showConfig(w io.Writer, s *session) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if s.source != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), s.source)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	cfg := s.cfg
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("output"))
	fmt.Fprintf(w, "  format: %s\n", valueStyle.Render(cfg.Output.Format.String()))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("batch"))
	fmt.Fprintf(w, "  repeats: %s\n", valueStyle.Render(strconv.Itoa(cfg.Batch.Repeats)))
	fmt.Fprintf(w, "  warmup: %s\n", valueStyle.Render(strconv.FormatBool(cfg.Batch.Warmup)))
	fmt.Fprintf(w, "  jobs: %s\n", valueStyle.Render(strconv.Itoa(cfg.Batch.Jobs)))
	fmt.Fprintf(w, "  fail_fast: %s\n", valueStyle.Render(strconv.FormatBool(cfg.Batch.FailFast)))
	fmt.Fprintf(w, "  skip_blank: %s\n", valueStyle.Render(strconv.FormatBool(cfg.Batch.SkipBlank)))
	fmt.Fprintf(w, "  max_formula_length: %s\n", valueStyle.Render(strconv.Itoa(cfg.Batch.MaxFormulaLength)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(strconv.FormatBool(cfg.UI.Verbose)))
}

func initConfig(w io.Writer) error {
	path, created, err := config.CreateDefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	if !created {
		fmt.Fprintf(w, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(w, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(w io.Writer) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.DefaultConfigPath()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(w, "Config file: %s\n", cfgPath)
	return nil
}
