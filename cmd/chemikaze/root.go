// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/elsci/chemikaze/internal/config"
	"github.com/elsci/chemikaze/internal/issue"
	"github.com/elsci/chemikaze/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// rootFlagValues holds the persistent flags shared by every subcommand.
	rootFlagValues struct {
		verbose    bool
		configPath string
		format     string
	}

	// session is the configuration resolved for one command invocation:
	// config file values overridden by environment variables, then by flags.
	session struct {
		cfg     *config.Config
		source  string
		format  config.OutputFormat
		verbose bool
		// glamourStyle is the issue catalog rendering style.
		glamourStyle string
	}

	// commandFunc is the body of a subcommand once its session is resolved.
	commandFunc func(cmd *cobra.Command, s *session, args []string) error
)

// NewRootCommand builds the chemikaze command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "chemikaze",
		Short: "A fast molecular formula parser",
		Long: TitleStyle.Render("chemikaze") + SubtitleStyle.Render(" - A fast molecular formula parser") + `

chemikaze turns molecular formulas such as C6H12O6, (CH3)2CO or
CuSO4.5H2O into atom counts, and parses whole files of formulas at
benchmark speed.

` + SubtitleStyle.Render("Examples:") + `
  chemikaze parse "[(2H2O.NaCl)3S.N]2-"   Print the canonical formula
  chemikaze parse --hydrogens C6H12O6     Print the hydrogen count
  chemikaze batch formulas.txt            Parse one formula per line
  chemikaze elements                      List the element catalogue
  chemikaze config show                   Show current configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $HOME/.config/chemikaze/config.cue)")
	rootCmd.PersistentFlags().StringVarP(&flags.format, "format", "o", "", "output format: text, json, yaml or toml (overrides output.format)")

	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.AddCommand(newParseCommand(app, flags))
	rootCmd.AddCommand(newBatchCommand(app, flags))
	rootCmd.AddCommand(newElementsCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(app, flags))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the production App and runs the root command.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// runWithSession adapts a commandFunc to cobra.RunE: it resolves the session
// first and turns ServiceErrors into rendered output plus an ExitError.
func (a *App) runWithSession(flags *rootFlagValues, fn commandFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := a.newSession(cmd.Context(), flags)
		if err != nil {
			return a.handleError(err, "dark")
		}
		return a.handleError(fn(cmd, s, args), s.glamourStyle)
	}
}

// newSession loads configuration and applies the persistent flags on top.
// A configuration that fails to load is reported as a warning and replaced
// by the defaults so the command can still run.
func (a *App) newSession(ctx context.Context, flags *rootFlagValues) (*session, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, source, err := a.Config.LoadWithSource(ctx, config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(flags.configPath),
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, flags.verbose))
		cfg, source = config.DefaultConfig(), ""
	}

	s := &session{
		cfg:     cfg,
		source:  source,
		format:  cfg.Output.Format,
		verbose: flags.verbose || cfg.UI.Verbose,
	}

	if flags.format != "" {
		format := config.OutputFormat(flags.format)
		if valid, errs := format.IsValid(); !valid {
			return nil, newServiceError(errs[0], issue.InvalidOutputFormatId,
				ErrorStyle.Render("✗ ")+errs[0].Error()+"\n")
		}
		s.format = format
	}

	s.glamourStyle = applyColorScheme(cfg.UI.ColorScheme)
	installLogger(a.stderr, s.verbose)

	return s, nil
}

// handleError renders ServiceErrors and passes every other error through.
func (a *App) handleError(err error, glamourStyle string) error {
	if err == nil {
		return nil
	}

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		return err
	}

	renderServiceError(a.stderr, svcErr, glamourStyle)

	var exitErr *ExitError
	if errors.As(svcErr.Err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: types.ExitFailure, Err: svcErr.Err}
}

// installLogger makes a charm logger writing to w the slog default, at debug
// level when verbose and warn level otherwise.
func installLogger(w io.Writer, verbose bool) {
	logger := log.NewWithOptions(w, log.Options{Prefix: config.AppName})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	slog.SetDefault(slog.New(logger))
}

// applyColorScheme forces the lipgloss background detection for explicit
// schemes and returns the matching glamour style.
func applyColorScheme(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeDark:
		lipgloss.SetHasDarkBackground(true)
		return "dark"
	case config.ColorSchemeLight:
		lipgloss.SetHasDarkBackground(false)
		return "light"
	default:
		if lipgloss.HasDarkBackground() {
			return "dark"
		}
		return "light"
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
