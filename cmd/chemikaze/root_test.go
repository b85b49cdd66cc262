// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/elsci/chemikaze/internal/config"
	"github.com/elsci/chemikaze/internal/issue"
	"github.com/elsci/chemikaze/pkg/types"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"

		if got, want := getVersionString(), "dev (built from source)"; got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestRoot_ListsSubcommands(t *testing.T) {
	root := NewRootCommand(NewApp(Dependencies{}))

	for _, name := range []string{"parse", "batch", "elements", "config"} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestSession_PassesConfigFlag(t *testing.T) {
	provider := &stubConfigProvider{cfg: config.DefaultConfig()}

	if _, _, err := runCLI(t, Dependencies{Config: provider}, "--config", "/tmp/custom.cue", "parse", "H2O"); err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if provider.opts.ConfigFilePath != "/tmp/custom.cue" {
		t.Errorf("ConfigFilePath = %q, want /tmp/custom.cue", provider.opts.ConfigFilePath)
	}
}

func TestSession_ConfigErrorFallsBackToDefaults(t *testing.T) {
	provider := &stubConfigProvider{err: errors.New("broken config")}

	stdout, stderr, err := runCLI(t, Dependencies{Config: provider}, "parse", "HOH")
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if stdout != "H2O\n" {
		t.Errorf("stdout = %q, want %q", stdout, "H2O\n")
	}
	if !strings.Contains(stderr, "Warning: ") || !strings.Contains(stderr, "broken config") {
		t.Errorf("stderr should warn about the config error, got %q", stderr)
	}
}

func TestSession_ConfigFormatAndFlagOverride(t *testing.T) {
	provider := configWith(func(c *config.Config) { c.Output.Format = config.OutputFormatJSON })

	stdout, _, err := runCLI(t, Dependencies{Config: provider}, "parse", "H2O")
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if !strings.HasPrefix(stdout, "{") {
		t.Errorf("output.format=json should produce JSON, got %q", stdout)
	}

	stdout, _, err = runCLI(t, Dependencies{Config: provider}, "--format", "text", "parse", "H2O")
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if stdout != "H2O\n" {
		t.Errorf("--format text should win over the config, got %q", stdout)
	}
}

func TestSession_InvalidFormatFlag(t *testing.T) {
	_, stderr, err := runCLI(t, Dependencies{}, "--format", "xml", "parse", "H2O")

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T: %v", err, err)
	}
	if exitErr.Code != types.ExitFailure {
		t.Errorf("Code = %d, want %d", exitErr.Code, types.ExitFailure)
	}
	if !errors.Is(err, config.ErrInvalidOutputFormat) {
		t.Errorf("error should wrap ErrInvalidOutputFormat, got %v", err)
	}
	if !strings.Contains(stderr, `invalid output format "xml"`) {
		t.Errorf("stderr should explain the bad format, got %q", stderr)
	}
}

func TestHandleError(t *testing.T) {
	app := NewApp(Dependencies{Stdout: &strings.Builder{}, Stderr: &strings.Builder{}})

	if err := app.handleError(nil, "dark"); err != nil {
		t.Errorf("handleError(nil) = %v, want nil", err)
	}

	plain := errors.New("plain")
	if err := app.handleError(plain, "dark"); !errors.Is(err, plain) {
		t.Errorf("handleError(plain) = %v, want it passed through", err)
	}

	inner := &ExitError{Code: types.ExitParseFailure, Err: errors.New("bad formula")}
	err := app.handleError(newServiceError(inner, 0, ""), "dark")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != types.ExitParseFailure {
		t.Errorf("handleError should keep the wrapped exit code, got %v", err)
	}

	err = app.handleError(newServiceError(errors.New("boom"), issue.ConfigLoadFailedId, ""), "dark")
	if !errors.As(err, &exitErr) || exitErr.Code != types.ExitFailure {
		t.Errorf("handleError should default to ExitFailure, got %v", err)
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain error")
	if got := formatErrorForDisplay(plain, false); got != "plain error" {
		t.Errorf("formatErrorForDisplay(plain) = %q, want %q", got, "plain error")
	}

	actionable := issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource("config.cue").
		WithSuggestion("Check the file").
		Wrap(errors.New("syntax error")).
		BuildError()
	got := formatErrorForDisplay(actionable, false)
	if !strings.Contains(got, "failed to load configuration: config.cue") || !strings.Contains(got, "Check the file") {
		t.Errorf("formatErrorForDisplay(actionable) = %q, want operation, resource and suggestion", got)
	}
}
