// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir makes dir the user's home for the rest of the test and returns a
// function restoring the previous environment. On Windows that is USERPROFILE
// with APPDATA cleared; elsewhere HOME with XDG_CONFIG_HOME cleared, so the
// per-user config.cue lookup lands under dir.
//
//	t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	homeVar, overrideVar := "HOME", "XDG_CONFIG_HOME"
	if runtime.GOOS == "windows" {
		homeVar, overrideVar = "USERPROFILE", "APPDATA"
	}

	restoreHome := MustSetenv(t, homeVar, dir)
	restoreOverride := MustUnsetenv(t, overrideVar)
	return func() {
		restoreOverride()
		restoreHome()
	}
}
