// SPDX-License-Identifier: MPL-2.0

package config

import "sync/atomic"

// pinnedDir, when set, replaces the platform lookup in ConfigDir. Commands
// that read or write config.cue (load, "config init", "config path") all
// resolve through ConfigDir, so pinning one directory redirects every one of
// them at once. os.UserHomeDir ignores HOME on some platforms, which is why
// tests pin instead of faking the home directory.
var pinnedDir atomic.Pointer[string]

// PinConfigDir makes ConfigDir return dir until the returned function runs.
// Unpinning restores whatever was pinned before, so pins nest.
func PinConfigDir(dir string) (unpin func()) {
	prev := pinnedDir.Swap(&dir)
	return func() { pinnedDir.Store(prev) }
}

func pinnedConfigDir() (string, bool) {
	if p := pinnedDir.Load(); p != nil && *p != "" {
		return *p, true
	}
	return "", false
}
