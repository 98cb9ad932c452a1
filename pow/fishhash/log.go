// Copyright (c) 2015-2024 The fishdagd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fishhash

import "github.com/decred/slog"

// log is the package-level logger used to report light-cache completion
// and full-dataset prebuild progress. It is disabled by default; the host
// process wires in a real backend through UseLogger, the same pattern
// decred-family subsystems use. It is the only logger in this module.
var log = slog.Disabled

// UseLogger sets the package-wide logger. This should be called before
// calling any package functions that construct a Context.
func UseLogger(logger slog.Logger) {
	log = logger
}
