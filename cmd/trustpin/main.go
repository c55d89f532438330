// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"log/slog"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		code := ExitConfigError
		if errors.Is(err, ErrVerifyFailed) {
			code = ExitVerifyFailed
		}
		exitFunc(code)
	}
}
