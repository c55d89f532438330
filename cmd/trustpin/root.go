// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/trustpin-cloud/trustpin-go/pkg/logging"
)

var (
	quiet      bool
	debug      bool
	logFormat  string
	configFile string
	baseURL    string
)

// logLevel controls the global slog level at runtime.
var logLevel = new(slog.LevelVar)

// exitFunc is the function called to exit the program.
// This can be overridden in tests to capture exit calls.
var exitFunc = os.Exit

var rootCmd = &cobra.Command{
	Use:   "trustpin",
	Short: "Certificate pinning verification tool",
	Long: `trustpin verifies server certificates against a remotely delivered,
ECDSA-signed pinning policy. The policy is fetched from the TrustPin CDN,
its signature checked with the project public key, and the server's leaf
certificate hashed and compared against the registered pins.

The 'verify' command checks a certificate for a hostname; 'inspect' prints
the current policy for a project. Project credentials are read from a YAML
file or passed as flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output (errors only)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "trustpin", "log output format (trustpin|text|json)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "project configuration file (YAML)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "policy CDN base URL (default: production CDN)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(inspectCmd)
}

// initLogging configures the global slog logger based on CLI flags.
//
//	--debug: LevelDebug (plus source location with the text and json formats)
//	default: LevelInfo
//	--quiet: LevelError (only errors shown)
//
// --debug takes precedence over --quiet.
// --log-format selects the handler: "trustpin" (default), "text" or "json".
func initLogging() {
	switch {
	case debug:
		logLevel.Set(slog.LevelDebug)
		logging.SetLevel(logging.LevelDebug)
	case quiet:
		logLevel.Set(slog.LevelError)
		logging.SetLevel(logging.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		logging.SetLevel(logging.LevelInfo)
	}

	opts := &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: debug,
	}

	handlers := map[string]func(io.Writer, *slog.HandlerOptions) slog.Handler{
		"trustpin": func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return logging.NewHandler(w) },
		"text":     func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return slog.NewTextHandler(w, o) },
		"json":     func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return slog.NewJSONHandler(w, o) },
	}

	factory, ok := handlers[logFormat]
	if !ok {
		factory = handlers["trustpin"]
	}

	handler := factory(os.Stderr, opts)
	slog.SetDefault(slog.New(handler))
}
