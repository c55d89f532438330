// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/trustpin-cloud/trustpin-go/pkg/configstore"
	"github.com/trustpin-cloud/trustpin-go/pkg/trustpin"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a server certificate against the pinning policy",
	Long: `Verify that a PEM-encoded server certificate matches a registered pin for
the given hostname. The signed pinning policy is fetched from the CDN and
its signature checked with the project public key before matching.

Project credentials come from --config and can be overridden per-flag:
  trustpin verify --config trustpin.yaml --host api.example.com --cert leaf.pem`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().String("host", "", "hostname to verify (required)")
	verifyCmd.Flags().String("cert", "", "path to the PEM-encoded server certificate (required)")
	verifyCmd.Flags().String("organization", "", "organization ID (overrides config file)")
	verifyCmd.Flags().String("project", "", "project ID (overrides config file)")
	verifyCmd.Flags().String("public-key", "", "base64 SPKI public key (overrides config file)")
	verifyCmd.Flags().String("mode", "", "pinning mode: strict or permissive (overrides config file)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	host, _ := cmd.Flags().GetString("host")
	certPath, _ := cmd.Flags().GetString("cert")
	org, _ := cmd.Flags().GetString("organization")
	project, _ := cmd.Flags().GetString("project")
	publicKey, _ := cmd.Flags().GetString("public-key")
	mode, _ := cmd.Flags().GetString("mode")

	if host == "" {
		return fmt.Errorf("%w: --host is required", ErrInvalidInput)
	}
	if certPath == "" {
		return fmt.Errorf("%w: --cert is required", ErrInvalidInput)
	}

	cfg, err := resolveProjectConfig(org, project, publicKey, mode)
	if err != nil {
		return err
	}

	certPEM, err := os.ReadFile(certPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileOperation, err)
	}

	engine := trustpin.NewEngine(&trustpin.EngineConfig{
		Store: &configstore.Config{BaseURL: baseURL},
	})
	ctx := cmd.Context()

	if err := engine.Setup(ctx, cfg.OrganizationID, cfg.ProjectID, cfg.PublicKey, cfg.engineMode()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := engine.Verify(ctx, host, string(certPEM)); err != nil {
		if errors.Is(err, trustpin.ErrInvalidProjectConfig) {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return fmt.Errorf("%w: %w", ErrVerifyFailed, err)
	}

	slog.Info("certificate pin verified", "host", host)
	fmt.Printf("OK: %s\n", host)
	return nil
}
