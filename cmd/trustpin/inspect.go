// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/trustpin-cloud/trustpin-go/pkg/configstore"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Fetch and print the signed pinning policy for a project",
	Long: `Fetch the pinning policy from the CDN, verify its signature with the
project public key, and print the registered domains with their pins and
expiry times.`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().String("organization", "", "organization ID (overrides config file)")
	inspectCmd.Flags().String("project", "", "project ID (overrides config file)")
	inspectCmd.Flags().String("public-key", "", "base64 SPKI public key (overrides config file)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	org, _ := cmd.Flags().GetString("organization")
	project, _ := cmd.Flags().GetString("project")
	publicKey, _ := cmd.Flags().GetString("public-key")

	cfg, err := resolveProjectConfig(org, project, publicKey, "")
	if err != nil {
		return err
	}

	store := configstore.NewStore(&configstore.Config{BaseURL: baseURL})
	if err := store.SetCredentials(cfg.OrganizationID, cfg.ProjectID, cfg.PublicKey, cfg.engineMode()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	pol, err := store.GetPolicy(cmd.Context())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerifyFailed, err)
	}

	fmt.Printf("policy version %d, issued %s, %d domain(s)\n",
		pol.Version, time.Unix(pol.IssuedAt, 0).UTC().Format(time.RFC3339), len(pol.Domains))
	for _, d := range pol.Domains {
		fmt.Printf("  %s (updated %s)\n", d.Name, time.Unix(d.LastUpdated, 0).UTC().Format(time.RFC3339))
		for _, pin := range d.Pins {
			expiry := "never"
			if pin.ExpiresAt != nil {
				expiry = time.Unix(*pin.ExpiresAt, 0).UTC().Format(time.RFC3339)
			}
			fmt.Printf("    %-6s %s expires=%s\n", pin.Algorithm, pin.Value, expiry)
		}
	}
	return nil
}
