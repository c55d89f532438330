// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/trustpin-cloud/trustpin-go/pkg/trustpin"
)

// projectConfig is the YAML project credentials file:
//
//	organization_id: org-123
//	project_id: proj-456
//	public_key: <base64 SPKI DER>
//	mode: strict
type projectConfig struct {
	OrganizationID string `yaml:"organization_id" validate:"required"`
	ProjectID      string `yaml:"project_id" validate:"required"`
	PublicKey      string `yaml:"public_key" validate:"required,base64"`
	Mode           string `yaml:"mode" validate:"omitempty,oneof=strict permissive"`
}

// projectValidate checks struct tags on loaded project configuration.
var projectValidate = validator.New()

// loadProjectConfig reads and validates a project configuration file.
func loadProjectConfig(path string) (*projectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileOperation, err)
	}

	var cfg projectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s is not valid YAML: %w", ErrInvalidInput, path, err)
	}

	cfg.OrganizationID = strings.TrimSpace(cfg.OrganizationID)
	cfg.ProjectID = strings.TrimSpace(cfg.ProjectID)
	cfg.PublicKey = strings.TrimSpace(cfg.PublicKey)
	cfg.Mode = strings.TrimSpace(cfg.Mode)

	if err := projectValidate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, path, err)
	}
	return &cfg, nil
}

// resolveProjectConfig merges the configuration file (if any) with flag
// overrides. Flags win over file values.
func resolveProjectConfig(org, project, publicKey, mode string) (*projectConfig, error) {
	cfg := &projectConfig{}
	if configFile != "" {
		loaded, err := loadProjectConfig(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if org != "" {
		cfg.OrganizationID = org
	}
	if project != "" {
		cfg.ProjectID = project
	}
	if publicKey != "" {
		cfg.PublicKey = publicKey
	}
	if mode != "" {
		cfg.Mode = mode
	}

	if err := projectValidate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: incomplete project configuration: %w", ErrInvalidInput, err)
	}
	return cfg, nil
}

// engineMode maps the configuration mode string to an engine Mode.
// An empty string defaults to strict.
func (c *projectConfig) engineMode() trustpin.Mode {
	if c.Mode == "permissive" {
		return trustpin.ModePermissive
	}
	return trustpin.ModeStrict
}
