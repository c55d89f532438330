// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustpin-cloud/trustpin-go/pkg/trustpin"
)

// testPublicKeyB64 generates a base64 SPKI public key for config fixtures.
func testPublicKeyB64(t *testing.T) string {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(der)
}

// writeConfig writes a project YAML file into a temp dir.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trustpin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadProjectConfig_Valid(t *testing.T) {
	path := writeConfig(t, `
organization_id: org-1
project_id: proj-1
public_key: `+testPublicKeyB64(t)+`
mode: permissive
`)

	cfg, err := loadProjectConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "org-1", cfg.OrganizationID)
	assert.Equal(t, "proj-1", cfg.ProjectID)
	assert.Equal(t, trustpin.ModePermissive, cfg.engineMode())
}

func TestLoadProjectConfig_DefaultModeStrict(t *testing.T) {
	path := writeConfig(t, `
organization_id: org-1
project_id: proj-1
public_key: `+testPublicKeyB64(t)+`
`)

	cfg, err := loadProjectConfig(path)
	require.NoError(t, err)
	assert.Equal(t, trustpin.ModeStrict, cfg.engineMode())
}

func TestLoadProjectConfig_MissingFields(t *testing.T) {
	path := writeConfig(t, `
organization_id: org-1
`)

	_, err := loadProjectConfig(path)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoadProjectConfig_InvalidMode(t *testing.T) {
	path := writeConfig(t, `
organization_id: org-1
project_id: proj-1
public_key: `+testPublicKeyB64(t)+`
mode: lenient
`)

	_, err := loadProjectConfig(path)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoadProjectConfig_PublicKeyNotBase64(t *testing.T) {
	path := writeConfig(t, `
organization_id: org-1
project_id: proj-1
public_key: "!!! definitely not base64 !!!"
`)

	_, err := loadProjectConfig(path)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoadProjectConfig_NotYAML(t *testing.T) {
	path := writeConfig(t, "\t{[not yaml")
	_, err := loadProjectConfig(path)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoadProjectConfig_MissingFile(t *testing.T) {
	_, err := loadProjectConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrFileOperation)
}

func TestResolveProjectConfig_FlagsOverrideFile(t *testing.T) {
	keyB64 := testPublicKeyB64(t)
	configFile = writeConfig(t, `
organization_id: org-file
project_id: proj-file
public_key: `+keyB64+`
`)
	defer func() { configFile = "" }()

	cfg, err := resolveProjectConfig("org-flag", "", "", "permissive")
	require.NoError(t, err)
	assert.Equal(t, "org-flag", cfg.OrganizationID)
	assert.Equal(t, "proj-file", cfg.ProjectID)
	assert.Equal(t, trustpin.ModePermissive, cfg.engineMode())
}

func TestResolveProjectConfig_FlagsOnly(t *testing.T) {
	configFile = ""
	cfg, err := resolveProjectConfig("org-1", "proj-1", testPublicKeyB64(t), "")
	require.NoError(t, err)
	assert.Equal(t, "org-1", cfg.OrganizationID)
}

func TestResolveProjectConfig_Incomplete(t *testing.T) {
	configFile = ""
	_, err := resolveProjectConfig("org-1", "", "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
