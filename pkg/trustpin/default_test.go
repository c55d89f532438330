// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package trustpin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trustpin-cloud/trustpin-go/pkg/logging"
)

func TestDefault_VerifyBeforeSetup(t *testing.T) {
	Reset()
	err := Verify(context.Background(), "api.example.com", "-----BEGIN CERTIFICATE-----\n-----END CERTIFICATE-----")
	assert.ErrorIs(t, err, ErrInvalidProjectConfig)
}

func TestDefault_SetupRejectsEmpty(t *testing.T) {
	Reset()
	err := Setup(context.Background(), "", "", "", ModeStrict)
	assert.ErrorIs(t, err, ErrInvalidProjectConfig)
}

func TestDefault_SetLogLevel(t *testing.T) {
	prev := logging.CurrentLevel()
	defer logging.SetLevel(prev)

	SetLogLevel(logging.LevelDebug)
	assert.Equal(t, logging.LevelDebug, logging.CurrentLevel())
}
