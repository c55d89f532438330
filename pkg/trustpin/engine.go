// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package trustpin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/trustpin-cloud/trustpin-go/pkg/configstore"
	"github.com/trustpin-cloud/trustpin-go/pkg/jws"
	"github.com/trustpin-cloud/trustpin-go/pkg/logging"
	"github.com/trustpin-cloud/trustpin-go/pkg/pinning"
	"github.com/trustpin-cloud/trustpin-go/pkg/policy"
)

// Mode selects strict or permissive handling of hosts absent from the
// policy.
type Mode = configstore.Mode

const (
	// ModeStrict rejects connections to unregistered hosts.
	ModeStrict = configstore.ModeStrict

	// ModePermissive allows connections to unregistered hosts.
	ModePermissive = configstore.ModePermissive
)

// EngineConfig configures an Engine.
type EngineConfig struct {
	// Store configures policy acquisition. Nil uses the defaults, including
	// the production CDN base URL.
	Store *configstore.Config

	// Logger is the structured logger. Nil uses the shared TrustPin logger.
	Logger *slog.Logger
}

// Engine is the pinning engine façade. It owns one policy store and carries
// no other mutable state; a single Engine is safe for concurrent use.
type Engine struct {
	store  *configstore.Store
	logger *slog.Logger
}

// NewEngine creates an Engine. A nil cfg uses the defaults.
func NewEngine(cfg *EngineConfig) *Engine {
	var storeCfg *configstore.Config
	var logger *slog.Logger
	if cfg != nil {
		storeCfg = cfg.Store
		logger = cfg.Logger
	}
	if logger == nil {
		logger = logging.Logger()
	}
	if storeCfg != nil && storeCfg.Logger == nil {
		sc := *storeCfg
		sc.Logger = logger
		storeCfg = &sc
	}
	if storeCfg == nil {
		storeCfg = &configstore.Config{Logger: logger}
	}
	return &Engine{
		store:  configstore.NewStore(storeCfg),
		logger: logger.With("component", "engine"),
	}
}

// Setup validates and installs project credentials, then eagerly prefetches
// the pinning policy. Prefetch failures are logged and deferred to the first
// Verify so transient network conditions do not fail Setup.
func (e *Engine) Setup(ctx context.Context, organizationID, projectID, publicKeyB64 string, mode Mode) error {
	if strings.TrimSpace(organizationID) == "" ||
		strings.TrimSpace(projectID) == "" ||
		strings.TrimSpace(publicKeyB64) == "" {
		return fmt.Errorf("%w: organization, project and public key are required", ErrInvalidProjectConfig)
	}

	if err := e.store.SetCredentials(organizationID, projectID, publicKeyB64, mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProjectConfig, err)
	}

	if _, err := e.store.GetPolicy(ctx); err != nil {
		e.logger.Info("policy prefetch failed, will retry on first verify", "error", err)
	}
	return nil
}

// Verify decides whether the PEM-encoded leaf certificate is trusted for
// host under the current policy. Exactly one classified outcome is produced
// per call; failures emit one ERROR log line including the host.
func (e *Engine) Verify(ctx context.Context, host, certPEM string) error {
	if err := e.verify(ctx, host, certPEM); err != nil {
		e.logger.Error("pin verification failed", "host", host, "error", err)
		return err
	}
	return nil
}

func (e *Engine) verify(ctx context.Context, host, certPEM string) error {
	pol, err := e.store.GetPolicy(ctx)
	if err != nil {
		return classifyPolicyError(err)
	}

	canonical := pinning.NormalizeHost(host)

	der, err := pinning.ExtractLeafDER(certPEM)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidServerCert, err)
	}

	entry, err := pol.Lookup(canonical)
	switch {
	case errors.Is(err, policy.ErrDomainNotFound):
		mode, modeErr := e.store.Mode()
		if modeErr != nil {
			return fmt.Errorf("%w: %w", ErrInvalidProjectConfig, modeErr)
		}
		if mode == ModePermissive {
			e.logger.Info("host not in policy, permissive mode allows", "host", canonical)
			return nil
		}
		return fmt.Errorf("%w: %q", ErrDomainNotRegistered, canonical)
	case errors.Is(err, policy.ErrDuplicateDomain):
		return fmt.Errorf("%w: %w", ErrInvalidProjectConfig, err)
	case err != nil:
		return fmt.Errorf("%w: %w", ErrInvalidProjectConfig, err)
	}

	if err := pinning.Match(der, entry, time.Now(), e.logger); err != nil {
		switch {
		case errors.Is(err, pinning.ErrAllPinsExpired):
			return fmt.Errorf("%w: %q", ErrAllPinsExpired, canonical)
		default:
			return fmt.Errorf("%w: %q", ErrPinsMismatch, canonical)
		}
	}
	return nil
}

// Reset clears credentials, cache and any in-flight fetch. Test hook.
func (e *Engine) Reset() {
	e.store.Reset()
}

// SetLogLevel sets the process-wide TrustPin log level.
func (e *Engine) SetLogLevel(level logging.Level) {
	logging.SetLevel(level)
}

// Mode returns the configured pinning mode.
func (e *Engine) Mode() (Mode, error) {
	mode, err := e.store.Mode()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidProjectConfig, err)
	}
	return mode, nil
}

// classifyPolicyError maps store failures onto the closed taxonomy:
// credential problems stay configuration errors, envelope/signature/payload
// problems stay validation failures, everything else is a fetch failure.
func classifyPolicyError(err error) error {
	switch {
	case errors.Is(err, configstore.ErrNoCredentials),
		errors.Is(err, configstore.ErrInvalidCredentials):
		return fmt.Errorf("%w: %w", ErrInvalidProjectConfig, err)
	case errors.Is(err, jws.ErrInvalidEnvelope),
		errors.Is(err, jws.ErrUnsupportedAlgorithm),
		errors.Is(err, jws.ErrInvalidPublicKey),
		errors.Is(err, jws.ErrSignatureInvalid),
		errors.Is(err, policy.ErrInvalidPolicy):
		return fmt.Errorf("%w: %w", ErrConfigurationValidationFailed, err)
	default:
		return fmt.Errorf("%w: %w", ErrFetchingPinningInfo, err)
	}
}
