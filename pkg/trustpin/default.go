// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package trustpin

import (
	"context"

	"github.com/trustpin-cloud/trustpin-go/pkg/logging"
)

// defaultEngine backs the package-level convenience functions. Callers that
// need isolated instances, for tests or multiple projects, construct their
// own with NewEngine; independent engines reset independently.
var defaultEngine = NewEngine(nil)

// Setup configures the default engine. See Engine.Setup.
func Setup(ctx context.Context, organizationID, projectID, publicKeyB64 string, mode Mode) error {
	return defaultEngine.Setup(ctx, organizationID, projectID, publicKeyB64, mode)
}

// Verify checks a certificate against the default engine's policy. See
// Engine.Verify.
func Verify(ctx context.Context, host, certPEM string) error {
	return defaultEngine.Verify(ctx, host, certPEM)
}

// Reset clears the default engine's credentials and cache. Test hook.
func Reset() {
	defaultEngine.Reset()
}

// SetLogLevel sets the process-wide TrustPin log level.
func SetLogLevel(level logging.Level) {
	defaultEngine.SetLogLevel(level)
}
