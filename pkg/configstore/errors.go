// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

// Package configstore acquires and caches the signed pinning policy: it
// fetches the compact envelope from the CDN, verifies its ES256 signature,
// and serves the decoded policy from a time-bounded cache with single-flight
// coordination of concurrent fetches.
package configstore

import "errors"

var (
	// ErrNoCredentials is returned when an operation requires credentials
	// that have not been set.
	ErrNoCredentials = errors.New("configstore: credentials not configured")

	// ErrInvalidCredentials is returned when a credential field is empty or
	// the public key is not valid base64.
	ErrInvalidCredentials = errors.New("configstore: invalid credentials")

	// ErrFetchFailed is returned when every fetch attempt failed and no
	// usable cache entry exists.
	ErrFetchFailed = errors.New("configstore: policy fetch failed")
)
