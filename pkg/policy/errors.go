// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

// Package policy defines the typed pinning policy model: the signed payload
// listing pinned domains and their certificate pins.
package policy

import "errors"

var (
	// ErrInvalidPolicy is returned when the payload JSON has the wrong shape
	// or is missing required fields.
	ErrInvalidPolicy = errors.New("policy: invalid policy payload")

	// ErrDomainNotFound is returned by Lookup when no entry matches the
	// requested domain.
	ErrDomainNotFound = errors.New("policy: domain not registered")

	// ErrDuplicateDomain is returned by Lookup when the policy contains more
	// than one entry for the requested domain.
	ErrDuplicateDomain = errors.New("policy: duplicate domain entry")
)
