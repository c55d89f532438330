// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

// Package pinning implements the certificate pin matching engine: PEM leaf
// extraction, hostname normalization, and hash comparison against a policy
// entry's pins.
package pinning

import "errors"

var (
	// ErrInvalidCertificate is returned when a PEM certificate is missing
	// its markers, has an undecodable body, or contains no DER bytes.
	ErrInvalidCertificate = errors.New("pinning: invalid server certificate")

	// ErrUnknownAlgorithm is returned when a pin names a hash algorithm
	// outside the supported set.
	ErrUnknownAlgorithm = errors.New("pinning: unknown hash algorithm")

	// ErrPinsMismatch is returned when at least one unexpired pin exists for
	// the host but none matches the presented certificate.
	ErrPinsMismatch = errors.New("pinning: no pin matches certificate")

	// ErrAllPinsExpired is returned when every pin for the host has expired.
	ErrAllPinsExpired = errors.New("pinning: all pins expired")
)
