// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

// Package trustpin is the certificate pinning engine façade. Given a signed
// pinning policy delivered out-of-band, it decides whether a server's leaf
// certificate for a hostname is trusted, detecting interception beyond the
// protections of the host PKI.
//
// The engine trusts the host TLS stack for chain, hostname and time
// validation and pins the leaf certificate only.
package trustpin

import "errors"

// The closed set of outcomes surfaced by the engine.
var (
	// ErrInvalidProjectConfig indicates empty or malformed credentials, use
	// before Setup, or a policy with multiple entries for one domain.
	ErrInvalidProjectConfig = errors.New("trustpin: invalid project configuration")

	// ErrFetchingPinningInfo indicates every network attempt failed and no
	// usable cached policy exists. Callers may retry with back-off.
	ErrFetchingPinningInfo = errors.New("trustpin: unable to fetch pinning info")

	// ErrConfigurationValidationFailed indicates a malformed envelope, a
	// signature that does not verify, or an invalid policy payload. This is
	// an integrity breach, never retried.
	ErrConfigurationValidationFailed = errors.New("trustpin: configuration validation failed")

	// ErrInvalidServerCert indicates the presented certificate is missing
	// PEM markers, undecodable, or empty.
	ErrInvalidServerCert = errors.New("trustpin: invalid server certificate")

	// ErrDomainNotRegistered indicates strict mode and a host absent from
	// the policy.
	ErrDomainNotRegistered = errors.New("trustpin: domain not registered")

	// ErrPinsMismatch indicates an unexpired pin exists for the host but
	// none matches the certificate. Treat as a potential attack.
	ErrPinsMismatch = errors.New("trustpin: pins mismatch")

	// ErrAllPinsExpired indicates every pin for the host has expired.
	// Rotate pins urgently.
	ErrAllPinsExpired = errors.New("trustpin: all pins expired")
)
