// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

// Package jws parses and verifies the compact signed envelope carrying a
// pinning policy: three base64url segments "header.payload.signature" where
// the signature is a raw 64-byte ECDSA P-256 value (r||s) over the ASCII
// bytes of "header.payload".
package jws

import "errors"

var (
	// ErrInvalidEnvelope is returned when the token does not have exactly
	// three segments or a segment is not valid base64url.
	ErrInvalidEnvelope = errors.New("jws: invalid envelope")

	// ErrUnsupportedAlgorithm is returned when the envelope header declares
	// an algorithm other than ES256.
	ErrUnsupportedAlgorithm = errors.New("jws: unsupported algorithm")

	// ErrInvalidPublicKey is returned when the public key bytes cannot be
	// parsed as an ECDSA P-256 key.
	ErrInvalidPublicKey = errors.New("jws: invalid public key")

	// ErrSignatureInvalid is returned when the signature has the wrong
	// length, cannot be re-encoded, or does not verify against the key.
	ErrSignatureInvalid = errors.New("jws: signature verification failed")
)
