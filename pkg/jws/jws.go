// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package jws

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// AlgorithmES256 is the only signing algorithm accepted in envelope headers.
const AlgorithmES256 = "ES256"

// Header is the decoded envelope header. Unrecognized fields are ignored.
type Header struct {
	Algorithm string `json:"alg"`
	Type      string `json:"typ"`
}

// Envelope is a parsed compact signed envelope. SigningInput holds the ASCII
// bytes of the first two segments joined by a dot, the exact bytes the
// signature covers.
type Envelope struct {
	Header       Header
	Payload      []byte
	Signature    []byte
	SigningInput []byte
}

// DecodeSegment decodes a base64url (RFC 4648 section 5, unpadded) segment.
// Inputs whose length is 1 mod 4 cannot be valid base64 and are rejected.
func DecodeSegment(s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}
	return b, nil
}

// Parse splits a compact token into its three segments, decodes the header,
// payload and signature, and validates the declared algorithm. The payload
// JSON is not interpreted here; callers decode it after verification.
func Parse(token string) (*Envelope, error) {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrInvalidEnvelope, len(parts))
	}

	headerBytes, err := DecodeSegment(parts[0])
	if err != nil {
		return nil, err
	}
	payload, err := DecodeSegment(parts[1])
	if err != nil {
		return nil, err
	}
	signature, err := DecodeSegment(parts[2])
	if err != nil {
		return nil, err
	}

	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, fmt.Errorf("%w: header is not valid JSON: %w", ErrInvalidEnvelope, err)
	}
	if header.Algorithm != AlgorithmES256 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, header.Algorithm)
	}

	return &Envelope{
		Header:       header,
		Payload:      payload,
		Signature:    signature,
		SigningInput: []byte(parts[0] + "." + parts[1]),
	}, nil
}
