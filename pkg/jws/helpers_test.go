// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package jws

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// ed25519TestKey generates an Ed25519 public key for negative key-type tests.
func ed25519TestKey(t *testing.T) ed25519.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return pub
}

// buildSignedToken assembles a compact envelope with an ES256 header and a
// raw 64-byte r||s signature over the first two segments.
func buildSignedToken(t *testing.T, key *ecdsa.PrivateKey, payload []byte) string {
	t.Helper()
	header := segment([]byte(`{"alg":"ES256","typ":"JWT"}`))
	body := segment(payload)
	signingInput := header + "." + body
	sig := signRaw(t, key, []byte(signingInput))
	return signingInput + "." + segment(sig)
}
