// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package configstore

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

// generateSigningKey creates an ECDSA P-256 key pair for policy signing.
func generateSigningKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return key
}

// publicKeyB64 returns the standard base64 of the key's SPKI DER, the form
// credentials carry.
func publicKeyB64(t *testing.T, key *ecdsa.PrivateKey) string {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(der)
}

// signPolicyToken assembles a compact envelope over the payload JSON with a
// raw 64-byte r||s ES256 signature, the CDN wire format.
func signPolicyToken(t *testing.T, key *ecdsa.PrivateKey, payload string) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"ES256","typ":"JWT"}`))
	body := base64.RawURLEncoding.EncodeToString([]byte(payload))
	signingInput := header + "." + body

	digest := sha256.Sum256([]byte(signingInput))
	r, s, err := ecdsa.Sign(rand.Reader, key, digest[:])
	require.NoError(t, err)

	sig := make([]byte, 64)
	r.FillBytes(sig[:32])
	s.FillBytes(sig[32:])

	return signingInput + "." + base64.RawURLEncoding.EncodeToString(sig)
}

const testPolicyJSON = `{
	"version": 1,
	"iat": 1700000000,
	"nbf": 1700000000,
	"domains": [
		{"domain": "api.example.com", "last_updated": 1700000000,
		 "pins": [{"pin": "c29tZWhhc2g=", "alg": "sha256"}]}
	]
}`
