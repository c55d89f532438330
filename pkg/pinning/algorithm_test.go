// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package pinning

import (
	"crypto/sha256"
	"crypto/sha512"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlgorithm(t *testing.T) {
	alg, err := ParseAlgorithm("sha256")
	require.NoError(t, err)
	assert.Equal(t, AlgSHA256, alg)

	alg, err = ParseAlgorithm("sha512")
	require.NoError(t, err)
	assert.Equal(t, AlgSHA512, alg)
}

func TestParseAlgorithm_Unknown(t *testing.T) {
	for _, s := range []string{"", "md5", "sha1", "SHA256", "sha3-256"} {
		_, err := ParseAlgorithm(s)
		assert.ErrorIs(t, err, ErrUnknownAlgorithm, "input %q", s)
	}
}

func TestAlgorithm_Sum(t *testing.T) {
	data := []byte("certificate der bytes")

	want256 := sha256.Sum256(data)
	assert.Equal(t, want256[:], AlgSHA256.Sum(data))

	want512 := sha512.Sum512(data)
	assert.Equal(t, want512[:], AlgSHA512.Sum(data))
}

func TestAlgorithm_String(t *testing.T) {
	assert.Equal(t, "sha256", AlgSHA256.String())
	assert.Equal(t, "sha512", AlgSHA512.String())
}
