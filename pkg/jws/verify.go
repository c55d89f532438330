// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package jws

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"crypto/x509"
	"fmt"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

const (
	// RawSignatureSize is the length of a raw ECDSA P-256 signature: two
	// 32-byte big-endian scalars r and s concatenated.
	RawSignatureSize = 64

	// compressedPointSize is the length of a compressed P-256 point.
	compressedPointSize = 33
)

// ParsePublicKey parses an ECDSA P-256 public key from DER bytes. SPKI
// (SubjectPublicKeyInfo) encoding is preferred; for legacy key material the
// trailing 33 bytes are tried as a compressed curve point.
func ParsePublicKey(der []byte) (*ecdsa.PublicKey, error) {
	if pub, err := x509.ParsePKIXPublicKey(der); err == nil {
		key, ok := pub.(*ecdsa.PublicKey)
		if !ok || key.Curve != elliptic.P256() {
			return nil, fmt.Errorf("%w: not an ECDSA P-256 key", ErrInvalidPublicKey)
		}
		return key, nil
	}

	if len(der) >= compressedPointSize {
		tail := der[len(der)-compressedPointSize:]
		if x, y := elliptic.UnmarshalCompressed(elliptic.P256(), tail); x != nil {
			return &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}, nil
		}
	}

	return nil, fmt.Errorf("%w: not SPKI DER and no trailing compressed point", ErrInvalidPublicKey)
}

// VerifyES256 verifies a raw 64-byte r||s signature over message using ECDSA
// P-256 with SHA-256. The raw signature is re-encoded to the ASN.1 DER form
// SEQUENCE { INTEGER r, INTEGER s } before verification.
func VerifyES256(pub *ecdsa.PublicKey, message, rawSig []byte) error {
	if pub == nil {
		return ErrInvalidPublicKey
	}
	if len(rawSig) != RawSignatureSize {
		return fmt.Errorf("%w: expected %d signature bytes, got %d", ErrSignatureInvalid, RawSignatureSize, len(rawSig))
	}

	derSig, err := encodeDERSignature(rawSig)
	if err != nil {
		return err
	}

	digest := sha256.Sum256(message)
	if !ecdsa.VerifyASN1(pub, digest[:], derSig) {
		return ErrSignatureInvalid
	}
	return nil
}

// encodeDERSignature converts a raw r||s signature into ASN.1 DER. The
// INTEGER encoding trims leading zeros and restores a single 0x00 prefix
// when the high bit of the leading byte is set, keeping the value positive.
func encodeDERSignature(rawSig []byte) ([]byte, error) {
	r := new(big.Int).SetBytes(rawSig[:RawSignatureSize/2])
	s := new(big.Int).SetBytes(rawSig[RawSignatureSize/2:])

	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(child *cryptobyte.Builder) {
		child.AddASN1BigInt(r)
		child.AddASN1BigInt(s)
	})
	derSig, err := b.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: DER re-encoding failed: %w", ErrSignatureInvalid, err)
	}
	return derSig, nil
}
