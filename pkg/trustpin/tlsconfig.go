// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package trustpin

import (
	"context"
	"crypto/tls"
	"encoding/pem"
	"fmt"
	"net/http"
)

// TLSConfig returns a TLS configuration that layers pin verification on top
// of the standard certificate checks. The host stack's chain, hostname and
// time validation runs first; VerifyConnection then PEM-encodes the leaf and
// submits it to Verify with the connection's server name. A nil base starts
// from a TLS 1.2+ default.
func (e *Engine) TLSConfig(base *tls.Config) *tls.Config {
	var cfg *tls.Config
	if base != nil {
		cfg = base.Clone()
	} else {
		cfg = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	cfg.VerifyConnection = func(cs tls.ConnectionState) error {
		if len(cs.PeerCertificates) == 0 {
			return fmt.Errorf("%w: no peer certificates", ErrInvalidServerCert)
		}
		leafPEM := pem.EncodeToMemory(&pem.Block{
			Type:  "CERTIFICATE",
			Bytes: cs.PeerCertificates[0].Raw,
		})
		return e.Verify(context.Background(), cs.ServerName, string(leafPEM))
	}
	return cfg
}

// PinnedClient returns an HTTP client whose TLS connections are verified
// against the pinning policy in addition to standard certificate checks.
func (e *Engine) PinnedClient(base *tls.Config) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: e.TLSConfig(base),
		},
	}
}
