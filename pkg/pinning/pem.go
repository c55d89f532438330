// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package pinning

import (
	"encoding/pem"
	"fmt"
)

// ExtractLeafDER extracts the DER bytes of the first CERTIFICATE block in a
// PEM string. Multi-certificate bundles yield only the first certificate;
// the leaf is expected first, as TLS stacks present it.
func ExtractLeafDER(pemData string) ([]byte, error) {
	rest := []byte(pemData)
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			return nil, fmt.Errorf("%w: no CERTIFICATE PEM block found", ErrInvalidCertificate)
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		if len(block.Bytes) == 0 {
			return nil, fmt.Errorf("%w: empty certificate body", ErrInvalidCertificate)
		}
		return block.Bytes, nil
	}
}
