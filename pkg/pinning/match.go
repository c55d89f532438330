// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package pinning

import (
	"encoding/base64"
	"log/slog"
	"time"

	"github.com/trustpin-cloud/trustpin-go/pkg/policy"
)

// Match compares the leaf certificate DER against the entry's pins.
//
// Expired pins are skipped and never cause a mismatch; this separates a
// pin-maintenance problem from a potential attack. Pins with an unknown
// algorithm are logged at ERROR and skipped, but still count as unexpired.
// The first matching pin wins.
//
// Returns nil on a match, ErrAllPinsExpired when every pin has expired, and
// ErrPinsMismatch when at least one live pin exists but none matches.
func Match(der []byte, entry *policy.Domain, now time.Time, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	anyUnexpired := false
	for i := range entry.Pins {
		pin := &entry.Pins[i]
		if pin.Expired(now) {
			logger.Debug("skipping expired pin", "domain", entry.Name, "alg", pin.Algorithm)
			continue
		}
		anyUnexpired = true

		alg, err := ParseAlgorithm(pin.Algorithm)
		if err != nil {
			logger.Error("skipping pin with unknown algorithm", "domain", entry.Name, "alg", pin.Algorithm)
			continue
		}

		if base64.StdEncoding.EncodeToString(alg.Sum(der)) == pin.Value {
			logger.Debug("pin matched", "domain", entry.Name, "alg", pin.Algorithm, "index", i)
			return nil
		}
	}

	if !anyUnexpired {
		return ErrAllPinsExpired
	}
	return ErrPinsMismatch
}
