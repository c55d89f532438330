// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package policy

import (
	"encoding/json"
	"fmt"
	"time"
)

// Pin is a single certificate pin: the base64-encoded hash of a legitimate
// leaf certificate's full DER bytes under the named algorithm.
type Pin struct {
	// Value is the standard (padded) base64 encoding of the hash.
	Value string `json:"pin"`

	// Algorithm names the hash function, "sha256" or "sha512". Unknown
	// algorithms are tolerated here and skipped by the matcher.
	Algorithm string `json:"alg"`

	// ExpiresAt is the pin's expiry as unix seconds. Nil means the pin
	// never expires.
	ExpiresAt *int64 `json:"expires_at,omitempty"`
}

// Expired reports whether the pin has expired. A pin is expired iff
// ExpiresAt is set and strictly less than now.
func (p *Pin) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && *p.ExpiresAt < now.Unix()
}

// Domain is a pinned host entry. Name is a lowercase DNS name without scheme
// or path; a "*." prefix carries no wildcard meaning and is matched as a
// literal label.
type Domain struct {
	Name        string `json:"domain"`
	LastUpdated int64  `json:"last_updated"`
	Pins        []Pin  `json:"pins"`
}

// Policy is the decoded payload of the signed envelope. The iat/nbf/exp
// claims are parsed and surfaced but not enforced; trust is gated by the
// envelope signature and per-pin expiry only.
type Policy struct {
	Version   int      `json:"version"`
	Domains   []Domain `json:"domains"`
	IssuedAt  int64    `json:"iat"`
	NotBefore int64    `json:"nbf"`
	ExpiresAt *int64   `json:"exp,omitempty"`
}

// Decode parses and validates a policy payload. Unknown JSON fields are
// ignored; a missing domains list, a nameless entry, an entry without pins,
// or a pin without a value or algorithm is an ErrInvalidPolicy.
func Decode(data []byte) (*Policy, error) {
	var p Policy
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}
	if p.Domains == nil {
		return nil, fmt.Errorf("%w: missing domains", ErrInvalidPolicy)
	}
	for i := range p.Domains {
		d := &p.Domains[i]
		if d.Name == "" {
			return nil, fmt.Errorf("%w: domain entry %d has no domain", ErrInvalidPolicy, i)
		}
		if len(d.Pins) == 0 {
			return nil, fmt.Errorf("%w: domain %q has no pins", ErrInvalidPolicy, d.Name)
		}
		for j := range d.Pins {
			pin := &d.Pins[j]
			if pin.Value == "" {
				return nil, fmt.Errorf("%w: domain %q pin %d has no value", ErrInvalidPolicy, d.Name, j)
			}
			if pin.Algorithm == "" {
				return nil, fmt.Errorf("%w: domain %q pin %d has no algorithm", ErrInvalidPolicy, d.Name, j)
			}
		}
	}
	return &p, nil
}

// Lookup returns the unique entry whose Name equals domain byte-exactly.
// Callers normalize the host before lookup; entries are stored lowercase.
func (p *Policy) Lookup(domain string) (*Domain, error) {
	var found *Domain
	for i := range p.Domains {
		if p.Domains[i].Name != domain {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateDomain, domain)
		}
		found = &p.Domains[i]
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrDomainNotFound, domain)
	}
	return found, nil
}
