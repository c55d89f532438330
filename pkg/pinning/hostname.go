// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package pinning

import "strings"

// NormalizeHost canonicalizes a hostname for policy lookup: lowercase, any
// leading http:// or https:// scheme stripped, everything from the first
// slash dropped, surrounding whitespace trimmed. The result is compared
// byte-exactly against policy entries, which are stored lowercase.
func NormalizeHost(host string) string {
	h := strings.ToLower(strings.TrimSpace(host))
	h = strings.TrimPrefix(h, "https://")
	h = strings.TrimPrefix(h, "http://")
	if i := strings.IndexByte(h, '/'); i >= 0 {
		h = h[:i]
	}
	return strings.TrimSpace(h)
}
