package utils

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// CanonicalDomain returns a host name in canonical form:
// - Lowercased
// - Trimmed of surrounding whitespace
// - No trailing dot
func CanonicalDomain(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	for strings.HasSuffix(name, ".") {
		name = strings.TrimSuffix(name, ".")
	}
	return name
}

// RegistrableDomain returns the public-suffix-level domain (PLD) for a host,
// e.g. "docs.example.co.uk" -> "example.co.uk". Falls back to the canonical
// host when the public suffix list cannot produce an eTLD+1 (bare TLDs,
// IP literals, single labels).
func RegistrableDomain(host string) string {
	cn := CanonicalDomain(host)
	pld, err := publicsuffix.EffectiveTLDPlusOne(cn)
	if err != nil {
		return cn
	}
	return pld
}

// SameSite reports whether two hosts share the same registrable domain.
// Used to decide whether an absolute llms.txt link still points at the
// audited domain.
func SameSite(a, b string) bool {
	return RegistrableDomain(a) == RegistrableDomain(b)
}
