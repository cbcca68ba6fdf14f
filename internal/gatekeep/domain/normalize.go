package domain

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrInvalidDomain reports a hostname that cannot be normalized into an index
// key. Callers must treat it as a refusal, never as "unknown domain".
var ErrInvalidDomain = errors.New("domain: invalid hostname")

// NormalizeDomain canonicalises a raw hostname into the form used as the
// domain index key: scheme, path and port stripped, lowercased, a single
// trailing dot removed.
//
// Wildcards and IP literals are rejected. Subdomain wildcarding is
// deliberately unsupported; every subdomain must be authorized explicitly.
func NormalizeDomain(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	if host, port, err := net.SplitHostPort(s); err == nil && port != "" {
		s = host
	}

	s = strings.ToLower(s)
	s = strings.TrimSuffix(s, ".")

	if s == "" {
		return "", fmt.Errorf("%w: empty hostname", ErrInvalidDomain)
	}
	if strings.Contains(s, "*") {
		return "", fmt.Errorf("%w: wildcard hostnames are not supported", ErrInvalidDomain)
	}
	if net.ParseIP(s) != nil || strings.HasPrefix(s, "[") {
		return "", fmt.Errorf("%w: IP literals are not supported", ErrInvalidDomain)
	}

	for _, label := range strings.Split(s, ".") {
		if label == "" {
			return "", fmt.Errorf("%w: empty label in %q", ErrInvalidDomain, s)
		}
		for _, r := range label {
			switch {
			case r >= 'a' && r <= 'z':
			case r >= '0' && r <= '9':
			case r == '-' || r == '_':
			default:
				return "", fmt.Errorf("%w: illegal character %q", ErrInvalidDomain, r)
			}
		}
	}

	return s, nil
}
