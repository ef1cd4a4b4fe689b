package urlutil

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrNotAbsolute = errors.New("url is not absolute")

// ParseSeed parses a crawl seed. The seed must be an absolute URL with a
// host; any scheme is accepted here, scope checks happen per link.
func ParseSeed(raw string) (url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return url.URL{}, fmt.Errorf("%w: empty url", ErrNotAbsolute)
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return url.URL{}, err
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return url.URL{}, fmt.Errorf("%w: %q", ErrNotAbsolute, raw)
	}
	return *parsed, nil
}

// Resolve resolves href against base the way a browser does for <a href>:
// relative, absolute and protocol-relative references are supported.
func Resolve(href string, base url.URL) (url.URL, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return url.URL{}, err
	}
	return *base.ResolveReference(ref), nil
}

// IsHTTP reports whether the URL uses the http or https scheme.
func IsHTTP(u url.URL) bool {
	scheme := lowerASCII(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// SameHostname compares hostnames case-insensitively, ignoring ports.
func SameHostname(a, b url.URL) bool {
	return lowerASCII(a.Hostname()) == lowerASCII(b.Hostname())
}

// Canonicalize maps a URL to the string form used for visitation and
// link equality.
//
// The normalization follows these rules:
//   - Scheme and host are lowercased
//   - Default ports are omitted (e.g., :80 for http, :443 for https)
//   - A single trailing slash is removed from the path, including the root path
//   - Query and fragment are left untouched
//
// Properties:
//   - Pure: no state, no memory
//   - Deterministic: same input always produces same output
//   - Context-free: does not depend on crawl history
func Canonicalize(sourceUrl url.URL) url.URL {
	// Create a copy to avoid mutating the original
	canonical := sourceUrl

	// Lowercase scheme and host
	canonical.Scheme = lowerASCII(canonical.Scheme)
	canonical.Host = lowerASCII(canonical.Host)

	// Remove default port if present
	if host, port := canonical.Hostname(), canonical.Port(); port != "" {
		if (canonical.Scheme == "http" && port == "80") ||
			(canonical.Scheme == "https" && port == "443") {
			canonical.Host = host
		}
	}

	canonical.Path = stripTrailingSlash(canonical.Path)
	if canonical.RawPath != "" {
		canonical.RawPath = stripTrailingSlash(canonical.RawPath)
	}

	return canonical
}

// CanonicalString is Canonicalize followed by String.
func CanonicalString(sourceUrl url.URL) string {
	canonical := Canonicalize(sourceUrl)
	return canonical.String()
}

// lowerASCII converts ASCII characters to lowercase without allocating.
// This is faster than strings.ToLower for ASCII-only strings.
func lowerASCII(s string) string {
	var needsLower bool
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			needsLower = true
			break
		}
	}
	if !needsLower {
		return s
	}
	b := make([]byte, len(s))
	copy(b, s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// stripTrailingSlash removes one trailing slash from a path.
func stripTrailingSlash(path string) string {
	if strings.HasSuffix(path, "/") {
		return path[:len(path)-1]
	}
	return path
}
