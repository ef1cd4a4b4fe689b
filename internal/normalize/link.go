package normalize

import (
	"net/url"

	"github.com/rohmanhakim/flowmap/pkg/urlutil"
)

/*
Responsibilities
- Resolve hrefs against the URL of the page they were found on
- Keep only http/https links on the seed hostname
- Canonicalize accepted links
- Deduplicate the links of one page, first occurrence wins

Canonicalization is limited to what urlutil.Canonicalize does: scheme and
host case, default ports, and one trailing slash of the path. Query and
fragment are kept, so /page and /page?x=1 are distinct links.
*/

type LinkNormalizer struct {
	seed url.URL
}

func NewLinkNormalizer(seed url.URL) LinkNormalizer {
	return LinkNormalizer{
		seed: seed,
	}
}

// Normalize returns the canonical form of href found on page, or false
// when the href is malformed or out of scope.
func (n LinkNormalizer) Normalize(href string, page url.URL) (string, bool) {
	resolved, err := urlutil.Resolve(href, page)
	if err != nil {
		return "", false
	}
	if !urlutil.IsHTTP(resolved) {
		return "", false
	}
	if !urlutil.SameHostname(resolved, n.seed) {
		return "", false
	}
	return urlutil.CanonicalString(resolved), true
}

// NormalizeAll normalizes every href and drops rejects and duplicates,
// preserving first-seen order.
func (n LinkNormalizer) NormalizeAll(hrefs []string, page url.URL) []string {
	seen := make(map[string]struct{}, len(hrefs))
	links := make([]string, 0, len(hrefs))
	for _, href := range hrefs {
		link, ok := n.Normalize(href, page)
		if !ok {
			continue
		}
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}
	return links
}
