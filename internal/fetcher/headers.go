package fetcher

import "net/http"

// applyHeaders sets the request headers sent with every fetch.
// Accept-Encoding is left to net/http so compressed bodies are decoded.
func applyHeaders(req *http.Request, userAgent string, authorization string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
}
