package api

import "github.com/rohmanhakim/flowmap/pkg/types"

const (
	msgInvalidURL   = "Invalid or malformed URL provided."
	msgInvalidBody  = "Invalid request body."
	msgInvalidDepth = "maxDepth must not be negative."
	msgMapFailed    = "Mapping failed: "
)

// CrawlRequest is the JSON body of POST /api/crawl.
// MaxDepth is a pointer so an absent value can fall back to the default.
type CrawlRequest struct {
	URL         string             `json:"url"`
	MaxDepth    *int               `json:"maxDepth,omitempty"`
	Credentials *types.Credentials `json:"credentials,omitempty"`
}

// CrawlResponse is the body of a successful POST /api/crawl.
type CrawlResponse struct {
	Success bool `json:"success"`
	types.MapResult
}

type ErrorResponse struct {
	Error string `json:"error"`
}
