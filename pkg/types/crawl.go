package types

import (
	"encoding/base64"
	"time"
)

// DefaultMaxDepth is applied when a request does not name a depth.
const DefaultMaxDepth = 2

// TitlePlaceholder is used for pages without a <title> element.
const TitlePlaceholder = "No Title"

// CrawlRequest describes one crawl. It is not modified while the crawl runs.
type CrawlRequest struct {
	SeedURL     string
	MaxDepth    int
	Credentials *Credentials
}

// Credentials is a static HTTP Basic username/password pair.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Complete reports whether both username and password are set.
// Partially filled credentials are treated as absent.
func (c *Credentials) Complete() bool {
	return c != nil && c.Username != "" && c.Password != ""
}

// AuthorizationHeader returns the Basic authorization header value,
// or an empty string when the credentials are not complete.
func (c *Credentials) AuthorizationHeader() string {
	if !c.Complete() {
		return ""
	}
	token := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Password))
	return "Basic " + token
}

// Page is one successfully fetched and parsed page.
type Page struct {
	URL   string   `json:"url"`
	Title string   `json:"title"`
	Links []string `json:"links"`
	Depth int      `json:"depth"`
}

// CrawlStats summarizes a finished crawl.
type CrawlStats struct {
	Visited      int           `json:"visited"`
	Pages        int           `json:"pages"`
	Failures     int           `json:"failures"`
	AuthFailures int           `json:"authFailures"`
	Dropped      int           `json:"dropped"`
	Duration     time.Duration `json:"durationNs"`
	Truncated    bool          `json:"truncated"`
}

// MapResult is the refined site map handed to transports and report writers.
type MapResult struct {
	CrawlID    string     `json:"crawlId"`
	SeedURL    string     `json:"seedUrl"`
	TotalPages int        `json:"totalPages"`
	GlobalNav  []string   `json:"globalNavDetected"`
	Pages      []Page     `json:"data"`
	Stats      CrawlStats `json:"stats"`
	StartedAt  time.Time  `json:"startedAt"`
}
