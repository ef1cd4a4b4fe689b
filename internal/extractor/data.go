package extractor

// ParseResult holds what the crawler needs from one document:
// its title (placeholder applied) and every raw href in document order.
type ParseResult struct {
	Title string
	Hrefs []string
}
