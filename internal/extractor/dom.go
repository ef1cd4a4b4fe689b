package extractor

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/flowmap/pkg/failure"
	"github.com/rohmanhakim/flowmap/pkg/types"
	"golang.org/x/net/html"
)

/*
Responsibilities
- Parse a fetched document into a DOM tree
- Extract the page title
- Extract every outbound href of <a href> elements

The parser is lenient: any text payload yields a result, possibly with
the title placeholder and no links. Binary payloads are rejected.
Hrefs are returned raw; resolution and scoping belong to the normalizer.
*/

type Parser interface {
	Parse(sourceUrl url.URL, body []byte) (ParseResult, failure.ClassifiedError)
}

type DomExtractor struct{}

func NewDomExtractor() DomExtractor {
	return DomExtractor{}
}

func (d DomExtractor) Parse(
	sourceUrl url.URL,
	body []byte,
) (ParseResult, failure.ClassifiedError) {
	if !isTextual(body) {
		return ParseResult{}, &ExtractionError{
			Message:   fmt.Sprintf("%s is not a text document (%s)", sourceUrl.String(), http.DetectContentType(body)),
			Retryable: false,
			Cause:     ErrCauseNotHTML,
		}
	}

	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ParseResult{}, &ExtractionError{
			Message:   fmt.Sprintf("failed to parse HTML: %v", err),
			Retryable: false,
			Cause:     ErrCauseParseFailed,
		}
	}
	doc := goquery.NewDocumentFromNode(root)

	return ParseResult{
		Title: extractTitle(doc),
		Hrefs: extractHrefs(doc),
	}, nil
}

func extractTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return types.TitlePlaceholder
	}
	return title
}

func extractHrefs(doc *goquery.Document) []string {
	anchors := doc.Find("a[href]")
	hrefs := make([]string, 0, anchors.Length())
	anchors.Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}

// isTextual sniffs the payload the way net/http does.
func isTextual(body []byte) bool {
	if len(body) == 0 {
		return true
	}
	sniffed := http.DetectContentType(body)
	return strings.HasPrefix(sniffed, "text/") ||
		strings.Contains(sniffed, "xml") ||
		strings.Contains(sniffed, "json")
}
