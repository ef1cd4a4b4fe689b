package noise

import (
	"github.com/rohmanhakim/flowmap/pkg/collection"
	"github.com/rohmanhakim/flowmap/pkg/types"
)

/*
Global navigation detection.

A link is navigation chrome (header, footer, sidebar) when it appears on
more than GlobalNavThreshold of all crawled pages. Frequency is counted
per page, not per occurrence, and a page linking to itself does not count.
Small crawls (two pages or fewer) degenerate: one shared link already
passes the threshold.
*/

// GlobalNavThreshold is compared with a strict greater-than.
const GlobalNavThreshold = 0.6

// Identify returns the set of links classified as global navigation.
// It does not modify pages and returns a fresh set on every call.
func Identify(pages []types.Page) collection.Set[string] {
	nav := collection.NewSet[string]()
	totalPages := len(pages)
	if totalPages == 0 {
		return nav
	}

	frequency := make(map[string]int)
	for _, page := range pages {
		unique := collection.NewSet[string]()
		for _, link := range page.Links {
			if link == page.URL {
				continue
			}
			unique.Add(link)
		}
		for link := range unique {
			frequency[link]++
		}
	}

	for link, count := range frequency {
		if float64(count)/float64(totalPages) > GlobalNavThreshold {
			nav.Add(link)
		}
	}
	return nav
}

// Refine returns copies of pages with every link in nav removed.
func Refine(pages []types.Page, nav collection.Set[string]) []types.Page {
	refined := make([]types.Page, 0, len(pages))
	for _, page := range pages {
		links := make([]string, 0, len(page.Links))
		for _, link := range page.Links {
			if nav.Contains(link) {
				continue
			}
			links = append(links, link)
		}
		page.Links = links
		refined = append(refined, page)
	}
	return refined
}
