package flowmap

import "github.com/rohmanhakim/flowmap/pkg/types"

// Node is one crawled page.
type Node struct {
	ID    string `json:"id" csv:"id"`
	Title string `json:"title" csv:"title"`
	Depth int    `json:"depth" csv:"depth"`
}

// Edge is a refined link between two crawled pages.
type Edge struct {
	Source string `json:"source" csv:"source"`
	Target string `json:"target" csv:"target"`
}

type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// BuildGraph derives the flow graph of a map. Links pointing outside the
// crawled set and self links produce no edge. Order follows the pages.
func BuildGraph(pages []types.Page) Graph {
	graph := Graph{
		Nodes: make([]Node, 0, len(pages)),
		Edges: []Edge{},
	}
	crawled := make(map[string]struct{}, len(pages))
	for _, page := range pages {
		crawled[page.URL] = struct{}{}
		graph.Nodes = append(graph.Nodes, Node{
			ID:    page.URL,
			Title: page.Title,
			Depth: page.Depth,
		})
	}

	for _, page := range pages {
		for _, link := range page.Links {
			if link == page.URL {
				continue
			}
			if _, ok := crawled[link]; !ok {
				continue
			}
			graph.Edges = append(graph.Edges, Edge{Source: page.URL, Target: link})
		}
	}
	return graph
}
