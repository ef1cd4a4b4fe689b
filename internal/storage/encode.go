package storage

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/flowchart"
	"github.com/rohmanhakim/flowmap/internal/flowmap"
	"github.com/rohmanhakim/flowmap/pkg/types"
)

// jsonReport adds the derived graph to the map result.
type jsonReport struct {
	types.MapResult
	Graph flowmap.Graph `json:"graph"`
}

func encodeJSON(result types.MapResult) ([]byte, error) {
	return json.MarshalIndent(jsonReport{
		MapResult: result,
		Graph:     flowmap.BuildGraph(result.Pages),
	}, "", "  ")
}

func encodeCSV(result types.MapResult) ([]byte, error) {
	rows := make([]linkRow, 0, len(result.Pages))
	for _, page := range result.Pages {
		if len(page.Links) == 0 {
			rows = append(rows, linkRow{Source: page.URL, Title: page.Title, Depth: page.Depth})
			continue
		}
		for _, link := range page.Links {
			rows = append(rows, linkRow{Source: page.URL, Title: page.Title, Depth: page.Depth, Target: link})
		}
	}
	return gocsv.MarshalBytes(&rows)
}

func encodeMarkdown(result types.MapResult) ([]byte, error) {
	var sb strings.Builder
	md := markdown.NewMarkdown(&sb)

	md.H1("Flow Map")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed URL", markdown.Code(result.SeedURL)},
			{"Crawl ID", markdown.Code(result.CrawlID)},
			{"Started", result.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Pages", strconv.Itoa(result.TotalPages)},
			{"Failures", strconv.Itoa(result.Stats.Failures)},
			{"Duration", result.Stats.Duration.String()},
		},
	})
	md.PlainText("")
	if result.Stats.Truncated {
		md.Warning("The crawl hit a limit; the map is partial.")
		md.PlainText("")
	}

	md.H2("Global Navigation")
	md.PlainText("")
	if len(result.GlobalNav) == 0 {
		md.PlainText("No global navigation detected.")
	} else {
		md.BulletList(result.GlobalNav...)
	}
	md.PlainText("")

	md.H2("Pages")
	md.PlainText("")
	rows := make([][]string, 0, len(result.Pages))
	for _, page := range result.Pages {
		rows = append(rows, []string{
			strconv.Itoa(page.Depth),
			escapeCell(page.Title),
			page.URL,
			strconv.Itoa(len(page.Links)),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Depth", "Title", "URL", "Links"},
		Rows:   rows,
	})
	md.PlainText("")

	md.H2("Flow")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, flowDiagram(result.Pages))

	if err := md.Build(); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// flowDiagram renders the page graph as a top-to-bottom mermaid flowchart.
// Node names are positional since URLs are not valid mermaid identifiers.
func flowDiagram(pages []types.Page) string {
	graph := flowmap.BuildGraph(pages)
	chart := flowchart.NewFlowchart(nil, flowchart.WithOrientalTopToBottom())

	ids := make(map[string]string, len(graph.Nodes))
	for i, node := range graph.Nodes {
		id := fmt.Sprintf("p%d", i)
		ids[node.ID] = id
		chart.NodeWithText(id, escapeLabel(node.Title))
	}
	for _, edge := range graph.Edges {
		chart.LinkWithArrowHead(ids[edge.Source], ids[edge.Target])
	}
	return chart.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
