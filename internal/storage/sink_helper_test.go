package storage_test

import (
	"time"

	"github.com/rohmanhakim/flowmap/internal/metadata"
	"github.com/rohmanhakim/flowmap/pkg/types"
)

// metadataSinkMock is a mock for metadata.MetadataSink
type metadataSinkMock struct {
	recordErrorCalled    bool
	recordErrorCause     metadata.ErrorCause
	recordErrorAttrs     []metadata.Attribute
	recordArtifactCalled bool
	recordArtifactKind   metadata.ArtifactKind
	recordArtifactPath   string
	recordArtifactAttrs  []metadata.Attribute
}

func (m *metadataSinkMock) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.recordErrorCalled = true
	m.recordErrorCause = cause
	m.recordErrorAttrs = attrs
}

func (m *metadataSinkMock) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	retryCount int,
	crawlDepth int,
) {
}

func (m *metadataSinkMock) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
	m.recordArtifactCalled = true
	m.recordArtifactKind = kind
	m.recordArtifactPath = path
	m.recordArtifactAttrs = attrs
}

func attrValue(attrs []metadata.Attribute, key metadata.AttributeKey) string {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

func sampleResult() types.MapResult {
	return types.MapResult{
		CrawlID:    "2f1c0b9e-0000-4000-8000-000000000001",
		SeedURL:    "https://example.com",
		TotalPages: 3,
		GlobalNav:  []string{"https://example.com/about"},
		Pages: []types.Page{
			{URL: "https://example.com", Title: "Home", Depth: 0, Links: []string{"https://example.com/docs", "https://example.com/blog"}},
			{URL: "https://example.com/docs", Title: `Docs "v2" | Guide`, Depth: 1, Links: []string{"https://example.com", "https://example.com/external-only"}},
			{URL: "https://example.com/blog", Title: "Blog", Depth: 1, Links: []string{}},
		},
		Stats:     types.CrawlStats{Visited: 3, Pages: 3},
		StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}
