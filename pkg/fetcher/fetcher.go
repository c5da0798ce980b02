// Package fetcher defines the interface for recipe page fetching.
// Implement the Fetcher interface to supply pages from a different
// source (fixtures, a cache, a rendering service).
package fetcher

import (
	"context"
	"time"
)

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns a string identifying the fetcher type (e.g., "static", "dynamic").
	Type() string
}

// Options controls fetching behavior.
type Options struct {
	UserAgent       string
	Timeout         time.Duration
	WaitForSelector string        // CSS selector to wait for (dynamic fetcher)
	WaitDuration    time.Duration // Additional wait after load
	Headers         map[string]string
}

// Content represents fetched page data.
type Content struct {
	URL         string
	HTML        string
	Text        string // Extracted readable text
	Title       string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}
