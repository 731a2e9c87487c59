package sources_test

import (
	"context"
	"sync"

	"github.com/jonesrussell/north-cloud/prospector/internal/fetcher"
	"github.com/jonesrussell/north-cloud/prospector/internal/search"
)

// fakeSearcher answers queries from a fixed table and records every request.
type fakeSearcher struct {
	mu        sync.Mutex
	responses map[string]*search.Response
	requests  []search.Request
	err       error
}

func (f *fakeSearcher) Search(_ context.Context, req search.Request) (*search.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.responses[req.Query], nil
}

func (f *fakeSearcher) Available() bool { return true }

func (f *fakeSearcher) queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.requests))
	for _, r := range f.requests {
		out = append(out, r.Query)
	}
	return out
}

// fakeFetcher serves HTML from a fixed table; unknown URLs behave like a failed fetch.
type fakeFetcher struct {
	mu      sync.Mutex
	pages   map[string]string
	fetched []string
}

func (f *fakeFetcher) Get(_ context.Context, rawURL string) (*fetcher.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, rawURL)
	body, ok := f.pages[rawURL]
	if !ok {
		return nil, nil
	}
	return &fetcher.Response{URL: rawURL, StatusCode: 200, Body: []byte(body)}, nil
}

func (f *fakeFetcher) urls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fetched...)
}
