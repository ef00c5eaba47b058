package webhooks

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// pageIterator walks a paginated listing one page per Next call. It stops
// when a page has no next link or when the next link points at a page that
// was already fetched. Not safe for concurrent use.
type pageIterator[T any] struct {
	client  *Client
	nextURL string
	visited map[string]struct{}
}

func newPageIterator[T any](client *Client, first string) *pageIterator[T] {
	return &pageIterator[T]{
		client:  client,
		nextURL: first,
		visited: make(map[string]struct{}),
	}
}

// Next fetches the next page. Returns nil, nil when there are no more pages.
func (it *pageIterator[T]) Next(ctx context.Context) (*T, error) {
	if it.nextURL == "" {
		return nil, nil
	}
	if _, seen := it.visited[it.nextURL]; seen {
		it.client.logger.Warn("pagination cycle detected, stopping", "url", it.nextURL)
		it.nextURL = ""
		return nil, nil
	}
	current := it.nextURL
	it.visited[current] = struct{}{}

	var page T
	header, err := it.client.do(ctx, http.MethodGet, current, nil, &page)
	if err != nil {
		return nil, err
	}

	it.nextURL = resolveNext(current, parseLinkNext(header.Get("Link")))
	return &page, nil
}

// Fetched is the number of pages requested so far
func (it *pageIterator[T]) Fetched() int {
	return len(it.visited)
}

// parseLinkNext extracts the rel=next target from an RFC 8288 Link header.
// The rel match is case-insensitive, quotes are optional and rel may list
// several space-separated relation types. Returns "" when there is none.
//
// Format: <https://api.example.com/webhooks?cursor=abc>; rel="next", <...>; rel="prev"
func parseLinkNext(header string) string {
	if header == "" {
		return ""
	}

	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(strings.TrimSpace(part), ";")
		if len(segments) < 2 {
			continue
		}

		urlPart := strings.TrimSpace(segments[0])
		if !strings.HasPrefix(urlPart, "<") || !strings.HasSuffix(urlPart, ">") {
			continue
		}

		for _, param := range segments[1:] {
			key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(key), "rel") {
				continue
			}
			value = strings.Trim(strings.TrimSpace(value), `"`)
			for _, rel := range strings.Fields(value) {
				if strings.EqualFold(rel, "next") {
					return urlPart[1 : len(urlPart)-1]
				}
			}
		}
	}

	return ""
}

// resolveNext makes a relative next link absolute against the page it came from
func resolveNext(current, next string) string {
	if next == "" {
		return ""
	}
	base, err := url.Parse(current)
	if err != nil {
		return next
	}
	ref, err := url.Parse(next)
	if err != nil {
		return next
	}
	return base.ResolveReference(ref).String()
}
