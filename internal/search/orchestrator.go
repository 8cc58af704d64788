package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"bookfind/internal/apiclient"
	"bookfind/pkg/domain"
)

// ErrEmptyQuery rejects empty or whitespace-only queries before any
// network activity.
var ErrEmptyQuery = errors.New("search query is empty")

// Result is the outcome of one search. When the remote call failed but the
// sample fallback applied, Items holds the local matches, FromFallback is
// true, and the returned error carries the original server message.
type Result struct {
	Items        []domain.SearchResultItem
	FromFallback bool
}

// Orchestrator runs queries against the search service and shapes the
// responses for display.
type Orchestrator struct {
	client *apiclient.Client
}

// NewOrchestrator builds a search orchestrator over the service client.
func NewOrchestrator(client *apiclient.Client) *Orchestrator {
	return &Orchestrator{client: client}
}

// Search submits queryText and returns display-ready items in the service's
// relevance order. Validation and not-found failures degrade to the local
// sample set; the original error is still returned alongside so callers can
// show it. Authentication and network failures return no fallback.
func (o *Orchestrator) Search(ctx context.Context, queryText string) (Result, error) {
	trimmed := strings.TrimSpace(queryText)
	if trimmed == "" {
		return Result{}, ErrEmptyQuery
	}

	raw, err := o.client.Search(ctx, trimmed)
	if err != nil {
		if fallbackEligible(err) {
			slog.Warn("search degraded to local samples", "query", trimmed, "err", err)
			return Result{Items: matchSamples(trimmed), FromFallback: true}, err
		}
		return Result{}, err
	}
	return Result{Items: Transform(raw)}, nil
}

// Transform maps raw service records onto the display schema, filling the
// gaps the service is allowed to leave. Order is preserved; the service
// pre-sorts by relevance.
func Transform(raw []apiclient.RawResult) []domain.SearchResultItem {
	items := make([]domain.SearchResultItem, 0, len(raw))
	for _, r := range raw {
		item := domain.SearchResultItem{
			BookID:     r.Book.ID,
			Title:      r.Book.Title,
			Author:     r.Book.Author,
			Snippet:    r.Context,
			FileFormat: r.Book.FileFormat,
			Relevance:  r.Relevance,
		}
		if item.Title == "" {
			item.Title = "Untitled"
		}
		if item.Author == "" {
			item.Author = "Unknown Author"
		}
		if item.Snippet == "" {
			item.Snippet = "No description available"
		}
		items = append(items, item)
	}
	return items
}

// fallbackEligible limits sample substitution to validation and not-found
// failures. Including 404 mirrors the current service behavior; it is a
// policy choice, kept in one place.
func fallbackEligible(err error) bool {
	return apiclient.IsKind(err, apiclient.KindUnprocessable) ||
		apiclient.IsKind(err, apiclient.KindNotFound)
}
