package repository

import (
	"context"

	"github.com/PencariData/search-service-api/internal/domain"
)

// SearchResult is one page of accommodation hits plus the index-reported
// total, which may exceed the page's hit count.
type SearchResult struct {
	Accommodations []domain.Accommodation
	Total          int
}

// AccommodationRepository defines search operations against the
// accommodation index.
type AccommodationRepository interface {
	SearchFreeText(ctx context.Context, query string, page, limit int) (*SearchResult, error)
	SearchByName(ctx context.Context, query string, page, limit int) (*SearchResult, error)
	SearchByDestination(ctx context.Context, query string, page, limit int) (*SearchResult, error)
	SuggestNames(ctx context.Context, prefix string, limit int) ([]string, error)
}

// DestinationRepository defines suggestion operations against the
// destination index.
type DestinationRepository interface {
	SuggestNames(ctx context.Context, prefix string, limit int) ([]string, error)
}
