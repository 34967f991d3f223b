package service

import (
	"context"

	"github.com/PencariData/search-service-api/internal/domain"
)

// AccommodationSearchService orchestrates one accommodation search request:
// validation, identity resolution, cache, index dispatch, response assembly
// and log emission.
type AccommodationSearchService interface {
	Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error)
}

// SuggestionSearchService orchestrates suggestion requests.
type SuggestionSearchService interface {
	Suggestions(ctx context.Context, req *domain.SuggestionRequest) (*domain.SuggestionResponse, error)
	AccommodationSuggestions(ctx context.Context, req *domain.SuggestionRequest) (*domain.SuggestionResponse, error)
}

// InteractionService registers fire-and-forget click-through events.
type InteractionService interface {
	RegisterResultClick(ctx context.Context, req *domain.ClickRequest) error
	RegisterSuggestionClick(ctx context.Context, req *domain.ClickRequest) error
}

// CachedSearchResult is the cache payload for a search page: items and total
// only. Response meta is rebuilt per request so identity resolution applies
// on cache hits too.
type CachedSearchResult struct {
	Accommodations []domain.Accommodation `json:"accommodations"`
	Total          int                    `json:"total"`
}

// CachedSuggestions is the cache payload for a suggestion request.
type CachedSuggestions struct {
	AccommodationSuggestions []string `json:"accommodation_suggestions"`
	DestinationSuggestions   []string `json:"destination_suggestions"`
}
