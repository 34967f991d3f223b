package repository

import (
	"context"

	"github.com/PencariData/search-service-api/internal/domain"
	"github.com/PencariData/search-service-api/internal/elastic"
	"github.com/PencariData/search-service-api/pkg/log"
)

// Index field names for the accommodation index.
const (
	fieldName             = "name"
	fieldNameNgram        = "name.ngram"
	fieldDestination      = "destinationName"
	fieldDestinationNgram = "destinationName.ngram"
	fieldNameSuggest      = "name_suggest"

	accommodationSuggestKey = "accommodation_suggest"
)

type esAccommodationRepository struct {
	client *elastic.Client
	index  string
}

// NewESAccommodationRepository creates an Elasticsearch-backed
// accommodation repository.
func NewESAccommodationRepository(client *elastic.Client, index string) AccommodationRepository {
	return &esAccommodationRepository{
		client: client,
		index:  index,
	}
}

func (r *esAccommodationRepository) SearchFreeText(ctx context.Context, query string, page, limit int) (*SearchResult, error) {
	payload := elastic.NewBuilder().
		Pagination(page, limit).
		MultiMatch([]string{fieldDestinationNgram, fieldNameNgram}, query).
		Build()

	return r.search(ctx, payload)
}

func (r *esAccommodationRepository) SearchByName(ctx context.Context, query string, page, limit int) (*SearchResult, error) {
	payload := elastic.NewBuilder().
		Pagination(page, limit).
		Match(fieldName, query).
		Build()

	return r.search(ctx, payload)
}

func (r *esAccommodationRepository) SearchByDestination(ctx context.Context, query string, page, limit int) (*SearchResult, error) {
	payload := elastic.NewBuilder().
		Pagination(page, limit).
		Match(fieldDestination, query).
		Build()

	return r.search(ctx, payload)
}

func (r *esAccommodationRepository) SuggestNames(ctx context.Context, prefix string, limit int) ([]string, error) {
	payload := elastic.NewBuilder().
		Size(0).
		Completion(accommodationSuggestKey, prefix, fieldNameSuggest, limit).
		Build()

	result, err := r.client.Search(ctx, r.index, payload)
	if err != nil {
		return nil, err
	}

	return result.Suggestions(accommodationSuggestKey), nil
}

func (r *esAccommodationRepository) search(ctx context.Context, payload map[string]interface{}) (*SearchResult, error) {
	result, err := r.client.Search(ctx, r.index, payload)
	if err != nil {
		return nil, err
	}

	l := log.Ctx(ctx)
	sources := result.Sources()
	accommodations := make([]domain.Accommodation, 0, len(sources))
	for _, src := range sources {
		acc, err := mapAccommodation(src)
		if err != nil {
			// One bad document must not fail the page.
			l.Warn().Err(err).Str(log.FieldIndex, r.index).Msg("skipping unmappable document")
			continue
		}
		accommodations = append(accommodations, acc)
	}

	return &SearchResult{
		Accommodations: accommodations,
		Total:          result.Total(),
	}, nil
}
