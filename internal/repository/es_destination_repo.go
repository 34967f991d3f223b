package repository

import (
	"context"

	"github.com/PencariData/search-service-api/internal/elastic"
)

const destinationSuggestKey = "destination_suggest"

type esDestinationRepository struct {
	client *elastic.Client
	index  string
}

// NewESDestinationRepository creates an Elasticsearch-backed destination
// repository. The destination index keeps its completion field on "name".
func NewESDestinationRepository(client *elastic.Client, index string) DestinationRepository {
	return &esDestinationRepository{
		client: client,
		index:  index,
	}
}

func (r *esDestinationRepository) SuggestNames(ctx context.Context, prefix string, limit int) ([]string, error) {
	payload := elastic.NewBuilder().
		Size(0).
		Completion(destinationSuggestKey, prefix, fieldName, limit).
		Build()

	result, err := r.client.Search(ctx, r.index, payload)
	if err != nil {
		return nil, err
	}

	return result.Suggestions(destinationSuggestKey), nil
}
