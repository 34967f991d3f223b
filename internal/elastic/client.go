package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/PencariData/search-service-api/internal/domain"
)

// Client sends built payloads to the index's search endpoint. Any non-success
// transport or application-level response wraps domain.ErrIndexQuery; retry
// policy belongs to the caller's collaborators, not here.
type Client struct {
	es *elasticsearch.Client
}

func NewClient(es *elasticsearch.Client) *Client {
	return &Client{es: es}
}

// Search posts payload to index's _search endpoint and returns the parsed
// result envelope.
func (c *Client) Search(ctx context.Context, index string, payload map[string]interface{}) (*Result, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithBody(bytes.NewReader(data)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexQuery, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", domain.ErrIndexQuery, res.String())
	}

	var result Result
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrIndexQuery, err)
	}

	return &result, nil
}
