package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PencariData/search-service-api/internal/domain"
)

// ErrCacheMiss reports that no live entry exists under a key.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a time-bounded key→value store for response payloads. Entries
// expire after their TTL; there is no other eviction.
type Cache[T any] interface {
	Get(ctx context.Context, key string) (*T, error)
	Set(ctx context.Context, key string, value *T, ttl time.Duration) error
	Close() error
}

// SearchKey canonicalizes an accommodation search request into a cache key.
// Query, page and mode together identify one page of results.
func SearchKey(prefix, query string, page int, mode domain.SearchMode) string {
	return fmt.Sprintf("%s:search:%s:%d:%s", prefix, query, page, mode)
}

// SuggestionKey canonicalizes a suggestion request into a cache key.
func SuggestionKey(prefix, query string, limit int) string {
	return fmt.Sprintf("%s:suggestion:%s:%d", prefix, query, limit)
}

// AccommodationSuggestionKey keys the accommodation-only suggestion family
// separately from the combined one.
func AccommodationSuggestionKey(prefix, query string, limit int) string {
	return fmt.Sprintf("%s:suggestion-acc:%s:%d", prefix, query, limit)
}
