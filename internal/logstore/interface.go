package logstore

import (
	"context"

	"github.com/google/uuid"

	"github.com/PencariData/search-service-api/internal/domain"
)

// SearchLogStore appends search log records and looks them up by search id.
// The lookup exists only for the identity-resolution query-text comparison.
type SearchLogStore interface {
	Append(ctx context.Context, record *domain.SearchLog) error
	FindBySearchID(ctx context.Context, searchID uuid.UUID) (*domain.SearchLog, error)
}

// SuggestionLogStore appends suggestion log records.
type SuggestionLogStore interface {
	Append(ctx context.Context, record *domain.SuggestionLog) error
}

// ClickLogStore appends click-through records.
type ClickLogStore interface {
	Append(ctx context.Context, record *domain.ClickLog) error
}
