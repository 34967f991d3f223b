package domain

import (
	"time"

	"github.com/google/uuid"
)

// LogValidity tags how trustworthy a log record is for analytics,
// independent of whether the request itself succeeded.
type LogValidity string

const (
	LogValid   LogValidity = "valid"
	LogSuspect LogValidity = "suspect"
	LogInvalid LogValidity = "invalid"
)

// SearchLog is the analytics record of one accommodation search request.
// Created exactly once per request, never mutated after creation; ownership
// passes to the queue on enqueue.
type SearchLog struct {
	LogID         uuid.UUID   `gorm:"primaryKey;type:uuid"`
	SessionID     uuid.UUID   `gorm:"type:uuid;index"`
	SearchID      uuid.UUID   `gorm:"type:uuid;index"`
	Timestamp     time.Time   `gorm:"index"`
	Query         string      `gorm:"size:512"`
	Mode          SearchMode  `gorm:"size:32"`
	Page          int
	ResultCount   int
	TotalResult   int
	FromCache     bool
	ElapsedMs     int64
	Validity      LogValidity `gorm:"size:16"`
	InvalidReason string      `gorm:"size:256"`
}

func (SearchLog) TableName() string { return "search_logs" }

// NewSearchLog stamps the record with a fresh log id and timestamp.
func NewSearchLog(sessionID, searchID uuid.UUID, query string, mode SearchMode,
	page, resultCount, totalResult int, fromCache bool, elapsedMs int64,
	validity LogValidity, invalidReason string) *SearchLog {
	return &SearchLog{
		LogID:         uuid.New(),
		SessionID:     sessionID,
		SearchID:      searchID,
		Timestamp:     time.Now().UTC(),
		Query:         query,
		Mode:          mode,
		Page:          page,
		ResultCount:   resultCount,
		TotalResult:   totalResult,
		FromCache:     fromCache,
		ElapsedMs:     elapsedMs,
		Validity:      validity,
		InvalidReason: invalidReason,
	}
}

// SuggestionLog is the analytics record of one suggestion request.
type SuggestionLog struct {
	LogID                    uuid.UUID   `gorm:"primaryKey;type:uuid"`
	SessionID                uuid.UUID   `gorm:"type:uuid;index"`
	Timestamp                time.Time   `gorm:"index"`
	Query                    string      `gorm:"size:512"`
	AccommodationSuggestions int
	DestinationSuggestions   int
	FromCache                bool
	ElapsedMs                int64
	Validity                 LogValidity `gorm:"size:16"`
}

func (SuggestionLog) TableName() string { return "suggestion_logs" }

func NewSuggestionLog(sessionID uuid.UUID, query string,
	accommodationSuggestions, destinationSuggestions int,
	fromCache bool, elapsedMs int64) *SuggestionLog {
	return &SuggestionLog{
		LogID:                    uuid.New(),
		SessionID:                sessionID,
		Timestamp:                time.Now().UTC(),
		Query:                    query,
		AccommodationSuggestions: accommodationSuggestions,
		DestinationSuggestions:   destinationSuggestions,
		FromCache:                fromCache,
		ElapsedMs:                elapsedMs,
		Validity:                 LogValid,
	}
}

// ClickKind separates result clicks from suggestion clicks in one table.
type ClickKind string

const (
	ClickResult     ClickKind = "result"
	ClickSuggestion ClickKind = "suggestion"
)

// ClickLog records one click-through on a search result or suggestion.
type ClickLog struct {
	LogID      uuid.UUID `gorm:"primaryKey;type:uuid"`
	SessionID  uuid.UUID `gorm:"type:uuid;index"`
	SearchID   uuid.UUID `gorm:"type:uuid;index"`
	Kind       ClickKind `gorm:"size:16"`
	DocumentID string    `gorm:"size:64"`
	ItemIndex  int
	Timestamp  time.Time `gorm:"index"`
}

func (ClickLog) TableName() string { return "click_logs" }

func NewClickLog(sessionID, searchID uuid.UUID, kind ClickKind, documentID string, itemIndex int) *ClickLog {
	return &ClickLog{
		LogID:      uuid.New(),
		SessionID:  sessionID,
		SearchID:   searchID,
		Kind:       kind,
		DocumentID: documentID,
		ItemIndex:  itemIndex,
		Timestamp:  time.Now().UTC(),
	}
}
