package domain

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// SearchMode selects which index fields a search targets.
type SearchMode string

const (
	SearchFreeText      SearchMode = "free_text"
	SearchByName        SearchMode = "by_name"
	SearchByDestination SearchMode = "by_destination"
)

var validate = validator.New()

// SearchRequest is one accommodation search call. SearchID correlates
// paginated requests of the same logical search; uuid.Nil means the caller
// supplied none.
type SearchRequest struct {
	Query     string     `validate:"required"`
	Mode      SearchMode `validate:"oneof=free_text by_name by_destination"`
	Page      int        `validate:"gte=0"`
	Limit     int        `validate:"gt=0"`
	SearchID  uuid.UUID
	SessionID uuid.UUID
}

// Validate checks field presence, bounds and enum membership, returning one
// message per violated field. maxLimit is the configured page-size cap.
func (r *SearchRequest) Validate(maxLimit int) *ValidationError {
	verr := &ValidationError{}
	collectFieldErrors(verr, validate.Struct(r))
	if r.Limit > maxLimit {
		verr.Add("Limit", "must be at most "+strconv.Itoa(maxLimit))
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

// SuggestionRequest is one combined-suggestion call.
type SuggestionRequest struct {
	Query     string `validate:"required"`
	Limit     int    `validate:"gt=0"`
	SessionID uuid.UUID
}

func (r *SuggestionRequest) Validate(maxLimit int) *ValidationError {
	verr := &ValidationError{}
	collectFieldErrors(verr, validate.Struct(r))
	if r.Limit > maxLimit {
		verr.Add("Limit", "must be at most "+strconv.Itoa(maxLimit))
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

// SearchMeta describes one search response.
type SearchMeta struct {
	SearchID    uuid.UUID `json:"search_id"`
	SessionID   uuid.UUID `json:"session_id,omitempty"`
	Page        int       `json:"page"`
	ResultCount int       `json:"result_count"`
	TotalResult int       `json:"total_result"`
}

// SearchResponse is the assembled accommodation search result. Item order is
// index-assigned relevance order and is preserved end to end.
type SearchResponse struct {
	Meta           SearchMeta      `json:"meta"`
	Accommodations []Accommodation `json:"accommodations"`
}

// SuggestionMeta describes one suggestion response.
type SuggestionMeta struct {
	SessionID                  uuid.UUID `json:"session_id,omitempty"`
	AccommodationSuggestionCnt int       `json:"accommodation_suggestion_count"`
	DestinationSuggestionCnt   int       `json:"destination_suggestion_count"`
}

// SuggestionResponse combines the two independent suggestion lists.
type SuggestionResponse struct {
	Meta                     SuggestionMeta `json:"meta"`
	AccommodationSuggestions []string       `json:"accommodation_suggestions"`
	DestinationSuggestions   []string       `json:"destination_suggestions"`
}

// ClickRequest registers a click on a search result or suggestion.
type ClickRequest struct {
	SessionID  uuid.UUID `json:"session_id"`
	SearchID   uuid.UUID `json:"search_id"`
	DocumentID string    `json:"document_id"`
	ItemIndex  int       `json:"item_index"`
}

// Validate checks the click payload. requireDocument is set for result
// clicks, where the clicked document must be identifiable.
func (r *ClickRequest) Validate(requireDocument bool) *ValidationError {
	verr := &ValidationError{}
	if r.SearchID == uuid.Nil {
		verr.Add("SearchID", "is required")
	}
	if requireDocument && r.DocumentID == "" {
		verr.Add("DocumentID", "is required")
	}
	if r.ItemIndex < 0 {
		verr.Add("ItemIndex", "must be zero or positive")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

func collectFieldErrors(verr *ValidationError, err error) {
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		verr.Add("request", err.Error())
		return
	}
	for _, fe := range verrs {
		verr.Add(fe.Field(), fieldMessage(fe))
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
