package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/PencariData/search-service-api/internal/domain"
	"github.com/PencariData/search-service-api/internal/service"
	"github.com/PencariData/search-service-api/pkg/log"
	"github.com/PencariData/search-service-api/pkg/response"
)

// Handler handles HTTP requests for the search service.
type Handler struct {
	search       service.AccommodationSearchService
	suggestions  service.SuggestionSearchService
	interactions service.InteractionService
}

// NewHandler creates a new HTTP handler.
func NewHandler(
	search service.AccommodationSearchService,
	suggestions service.SuggestionSearchService,
	interactions service.InteractionService,
) *Handler {
	return &Handler{
		search:       search,
		suggestions:  suggestions,
		interactions: interactions,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/accommodations/search", h.Search)
		api.POST("/accommodations/click", h.ResultClick)
		api.GET("/suggestions", h.Suggestions)
		api.GET("/suggestions/accommodations", h.AccommodationSuggestions)
		api.POST("/suggestions/click", h.SuggestionClick)
	}
}

type searchQuery struct {
	Query     string `form:"q"`
	Mode      string `form:"mode,default=free_text"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit,default=10"`
	SearchID  string `form:"search_id"`
	SessionID string `form:"session_id"`
}

type suggestionQuery struct {
	Query     string `form:"q"`
	Limit     int    `form:"limit,default=3"`
	SessionID string `form:"session_id"`
}

// Search handles accommodation search.
func (h *Handler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		l.Warn().Err(err).Msg("invalid search request")
		response.BadRequest(c, err.Error())
		return
	}

	searchID, err := parseOptionalUUID(q.SearchID)
	if err != nil {
		response.BadRequest(c, "search_id must be a valid UUID")
		return
	}
	sessionID, err := parseOptionalUUID(q.SessionID)
	if err != nil {
		response.BadRequest(c, "session_id must be a valid UUID")
		return
	}

	req := &domain.SearchRequest{
		Query:     q.Query,
		Mode:      domain.SearchMode(q.Mode),
		Page:      q.Page,
		Limit:     q.Limit,
		SearchID:  searchID,
		SessionID: sessionID,
	}

	result, err := h.search.Search(ctx, req)
	if err != nil {
		h.writeError(c, err, "search failed")
		return
	}

	response.Success(c, result)
}

// Suggestions handles combined accommodation and destination suggestions.
func (h *Handler) Suggestions(c *gin.Context) {
	h.handleSuggestions(c, h.suggestions.Suggestions)
}

// AccommodationSuggestions handles accommodation-only suggestions.
func (h *Handler) AccommodationSuggestions(c *gin.Context) {
	h.handleSuggestions(c, h.suggestions.AccommodationSuggestions)
}

func (h *Handler) handleSuggestions(c *gin.Context, fetch func(ctx context.Context, req *domain.SuggestionRequest) (*domain.SuggestionResponse, error)) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var q suggestionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		l.Warn().Err(err).Msg("invalid suggestion request")
		response.BadRequest(c, err.Error())
		return
	}

	sessionID, err := parseOptionalUUID(q.SessionID)
	if err != nil {
		response.BadRequest(c, "session_id must be a valid UUID")
		return
	}

	req := &domain.SuggestionRequest{
		Query:     q.Query,
		Limit:     q.Limit,
		SessionID: sessionID,
	}

	result, err := fetch(ctx, req)
	if err != nil {
		h.writeError(c, err, "suggestion lookup failed")
		return
	}

	response.Success(c, result)
}

// ResultClick registers a search-result click. Fire-and-forget: the record
// is queued and the caller gets 202 immediately.
func (h *Handler) ResultClick(c *gin.Context) {
	h.handleClick(c, h.interactions.RegisterResultClick)
}

// SuggestionClick registers a suggestion click.
func (h *Handler) SuggestionClick(c *gin.Context) {
	h.handleClick(c, h.interactions.RegisterSuggestionClick)
}

func (h *Handler) handleClick(c *gin.Context, register func(ctx context.Context, req *domain.ClickRequest) error) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid click request")
		response.BadRequest(c, err.Error())
		return
	}

	if err := register(ctx, &req); err != nil {
		h.writeError(c, err, "click registration failed")
		return
	}

	response.Accepted(c)
}

// writeError maps the error taxonomy onto HTTP statuses. Validation and
// collaborator failures are the caller's to see; everything else is a 500.
func (h *Handler) writeError(c *gin.Context, err error, msg string) {
	l := log.Ctx(c.Request.Context())

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		l.Warn().Strs("violations", verr.Messages()).Msg("request validation failed")
		response.ValidationFailed(c, verr.Messages())
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrIndexQuery):
		l.Error().Err(err).Msg(msg)
		response.InternalError(c, "search index unavailable")
	default:
		l.Error().Err(err).Msg(msg)
		response.InternalError(c, msg)
	}
}

func parseOptionalUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}
