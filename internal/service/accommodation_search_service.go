package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PencariData/search-service-api/internal/cache"
	"github.com/PencariData/search-service-api/internal/domain"
	"github.com/PencariData/search-service-api/internal/logqueue"
	"github.com/PencariData/search-service-api/internal/logstore"
	"github.com/PencariData/search-service-api/internal/repository"
	"github.com/PencariData/search-service-api/pkg/log"
)

const reasonMissingSearchID = "missing correlation id on non-first page"

type accommodationSearchService struct {
	repo        repository.AccommodationRepository
	logStore    logstore.SearchLogStore
	queue       *logqueue.Queue[*domain.SearchLog]
	cache       cache.Cache[CachedSearchResult]
	cachePrefix string
	cacheTTL    time.Duration
	maxLimit    int
}

// NewAccommodationSearchService creates the accommodation search
// orchestrator.
func NewAccommodationSearchService(
	repo repository.AccommodationRepository,
	logStore logstore.SearchLogStore,
	queue *logqueue.Queue[*domain.SearchLog],
	resultCache cache.Cache[CachedSearchResult],
	cachePrefix string,
	cacheTTL time.Duration,
	maxLimit int,
) AccommodationSearchService {
	return &accommodationSearchService{
		repo:        repo,
		logStore:    logStore,
		queue:       queue,
		cache:       resultCache,
		cachePrefix: cachePrefix,
		cacheTTL:    cacheTTL,
		maxLimit:    maxLimit,
	}
}

func (s *accommodationSearchService) Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error) {
	l := log.Ctx(ctx)

	if verr := req.Validate(s.maxLimit); verr != nil {
		return nil, verr
	}

	if req.SessionID == uuid.Nil {
		l.Warn().Msg("search request with empty session id")
	}

	searchID := s.resolveSearchID(ctx, req)

	// A paginated request without a correlation id breaks analytics
	// continuity; the request still succeeds, only the log is annotated.
	validity, reason := domain.LogValid, ""
	if req.SearchID == uuid.Nil && req.Page > 0 {
		validity, reason = domain.LogSuspect, reasonMissingSearchID
	}

	key := cache.SearchKey(s.cachePrefix, req.Query, req.Page, req.Mode)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		s.enqueueLog(ctx, domain.NewSearchLog(
			req.SessionID, searchID, req.Query, req.Mode, req.Page,
			len(cached.Accommodations), cached.Total,
			true, 0, validity, reason,
		))
		return buildSearchResponse(searchID, req, cached.Accommodations, cached.Total), nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		l.Warn().Err(err).Msg("cache get error")
	}

	start := time.Now()
	result, err := s.dispatch(ctx, req)
	elapsedMs := time.Since(start).Milliseconds()
	if err != nil {
		return nil, err
	}

	s.enqueueLog(ctx, domain.NewSearchLog(
		req.SessionID, searchID, req.Query, req.Mode, req.Page,
		len(result.Accommodations), result.Total,
		false, elapsedMs, validity, reason,
	))

	payload := &CachedSearchResult{
		Accommodations: result.Accommodations,
		Total:          result.Total,
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		l.Warn().Err(err).Str("key", key).Msg("cache set error")
	}

	return buildSearchResponse(searchID, req, result.Accommodations, result.Total), nil
}

// resolveSearchID establishes a stable logical-search identity. A fresh id
// is minted when none was supplied, or when the supplied id was already
// logged for a different query text (the caller reused an id across an
// unrelated search).
func (s *accommodationSearchService) resolveSearchID(ctx context.Context, req *domain.SearchRequest) uuid.UUID {
	if req.SearchID == uuid.Nil {
		return uuid.New()
	}

	prior, err := s.logStore.FindBySearchID(ctx, req.SearchID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger := log.Ctx(ctx)
			logger.Warn().Err(err).
				Str(log.FieldSearchID, req.SearchID.String()).
				Msg("search log lookup failed, keeping supplied search id")
		}
		return req.SearchID
	}

	if prior.Query != req.Query {
		return uuid.New()
	}

	return req.SearchID
}

func (s *accommodationSearchService) dispatch(ctx context.Context, req *domain.SearchRequest) (*repository.SearchResult, error) {
	switch req.Mode {
	case domain.SearchFreeText:
		return s.repo.SearchFreeText(ctx, req.Query, req.Page, req.Limit)
	case domain.SearchByName:
		return s.repo.SearchByName(ctx, req.Query, req.Page, req.Limit)
	case domain.SearchByDestination:
		return s.repo.SearchByDestination(ctx, req.Query, req.Page, req.Limit)
	default:
		// Validation excludes this; kept for the day it doesn't.
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSearchMode, req.Mode)
	}
}

// enqueueLog never blocks and never fails the request. A full or closed
// queue drops the record with a warning.
func (s *accommodationSearchService) enqueueLog(ctx context.Context, record *domain.SearchLog) {
	if !s.queue.Enqueue(record) {
		logger := log.Ctx(ctx)
		logger.Warn().
			Str(log.FieldSearchID, record.SearchID.String()).
			Msg("search log queue rejected record, dropping")
	}
}

func buildSearchResponse(searchID uuid.UUID, req *domain.SearchRequest, items []domain.Accommodation, total int) *domain.SearchResponse {
	return &domain.SearchResponse{
		Meta: domain.SearchMeta{
			SearchID:    searchID,
			SessionID:   req.SessionID,
			Page:        req.Page,
			ResultCount: len(items),
			TotalResult: total,
		},
		Accommodations: items,
	}
}
