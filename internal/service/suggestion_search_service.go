package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/PencariData/search-service-api/internal/cache"
	"github.com/PencariData/search-service-api/internal/domain"
	"github.com/PencariData/search-service-api/internal/logqueue"
	"github.com/PencariData/search-service-api/internal/repository"
	"github.com/PencariData/search-service-api/pkg/log"
)

type suggestionSearchService struct {
	accommodations repository.AccommodationRepository
	destinations   repository.DestinationRepository
	queue          *logqueue.Queue[*domain.SuggestionLog]
	cache          cache.Cache[CachedSuggestions]
	cachePrefix    string
	cacheTTL       time.Duration
	maxLimit       int
	accMaxLimit    int
}

// NewSuggestionSearchService creates the suggestion orchestrator.
func NewSuggestionSearchService(
	accommodations repository.AccommodationRepository,
	destinations repository.DestinationRepository,
	queue *logqueue.Queue[*domain.SuggestionLog],
	suggestionCache cache.Cache[CachedSuggestions],
	cachePrefix string,
	cacheTTL time.Duration,
	maxLimit int,
	accMaxLimit int,
) SuggestionSearchService {
	return &suggestionSearchService{
		accommodations: accommodations,
		destinations:   destinations,
		queue:          queue,
		cache:          suggestionCache,
		cachePrefix:    cachePrefix,
		cacheTTL:       cacheTTL,
		maxLimit:       maxLimit,
		accMaxLimit:    accMaxLimit,
	}
}

// Suggestions fetches accommodation-name and destination-name completions in
// one logical call. The two sub-fetches are independent reads and run
// concurrently; the response waits for both.
func (s *suggestionSearchService) Suggestions(ctx context.Context, req *domain.SuggestionRequest) (*domain.SuggestionResponse, error) {
	l := log.Ctx(ctx)

	if verr := req.Validate(s.maxLimit); verr != nil {
		return nil, verr
	}

	if req.SessionID == uuid.Nil {
		l.Warn().Msg("suggestion request with empty session id")
	}

	key := cache.SuggestionKey(s.cachePrefix, req.Query, req.Limit)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		s.enqueueLog(ctx, domain.NewSuggestionLog(
			req.SessionID, req.Query,
			len(cached.AccommodationSuggestions), len(cached.DestinationSuggestions),
			true, 0,
		))
		return buildSuggestionResponse(req.SessionID, cached.AccommodationSuggestions, cached.DestinationSuggestions), nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		l.Warn().Err(err).Msg("cache get error")
	}

	var accommodationSuggestions, destinationSuggestions []string

	start := time.Now()
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		accommodationSuggestions, err = s.accommodations.SuggestNames(gCtx, req.Query, req.Limit)
		return err
	})

	g.Go(func() error {
		var err error
		destinationSuggestions, err = s.destinations.SuggestNames(gCtx, req.Query, req.Limit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	elapsedMs := time.Since(start).Milliseconds()

	s.enqueueLog(ctx, domain.NewSuggestionLog(
		req.SessionID, req.Query,
		len(accommodationSuggestions), len(destinationSuggestions),
		false, elapsedMs,
	))

	payload := &CachedSuggestions{
		AccommodationSuggestions: accommodationSuggestions,
		DestinationSuggestions:   destinationSuggestions,
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		l.Warn().Err(err).Str("key", key).Msg("cache set error")
	}

	return buildSuggestionResponse(req.SessionID, accommodationSuggestions, destinationSuggestions), nil
}

// AccommodationSuggestions serves the accommodation-only suggestion family,
// which allows a slightly larger limit than the combined one.
func (s *suggestionSearchService) AccommodationSuggestions(ctx context.Context, req *domain.SuggestionRequest) (*domain.SuggestionResponse, error) {
	l := log.Ctx(ctx)

	if verr := req.Validate(s.accMaxLimit); verr != nil {
		return nil, verr
	}

	key := cache.AccommodationSuggestionKey(s.cachePrefix, req.Query, req.Limit)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		s.enqueueLog(ctx, domain.NewSuggestionLog(
			req.SessionID, req.Query,
			len(cached.AccommodationSuggestions), 0,
			true, 0,
		))
		return buildSuggestionResponse(req.SessionID, cached.AccommodationSuggestions, nil), nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		l.Warn().Err(err).Msg("cache get error")
	}

	start := time.Now()
	suggestions, err := s.accommodations.SuggestNames(ctx, req.Query, req.Limit)
	if err != nil {
		return nil, err
	}
	elapsedMs := time.Since(start).Milliseconds()

	s.enqueueLog(ctx, domain.NewSuggestionLog(
		req.SessionID, req.Query,
		len(suggestions), 0,
		false, elapsedMs,
	))

	payload := &CachedSuggestions{AccommodationSuggestions: suggestions}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		l.Warn().Err(err).Str("key", key).Msg("cache set error")
	}

	return buildSuggestionResponse(req.SessionID, suggestions, nil), nil
}

func (s *suggestionSearchService) enqueueLog(ctx context.Context, record *domain.SuggestionLog) {
	if !s.queue.Enqueue(record) {
		logger := log.Ctx(ctx)
		logger.Warn().Msg("suggestion log queue rejected record, dropping")
	}
}

func buildSuggestionResponse(sessionID uuid.UUID, accommodations, destinations []string) *domain.SuggestionResponse {
	if accommodations == nil {
		accommodations = []string{}
	}
	if destinations == nil {
		destinations = []string{}
	}
	return &domain.SuggestionResponse{
		Meta: domain.SuggestionMeta{
			SessionID:                  sessionID,
			AccommodationSuggestionCnt: len(accommodations),
			DestinationSuggestionCnt:   len(destinations),
		},
		AccommodationSuggestions: accommodations,
		DestinationSuggestions:   destinations,
	}
}
