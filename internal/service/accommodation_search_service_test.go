package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/PencariData/search-service-api/internal/cache"
	"github.com/PencariData/search-service-api/internal/domain"
	"github.com/PencariData/search-service-api/internal/logqueue"
	"github.com/PencariData/search-service-api/internal/repository"
)

type fakeAccommodationRepo struct {
	mu            sync.Mutex
	freeTextCalls int
	byNameCalls   int
	byDestCalls   int
	suggestCalls  int
	result        *repository.SearchResult
	suggestions   []string
	err           error
}

func (f *fakeAccommodationRepo) SearchFreeText(_ context.Context, _ string, _, _ int) (*repository.SearchResult, error) {
	f.mu.Lock()
	f.freeTextCalls++
	f.mu.Unlock()
	return f.result, f.err
}

func (f *fakeAccommodationRepo) SearchByName(_ context.Context, _ string, _, _ int) (*repository.SearchResult, error) {
	f.mu.Lock()
	f.byNameCalls++
	f.mu.Unlock()
	return f.result, f.err
}

func (f *fakeAccommodationRepo) SearchByDestination(_ context.Context, _ string, _, _ int) (*repository.SearchResult, error) {
	f.mu.Lock()
	f.byDestCalls++
	f.mu.Unlock()
	return f.result, f.err
}

func (f *fakeAccommodationRepo) SuggestNames(_ context.Context, _ string, _ int) ([]string, error) {
	f.mu.Lock()
	f.suggestCalls++
	f.mu.Unlock()
	return f.suggestions, f.err
}

func (f *fakeAccommodationRepo) totalSearchCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.freeTextCalls + f.byNameCalls + f.byDestCalls
}

type fakeSearchLogStore struct {
	records map[uuid.UUID]*domain.SearchLog
	findErr error
}

func (f *fakeSearchLogStore) Append(_ context.Context, record *domain.SearchLog) error {
	if f.records == nil {
		f.records = make(map[uuid.UUID]*domain.SearchLog)
	}
	if _, ok := f.records[record.SearchID]; !ok {
		f.records[record.SearchID] = record
	}
	return nil
}

func (f *fakeSearchLogStore) FindBySearchID(_ context.Context, searchID uuid.UUID) (*domain.SearchLog, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	record, ok := f.records[searchID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

func sampleResult(n, total int) *repository.SearchResult {
	items := make([]domain.Accommodation, 0, n)
	for i := 0; i < n; i++ {
		acc, _ := domain.NewAccommodation(uuid.New(), "Grand Villa", "Ubud, Bali",
			domain.AccommodationVilla, domain.Coordinate{Latitude: -8.4, Longitude: 115.1})
		items = append(items, acc)
	}
	return &repository.SearchResult{Accommodations: items, Total: total}
}

type searchFixture struct {
	service AccommodationSearchService
	repo    *fakeAccommodationRepo
	store   *fakeSearchLogStore
	queue   *logqueue.Queue[*domain.SearchLog]
	cache   *cache.Memory[CachedSearchResult]
}

func newSearchFixture(repo *fakeAccommodationRepo, store *fakeSearchLogStore) *searchFixture {
	q := logqueue.New[*domain.SearchLog](16)
	c := cache.NewMemory[CachedSearchResult]()
	return &searchFixture{
		service: NewAccommodationSearchService(repo, store, q, c, "test", time.Minute, 30),
		repo:    repo,
		store:   store,
		queue:   q,
		cache:   c,
	}
}

// drainLogs closes the queue and persists everything queued so far through
// the fixture's store, returning the records in enqueue order.
func (f *searchFixture) drainLogs(t *testing.T) []*domain.SearchLog {
	t.Helper()

	var drained []*domain.SearchLog
	sink := logqueue.SinkFunc[*domain.SearchLog](func(_ context.Context, record *domain.SearchLog) error {
		drained = append(drained, record)
		return nil
	})
	consumer := logqueue.NewConsumer("test", f.queue, sink)
	f.queue.Close()
	consumer.Run(context.Background())
	return drained
}

func validSearchRequest() *domain.SearchRequest {
	return &domain.SearchRequest{
		Query:     "bali villa",
		Mode:      domain.SearchFreeText,
		Page:      0,
		Limit:     10,
		SessionID: uuid.New(),
	}
}

func TestSearchValidationFailureHasNoSideEffects(t *testing.T) {
	repo := &fakeAccommodationRepo{result: sampleResult(1, 1)}
	f := newSearchFixture(repo, &fakeSearchLogStore{})

	req := validSearchRequest()
	req.Query = ""

	_, err := f.service.Search(context.Background(), req)

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if repo.totalSearchCalls() != 0 {
		t.Error("index queried despite validation failure")
	}
	if logs := f.drainLogs(t); len(logs) != 0 {
		t.Errorf("%d log records enqueued despite validation failure", len(logs))
	}
}

func TestSearchMintsIDWhenNoneSupplied(t *testing.T) {
	f := newSearchFixture(&fakeAccommodationRepo{result: sampleResult(2, 17)}, &fakeSearchLogStore{})

	resp, err := f.service.Search(context.Background(), validSearchRequest())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if resp.Meta.SearchID == uuid.Nil {
		t.Error("no search id minted")
	}
	if resp.Meta.ResultCount != 2 || resp.Meta.TotalResult != 17 {
		t.Errorf("meta = %+v, want 2 items of 17", resp.Meta)
	}

	logs := f.drainLogs(t)
	if len(logs) != 1 {
		t.Fatalf("%d log records, want 1", len(logs))
	}
	if logs[0].SearchID != resp.Meta.SearchID {
		t.Error("log record carries a different search id than the response")
	}
	if logs[0].FromCache {
		t.Error("fresh fetch logged as cache hit")
	}
	if logs[0].Validity != domain.LogValid {
		t.Errorf("validity = %q, want valid", logs[0].Validity)
	}
}

func TestSearchKeepsSuppliedIDForSameQuery(t *testing.T) {
	store := &fakeSearchLogStore{}
	supplied := uuid.New()
	store.Append(context.Background(), domain.NewSearchLog(
		uuid.New(), supplied, "bali villa", domain.SearchFreeText,
		0, 10, 40, false, 5, domain.LogValid, ""))

	f := newSearchFixture(&fakeAccommodationRepo{result: sampleResult(1, 40)}, store)

	req := validSearchRequest()
	req.SearchID = supplied
	req.Page = 1

	resp, err := f.service.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Meta.SearchID != supplied {
		t.Errorf("search id = %v, want supplied %v", resp.Meta.SearchID, supplied)
	}
}

func TestSearchMintsNewIDWhenQueryDiffers(t *testing.T) {
	store := &fakeSearchLogStore{}
	supplied := uuid.New()
	store.Append(context.Background(), domain.NewSearchLog(
		uuid.New(), supplied, "lombok beach", domain.SearchFreeText,
		0, 10, 40, false, 5, domain.LogValid, ""))

	f := newSearchFixture(&fakeAccommodationRepo{result: sampleResult(1, 40)}, store)

	req := validSearchRequest()
	req.SearchID = supplied

	resp, err := f.service.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Meta.SearchID == supplied {
		t.Error("supplied id kept although its stored query text differs")
	}
	if resp.Meta.SearchID == uuid.Nil {
		t.Error("no replacement id minted")
	}
}

func TestSearchKeepsSuppliedIDOnLookupFailure(t *testing.T) {
	store := &fakeSearchLogStore{findErr: errors.New("db down")}
	f := newSearchFixture(&fakeAccommodationRepo{result: sampleResult(1, 1)}, store)

	supplied := uuid.New()
	req := validSearchRequest()
	req.SearchID = supplied

	resp, err := f.service.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Meta.SearchID != supplied {
		t.Errorf("search id = %v, want supplied id kept on lookup failure", resp.Meta.SearchID)
	}
}

func TestSearchPaginationWithoutIDIsSuspect(t *testing.T) {
	f := newSearchFixture(&fakeAccommodationRepo{result: sampleResult(1, 50)}, &fakeSearchLogStore{})

	req := validSearchRequest()
	req.Page = 2

	if _, err := f.service.Search(context.Background(), req); err != nil {
		t.Fatalf("Search: %v", err)
	}

	logs := f.drainLogs(t)
	if len(logs) != 1 {
		t.Fatalf("%d log records, want 1", len(logs))
	}
	if logs[0].Validity != domain.LogSuspect {
		t.Errorf("validity = %q, want suspect", logs[0].Validity)
	}
	if logs[0].InvalidReason == "" {
		t.Error("suspect record carries no reason")
	}
}

func TestSearchCacheHitSkipsIndex(t *testing.T) {
	repo := &fakeAccommodationRepo{result: sampleResult(3, 3)}
	f := newSearchFixture(repo, &fakeSearchLogStore{})

	first, err := f.service.Search(context.Background(), validSearchRequest())
	if err != nil {
		t.Fatalf("first Search: %v", err)
	}

	second, err := f.service.Search(context.Background(), validSearchRequest())
	if err != nil {
		t.Fatalf("second Search: %v", err)
	}

	if repo.totalSearchCalls() != 1 {
		t.Errorf("index queried %d times, want 1", repo.totalSearchCalls())
	}
	if len(second.Accommodations) != len(first.Accommodations) {
		t.Error("cached response differs from fresh response")
	}
	if second.Meta.SearchID == first.Meta.SearchID {
		t.Error("cache hit reused the first request's search id; meta must be rebuilt per request")
	}

	logs := f.drainLogs(t)
	if len(logs) != 2 {
		t.Fatalf("%d log records, want one per request", len(logs))
	}
	if logs[0].FromCache || !logs[1].FromCache {
		t.Errorf("from-cache flags = %v/%v, want false/true", logs[0].FromCache, logs[1].FromCache)
	}
}

func TestSearchModeDispatch(t *testing.T) {
	tests := []struct {
		mode  domain.SearchMode
		calls func(r *fakeAccommodationRepo) int
	}{
		{domain.SearchFreeText, func(r *fakeAccommodationRepo) int { return r.freeTextCalls }},
		{domain.SearchByName, func(r *fakeAccommodationRepo) int { return r.byNameCalls }},
		{domain.SearchByDestination, func(r *fakeAccommodationRepo) int { return r.byDestCalls }},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			repo := &fakeAccommodationRepo{result: sampleResult(1, 1)}
			f := newSearchFixture(repo, &fakeSearchLogStore{})

			req := validSearchRequest()
			req.Mode = tt.mode

			if _, err := f.service.Search(context.Background(), req); err != nil {
				t.Fatalf("Search: %v", err)
			}
			if tt.calls(repo) != 1 {
				t.Errorf("mode %q did not reach its index operation", tt.mode)
			}
		})
	}
}

func TestSearchIndexErrorPropagates(t *testing.T) {
	repo := &fakeAccommodationRepo{err: domain.ErrIndexQuery}
	f := newSearchFixture(repo, &fakeSearchLogStore{})

	_, err := f.service.Search(context.Background(), validSearchRequest())
	if !errors.Is(err, domain.ErrIndexQuery) {
		t.Fatalf("err = %v, want ErrIndexQuery", err)
	}
	if logs := f.drainLogs(t); len(logs) != 0 {
		t.Errorf("%d log records enqueued for failed search", len(logs))
	}
}
