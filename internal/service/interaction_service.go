package service

import (
	"context"

	"github.com/PencariData/search-service-api/internal/domain"
	"github.com/PencariData/search-service-api/internal/logqueue"
	"github.com/PencariData/search-service-api/pkg/log"
)

type interactionService struct {
	queue *logqueue.Queue[*domain.ClickLog]
}

// NewInteractionService creates the click-through registrar. Clicks are pure
// analytics: the caller gets an immediate acknowledgement and the record
// rides the queue like every other log.
func NewInteractionService(queue *logqueue.Queue[*domain.ClickLog]) InteractionService {
	return &interactionService{queue: queue}
}

func (s *interactionService) RegisterResultClick(ctx context.Context, req *domain.ClickRequest) error {
	if verr := req.Validate(true); verr != nil {
		return verr
	}

	s.enqueue(ctx, domain.NewClickLog(req.SessionID, req.SearchID, domain.ClickResult, req.DocumentID, req.ItemIndex))
	return nil
}

func (s *interactionService) RegisterSuggestionClick(ctx context.Context, req *domain.ClickRequest) error {
	if verr := req.Validate(false); verr != nil {
		return verr
	}

	s.enqueue(ctx, domain.NewClickLog(req.SessionID, req.SearchID, domain.ClickSuggestion, req.DocumentID, req.ItemIndex))
	return nil
}

func (s *interactionService) enqueue(ctx context.Context, record *domain.ClickLog) {
	if !s.queue.Enqueue(record) {
		logger := log.Ctx(ctx)
		logger.Warn().
			Str(log.FieldSearchID, record.SearchID.String()).
			Msg("click log queue rejected record, dropping")
	}
}
