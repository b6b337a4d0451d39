package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/persistence"
)

const analyticsCacheKey = "analytics:snapshot"

// AnalyticsService derives summary statistics from the full ticket set. The
// computed snapshot is cached in Redis for a short TTL and dropped whenever a
// ticket mutates; the service works without Redis, recomputing every call.
type AnalyticsService struct {
	tickets  *TicketService
	cache    *persistence.Redis
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(tickets *TicketService, cache *persistence.Redis, cacheTTL time.Duration, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{tickets: tickets, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// RegisterHandlers subscribes cache invalidation to ticket mutations.
func (s *AnalyticsService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, s.invalidate)
	dispatcher.Subscribe(events.EventTicketUpdated, s.invalidate)
}

// Compute fetches the full ticket collection and folds it into a snapshot in
// a single pass. Deterministic for a given ticket set.
func (s *AnalyticsService) Compute(ctx context.Context) (domain.AnalyticsSnapshot, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return domain.AnalyticsSnapshot{}, err
	}

	snapshot := Aggregate(tickets)
	s.toCache(ctx, snapshot)
	return snapshot, nil
}

// Aggregate folds a ticket set into an AnalyticsSnapshot: status, priority
// and source tallies plus the average resolution time in days over resolved
// tickets, rounded to one decimal, 0 when none are resolved.
func Aggregate(tickets []domain.Ticket) domain.AnalyticsSnapshot {
	snapshot := domain.AnalyticsSnapshot{
		Total:    len(tickets),
		BySource: make(map[domain.TicketSource]int),
	}

	var resolvedCount int
	var resolutionSum time.Duration
	for i := range tickets {
		t := &tickets[i]
		switch t.Status {
		case domain.TicketStatusOpen:
			snapshot.Open++
		case domain.TicketStatusInProgress:
			snapshot.InProgress++
		case domain.TicketStatusResolved:
			snapshot.Resolved++
			resolvedCount++
			resolutionSum += t.UpdatedAt.Sub(t.CreatedAt)
		case domain.TicketStatusClosed:
			snapshot.Closed++
		}
		switch t.Priority {
		case domain.TicketPriorityHigh:
			snapshot.High++
		case domain.TicketPriorityCritical:
			snapshot.Critical++
		}
		snapshot.BySource[t.Source]++
	}

	if resolvedCount > 0 {
		days := resolutionSum.Hours() / 24 / float64(resolvedCount)
		snapshot.AvgResolutionDays = math.Round(days*10) / 10
	}
	return snapshot
}

func (s *AnalyticsService) fromCache(ctx context.Context) (domain.AnalyticsSnapshot, bool) {
	if s.cache == nil || s.cache.Client == nil || s.cacheTTL <= 0 {
		return domain.AnalyticsSnapshot{}, false
	}
	raw, err := s.cache.Client.Get(ctx, analyticsCacheKey).Bytes()
	if err != nil {
		return domain.AnalyticsSnapshot{}, false
	}
	var snapshot domain.AnalyticsSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return domain.AnalyticsSnapshot{}, false
	}
	return snapshot, true
}

func (s *AnalyticsService) toCache(ctx context.Context, snapshot domain.AnalyticsSnapshot) {
	if s.cache == nil || s.cache.Client == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, analyticsCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("analytics cache write failed", zap.Error(err))
	}
}

func (s *AnalyticsService) invalidate(ctx context.Context, _ events.Event) error {
	if s.cache == nil || s.cache.Client == nil {
		return nil
	}
	if err := s.cache.Client.Del(ctx, analyticsCacheKey).Err(); err != nil {
		s.logger.Debug("analytics cache invalidation failed", zap.Error(err))
	}
	return nil
}
