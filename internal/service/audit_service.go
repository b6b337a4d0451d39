package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

const (
	defaultAuditLimit = 20
	maxAuditLimit     = 100
)

// AuditService reads the time-ordered action feed. It never writes; entries
// are produced by the recorder subscribed to domain events.
type AuditService struct {
	logs   repository.AuditLogRepository
	logger *zap.Logger
}

// NewAuditService constructs the service.
func NewAuditService(logs repository.AuditLogRepository, logger *zap.Logger) *AuditService {
	return &AuditService{logs: logs, logger: logger}
}

// Recent returns the newest entries first, capped at limit. A non-positive
// limit falls back to 20; anything above 100 is clamped.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]domain.AuditLogEntry, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	entries, err := s.logs.Recent(ctx, limit)
	if err != nil {
		s.logger.Error("audit log fetch failed", zap.Error(err))
		return nil, apperrors.NewFetchError("audit logs", err)
	}
	return entries, nil
}
