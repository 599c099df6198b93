package service

import (
	"context"
	"fmt"

	"oilbooking/internal/repository"
)

type AuditLogResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Action    string `json:"action"`
	EntityID  string `json:"entity_id"`
	Details   string `json:"details"`
	CreatedAt string `json:"created_at"`
}

type AuditService interface {
	GetAuditLogs(ctx context.Context, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// GetAuditLogs returns the change history newest-first with actors resolved
func (s *auditService) GetAuditLogs(ctx context.Context, page, limit int) ([]AuditLogResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	logs, total, err := s.auditRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		entry := AuditLogResponse{
			ID:        l.ID.String(),
			UserName:  "System",
			Action:    l.Action,
			EntityID:  l.EntityID,
			Details:   l.Details,
			CreatedAt: l.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if l.UserID != nil {
			entry.UserID = l.UserID.String()
		}
		if l.User != nil {
			entry.UserName = l.User.Name
		}
		res = append(res, entry)
	}

	return res, total, nil
}
