package service

import (
	"nightingale/internal/domain/entity"
	"nightingale/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditEntry describes one change to record. Before is nil for creations
// and After is nil for deletions.
type AuditEntry struct {
	ActorID  *uuid.UUID
	Action   string
	Entity   string
	EntityID string
	Before   interface{}
	After    interface{}
}

type AuditService interface {
	// Record writes the entry on tx. Failures are logged and swallowed so an
	// audit problem never aborts the change being audited.
	Record(tx *gorm.DB, entry AuditEntry)
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(tx *gorm.DB, entry AuditEntry) {
	auditLog := &entity.AuditLog{
		UserID: entry.ActorID,
		Action: entry.Action,
		Metadata: entity.JSON{
			"entity":    entry.Entity,
			"entity_id": entry.EntityID,
			"old_value": entry.Before,
			"new_value": entry.After,
		},
	}

	// A savepoint keeps a failed insert from poisoning the caller's
	// PostgreSQL transaction.
	err := tx.Transaction(func(sp *gorm.DB) error {
		return s.auditRepo.Create(sp, auditLog)
	})
	if err != nil {
		s.log.Warnf("Failed to create audit log %s: %+v", entry.Action, err)
	}
}
