package service

import (
	"context"
	"fmt"

	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/domain/repository"
	"dental-clinic/pkg/actor"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditService records who changed what. Entries are written on the
// caller's transaction so they commit or roll back with the change.
type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, entityName string, entityID interface{}, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, entityName string, entityID interface{}, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, tx *gorm.DB, entityName string, entityID interface{}, oldValue interface{}) error
	LogAuth(ctx context.Context, tx *gorm.DB, userID int, action string) error
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

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, entityName string, entityID interface{}, newValue interface{}) error {
	return s.write(ctx, tx, entity.AuditActionCreate, entityName, entityID, nil, newValue)
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, entityName string, entityID interface{}, oldValue, newValue interface{}) error {
	return s.write(ctx, tx, entity.AuditActionUpdate, entityName, entityID, oldValue, newValue)
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, entityName string, entityID interface{}, oldValue interface{}) error {
	return s.write(ctx, tx, entity.AuditActionDelete, entityName, entityID, oldValue, nil)
}

// LogAuth logs login, logout and registration events for userID.
func (s *auditService) LogAuth(ctx context.Context, tx *gorm.DB, userID int, action string) error {
	auditLog := &entity.AuditLog{
		UserID:   &userID,
		Action:   action,
		Metadata: datatypes.JSONMap{"entity": "user", "entity_id": fmt.Sprint(userID)},
	}

	if err := s.auditRepo.Create(tx.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}
	return nil
}

func (s *auditService) write(ctx context.Context, tx *gorm.DB, verb, entityName string, entityID, oldValue, newValue interface{}) error {
	auditLog := &entity.AuditLog{
		UserID: actor.UserID(ctx),
		Action: entityName + "." + verb,
		Metadata: datatypes.JSONMap{
			"entity":    entityName,
			"entity_id": fmt.Sprint(entityID),
			"old_value": oldValue,
			"new_value": newValue,
		},
	}

	if err := s.auditRepo.Create(tx.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
