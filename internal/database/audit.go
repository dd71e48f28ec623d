package database

import (
	"context"

	"gorm.io/gorm"

	"project-tracker/internal/models"
)

// AuditStore is append-only; it has no update or delete.
type AuditStore struct {
	db *gorm.DB
}

func NewAuditStore(db *gorm.DB) *AuditStore {
	return &AuditStore{db: db}
}

func (s *AuditStore) Insert(ctx context.Context, rec *models.AuditRecord) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *AuditStore) find(ctx context.Context, query any, args ...any) ([]models.AuditRecord, error) {
	q := s.db.WithContext(ctx).Order("timestamp desc")
	if query != nil {
		q = q.Where(query, args...)
	}

	var recs []models.AuditRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *AuditStore) FindByEntityType(ctx context.Context, entityType string) ([]models.AuditRecord, error) {
	return s.find(ctx, "entity_type = ?", entityType)
}

func (s *AuditStore) FindByUsername(ctx context.Context, username string) ([]models.AuditRecord, error) {
	return s.find(ctx, "username = ?", username)
}

func (s *AuditStore) FindByEntityTypeAndUsername(ctx context.Context, entityType, username string) ([]models.AuditRecord, error) {
	return s.find(ctx, "entity_type = ? AND username = ?", entityType, username)
}

func (s *AuditStore) FindAll(ctx context.Context) ([]models.AuditRecord, error) {
	return s.find(ctx, nil)
}
