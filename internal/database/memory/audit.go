package memory

import (
	"context"

	"project-tracker/internal/models"
)

// AuditStore is append-only, like its Postgres counterpart.
type AuditStore struct {
	db *DB
}

func (s *AuditStore) Insert(_ context.Context, rec *models.AuditRecord) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.audit = append(s.db.audit, *rec)
	return nil
}

func (s *AuditStore) where(keep func(models.AuditRecord) bool) []models.AuditRecord {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := []models.AuditRecord{}
	for _, r := range s.db.audit {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s *AuditStore) FindByEntityType(_ context.Context, entityType string) ([]models.AuditRecord, error) {
	return s.where(func(r models.AuditRecord) bool { return r.EntityType == entityType }), nil
}

func (s *AuditStore) FindByUsername(_ context.Context, username string) ([]models.AuditRecord, error) {
	return s.where(func(r models.AuditRecord) bool { return r.Username == username }), nil
}

func (s *AuditStore) FindByEntityTypeAndUsername(_ context.Context, entityType, username string) ([]models.AuditRecord, error) {
	return s.where(func(r models.AuditRecord) bool {
		return r.EntityType == entityType && r.Username == username
	}), nil
}

func (s *AuditStore) FindAll(_ context.Context) ([]models.AuditRecord, error) {
	return s.where(func(models.AuditRecord) bool { return true }), nil
}
