// Package audit records every mutation of a tracked entity. Recording is
// best effort: failures are logged and never reach the caller.
package audit

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"project-tracker/internal/models"
)

// Store only exposes insert and query. Records are never updated or deleted.
type Store interface {
	Insert(ctx context.Context, rec *models.AuditRecord) error
	FindByEntityType(ctx context.Context, entityType string) ([]models.AuditRecord, error)
	FindByUsername(ctx context.Context, username string) ([]models.AuditRecord, error)
	FindByEntityTypeAndUsername(ctx context.Context, entityType, username string) ([]models.AuditRecord, error)
	FindAll(ctx context.Context) ([]models.AuditRecord, error)
}

const defaultWriteTimeout = 5 * time.Second

type Recorder struct {
	store        Store
	log          logrus.FieldLogger
	writeTimeout time.Duration
	now          func() time.Time
}

func NewRecorder(store Store, log logrus.FieldLogger) *Recorder {
	return &Recorder{
		store:        store,
		log:          log,
		writeTimeout: defaultWriteTimeout,
		now:          time.Now,
	}
}

// Record appends one audit record. It never returns an error: a payload that
// cannot be serialized or a failed insert is logged and dropped.
func (r *Recorder) Record(ctx context.Context, entityType string, entityID uint, action models.AuditAction, actor string, payload any) {
	fields := logrus.Fields{
		"entity_type": entityType,
		"entity_id":   entityID,
		"action":      action,
		"actor":       actor,
	}

	snapshot, err := json.Marshal(payload)
	if err != nil {
		r.log.WithFields(fields).WithError(err).Error("audit: failed to serialize snapshot")
		return
	}

	rec := &models.AuditRecord{
		ID:           uuid.New(),
		EntityType:   entityType,
		EntityID:     entityID,
		Action:       action,
		Timestamp:    r.now().UTC(),
		Username:     actor,
		DataSnapshot: datatypes.JSON(snapshot),
	}

	// the mutation has already happened; a cancelled request must not drop its record
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.writeTimeout)
	defer cancel()

	if err := r.store.Insert(writeCtx, rec); err != nil {
		r.log.WithFields(fields).WithError(err).Error("audit: failed to write record")
	}
}

func (r *Recorder) Created(ctx context.Context, entityType string, entityID uint, actor string, payload any) {
	r.Record(ctx, entityType, entityID, models.AuditCreate, actor, payload)
}

func (r *Recorder) Updated(ctx context.Context, entityType string, entityID uint, actor string, payload any) {
	r.Record(ctx, entityType, entityID, models.AuditUpdate, actor, payload)
}

func (r *Recorder) Deleted(ctx context.Context, entityType string, entityID uint, actor string, payload any) {
	r.Record(ctx, entityType, entityID, models.AuditDelete, actor, payload)
}

// Filter fields are optional; empty means "any".
type Filter struct {
	EntityType string
	Username   string
}

// Query returns records matching every set filter, newest first.
func (r *Recorder) Query(ctx context.Context, f Filter) ([]models.AuditRecord, error) {
	var (
		recs []models.AuditRecord
		err  error
	)

	switch {
	case f.EntityType != "" && f.Username != "":
		recs, err = r.store.FindByEntityTypeAndUsername(ctx, f.EntityType, f.Username)
	case f.EntityType != "":
		recs, err = r.store.FindByEntityType(ctx, f.EntityType)
	case f.Username != "":
		recs, err = r.store.FindByUsername(ctx, f.Username)
	default:
		recs, err = r.store.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Timestamp.After(recs[j].Timestamp)
	})
	if recs == nil {
		recs = []models.AuditRecord{}
	}
	return recs, nil
}
