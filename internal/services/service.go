// Package services implements the project, task, user and role operations.
// Every call takes the acting principal explicitly, checks it against the
// access policy before touching a store, and records one audit entry per
// successful mutation.
package services

import (
	"context"
)

// Auditor is the write side of the audit recorder.
type Auditor interface {
	Created(ctx context.Context, entityType string, entityID uint, actor string, payload any)
	Updated(ctx context.Context, entityType string, entityID uint, actor string, payload any)
	Deleted(ctx context.Context, entityType string, entityID uint, actor string, payload any)
}
