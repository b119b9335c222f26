package repository

import (
	"context"

	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
)

// TabArchiveRepository stores snapshots of paused tabs so a terminal restart
// does not lose held customers. The in-memory session store remains the
// source of truth; the archive is written after the store mutation commits.
type TabArchiveRepository interface {
	Save(ctx context.Context, operatorID string, tab *entity.BillingTab) error
	Delete(ctx context.Context, operatorID, tabID string) error
	ListByOperator(ctx context.Context, operatorID string) ([]entity.BillingTab, error)
}
