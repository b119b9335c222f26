package repository

import (
	"context"

	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
)

// CustomerDirectoryRepository is the remote customer directory service.
// Lookup is by exact phone string; a missing customer returns (nil, nil).
type CustomerDirectoryRepository interface {
	LookupByPhone(ctx context.Context, phone string) (*entity.CustomerRecord, error)
	Upsert(ctx context.Context, input *entity.CustomerUpsert) (*entity.CustomerRecord, error)
}
