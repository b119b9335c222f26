package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
	"github.com/tillpoint/tillpoint-api/internal/domain/repository"
)

// Paused tabs survive a terminal restart for a shift, not forever.
const tabArchiveTTL = 12 * time.Hour

// RedisTabArchive keeps JSON snapshots of paused tabs in a per-operator hash.
// The in-memory session store stays authoritative; this is recovery state.
type RedisTabArchive struct {
	client *redis.Client
}

func NewRedisTabArchive(client *redis.Client) *RedisTabArchive {
	return &RedisTabArchive{client: client}
}

var _ repository.TabArchiveRepository = (*RedisTabArchive)(nil)

func tabArchiveKey(operatorID string) string {
	return fmt.Sprintf("tillpoint:tabs:%s", operatorID)
}

func (a *RedisTabArchive) Save(ctx context.Context, operatorID string, tab *entity.BillingTab) error {
	data, err := json.Marshal(tab)
	if err != nil {
		return fmt.Errorf("archive: encode tab: %w", err)
	}

	key := tabArchiveKey(operatorID)
	pipe := a.client.TxPipeline()
	pipe.HSet(ctx, key, tab.ID.String(), data)
	pipe.Expire(ctx, key, tabArchiveTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("archive: save tab: %w", err)
	}
	return nil
}

func (a *RedisTabArchive) Delete(ctx context.Context, operatorID, tabID string) error {
	if err := a.client.HDel(ctx, tabArchiveKey(operatorID), tabID).Err(); err != nil {
		return fmt.Errorf("archive: delete tab: %w", err)
	}
	return nil
}

func (a *RedisTabArchive) ListByOperator(ctx context.Context, operatorID string) ([]entity.BillingTab, error) {
	entries, err := a.client.HGetAll(ctx, tabArchiveKey(operatorID)).Result()
	if err != nil {
		return nil, fmt.Errorf("archive: list tabs: %w", err)
	}

	tabs := make([]entity.BillingTab, 0, len(entries))
	for _, raw := range entries {
		var tab entity.BillingTab
		if err := json.Unmarshal([]byte(raw), &tab); err != nil {
			// Skip snapshots we can no longer decode rather than
			// blocking recovery of the rest.
			continue
		}
		tabs = append(tabs, tab)
	}
	return tabs, nil
}
