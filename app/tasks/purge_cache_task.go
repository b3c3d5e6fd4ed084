package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/driftapp/drift-parse/app/database"
)

type PurgeCacheTask struct {
	Task
	linkRepo database.ParsedLinkRepository
}

func NewPurgeCacheTask(linkRepo database.ParsedLinkRepository) *PurgeCacheTask {
	return &PurgeCacheTask{
		Task:     NewTask(TaskTypePurgeCache, "cache"),
		linkRepo: linkRepo,
	}
}

func (t *PurgeCacheTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	purged, err := t.linkRepo.PurgeExpired()
	if err != nil {
		return fmt.Errorf("failed to purge expired links: %w", err)
	}

	if purged > 0 {
		slog.Info("Task completed",
			"type", "PurgeCache",
			"duration", t.GetDuration(),
			"purged", purged)
	}

	return nil
}
