package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/driftapp/drift-parse/app/database"
	"github.com/driftapp/drift-parse/app/linkparse"
)

type RefreshLinkTask struct {
	Task
	parser   *linkparse.Parser
	linkRepo database.ParsedLinkRepository
	cacheTTL time.Duration
}

func NewRefreshLinkTask(url string, parser *linkparse.Parser, linkRepo database.ParsedLinkRepository, cacheTTL time.Duration) *RefreshLinkTask {
	return &RefreshLinkTask{
		Task:     NewTask(TaskTypeRefreshLink, url),
		parser:   parser,
		linkRepo: linkRepo,
		cacheTTL: cacheTTL,
	}
}

func (t *RefreshLinkTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	parsed := t.parser.Run(ctx, t.GetSubject())
	if !parsed.Success {
		// The page may be gone for good; the stale entry ages out on
		// its own, so a failed refresh is not retried.
		slog.Debug("Link refresh produced no result, keeping cached entry",
			"url", t.GetSubject())
		return nil
	}

	if err := t.linkRepo.Put(t.GetSubject(), parsed, t.cacheTTL); err != nil {
		return fmt.Errorf("failed to store refreshed link: %w", err)
	}

	slog.Info("Task completed",
		"type", "RefreshLink",
		"url", t.GetSubject(),
		"duration", t.GetDuration())

	return nil
}
