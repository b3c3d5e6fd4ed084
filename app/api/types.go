package api

import (
	"context"
	"time"

	"github.com/driftapp/drift-parse/app/database"
	"github.com/driftapp/drift-parse/app/linkparse"
	"github.com/driftapp/drift-parse/app/save"
	"github.com/driftapp/drift-parse/app/tasks"
)

type ParserInterface interface {
	Run(ctx context.Context, rawURL string) save.ParsedLink
}

var _ ParserInterface = (*linkparse.Parser)(nil)

type Handler struct {
	parser    ParserInterface
	linkRepo  database.ParsedLinkRepository
	scheduler tasks.TaskSchedulerInterface
	cacheTTL  time.Duration
}
