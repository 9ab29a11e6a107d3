package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/camseed"
)

var _ camseed.BlockSource = (*LoggingSource)(nil)

// LoggingSource wraps a BlockSource and logs each page request.
type LoggingSource struct {
	next   camseed.BlockSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next camseed.BlockSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Page logs the page number, block count and duration.
func (s *LoggingSource) Page(ctx context.Context, n int) (blocks []camseed.TextBlock, err error) {
	defer func(begin time.Time) {
		s.logger.Info("page",
			"page", n,
			"blocks", len(blocks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Page(ctx, n)
}
