package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/heartmarshall/glossary/internal/service/glossary"
)

type refresher interface {
	Refresh(ctx context.Context) (glossary.RefreshResult, error)
}

// runRefresher refreshes the word list every interval until ctx is done.
// Failures are logged; the previous word list stays in service.
func runRefresher(ctx context.Context, svc refresher, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, err := svc.Refresh(ctx)
			switch {
			case err == nil:
			case errors.Is(err, glossary.ErrAlreadyUpdating):
				logger.InfoContext(ctx, "scheduled refresh skipped, another refresh is running")
			case ctx.Err() != nil:
				return
			default:
				logger.WarnContext(ctx, "scheduled refresh failed", slog.String("error", err.Error()))
			}
		}
	}
}
