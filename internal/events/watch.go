package events

import (
	"context"
	"log/slog"
	"time"
)

// Watch logs every session event until ctx is done.
func Watch(ctx context.Context, pub Publisher, logger *slog.Logger) {
	sub, stop := pub.SubscribeSession()
	defer stop()
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-sub:
			logger.Info("session event",
				"kind", string(evt.Kind),
				"sid", evt.SID,
				"user_id", evt.UserID,
				"username", evt.Username,
				"reason", evt.Reason,
				"at", evt.At.Format(time.RFC3339),
			)
		}
	}
}
