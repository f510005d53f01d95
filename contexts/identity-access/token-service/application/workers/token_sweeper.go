package workers

import (
	"context"
	"log/slog"
	"time"

	application "taskforge/contexts/identity-access/token-service/application"
	"taskforge/contexts/identity-access/token-service/ports"
)

// RefreshTokenSweeper purges refresh rows that crossed expires_at without
// ever being presented again. Expired rows presented to rotation are purged
// inline; the sweeper catches the rest.
type RefreshTokenSweeper struct {
	Tokens ports.RefreshTokenRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (s RefreshTokenSweeper) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(s.Logger)
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}

	purged, err := s.Tokens.DeleteExpired(ctx, now)
	if err != nil {
		logger.Error("refresh token sweep failed",
			"event", "refresh_token_sweep_failed",
			"module", "identity-access/token-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if purged > 0 {
		logger.Info("refresh token sweep completed",
			"event", "refresh_token_sweep_completed",
			"module", "identity-access/token-service",
			"layer", "worker",
			"purged_count", purged,
		)
	}
	return nil
}
