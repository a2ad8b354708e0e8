package worker

import (
	"context"
	"time"

	"feast-checkout/internal/repo"

	"go.uber.org/zap"
)

// OtpSweeper periodically deletes expired OTP rows. Nothing deletes a record
// on read and superseded codes are only removed at the next issuance for the
// same email, so abandoned checkouts leave stale rows behind.
type OtpSweeper struct {
	otps     repo.OtpRepo
	interval time.Duration
	grace    time.Duration
	log      *zap.SugaredLogger
}

func NewOtpSweeper(
	otps repo.OtpRepo,
	interval time.Duration,
	grace time.Duration,
	log *zap.SugaredLogger,
) *OtpSweeper {
	return &OtpSweeper{
		otps:     otps,
		interval: interval,
		grace:    grace,
		log:      log,
	}
}

func (w *OtpSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Infow("otp sweeper started", "interval", w.interval, "grace", w.grace)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.sweep(ctx); err != nil {
				w.log.Errorw("otp sweep failed", "error", err)
			}
		}
	}
}

// sweep removes rows expired for longer than the grace window. The grace
// keeps a just-expired code around long enough for the verify endpoint to
// answer "expired" instead of "not found".
func (w *OtpSweeper) sweep(ctx context.Context) error {
	cutoff := time.Now().Add(-w.grace)
	deleted, err := w.otps.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		w.log.Infow("swept expired otp records", "deleted", deleted)
	}
	return nil
}
