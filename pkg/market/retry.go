package market

import (
	"context"
	"time"
)

// waitBackoff parks the calling goroutine on a timer until d elapses or ctx
// is done, whichever comes first.
func waitBackoff(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
