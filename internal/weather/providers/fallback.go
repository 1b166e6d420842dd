package providers

import (
	"context"
	"log/slog"
)

// attempt is one step of an ordered fallback. An empty result without an
// error means the step found nothing.
type attempt struct {
	name string
	run  func(ctx context.Context) (string, error)
}

// firstNonEmpty runs attempts in order and returns the first non-empty
// result. Failures are logged and skipped; "" means every attempt came up
// empty.
func firstNonEmpty(ctx context.Context, logger *slog.Logger, attempts []attempt) string {
	for _, a := range attempts {
		if ctx.Err() != nil {
			return ""
		}
		v, err := a.run(ctx)
		if err != nil {
			logger.Debug("fallback step failed", "step", a.name, "error", err)
			continue
		}
		if v != "" {
			return v
		}
	}
	return ""
}
