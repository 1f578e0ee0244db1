package smoke

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/okian/folio/pkg/logger"
)

// newRunID returns a short id that tags every submission of one run.
func newRunID() string {
	return uuid.NewString()[:8]
}

// generateSubmissions creates n submissions with unique names so the
// listing check can find each one.
func generateSubmissions(ctx context.Context, runID string, n int, stats *Stats) ([]Submission, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: submissions must be positive, got %d", ErrConfig, n)
	}

	subs := make([]Submission, n)
	for i := range subs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during generation: %w", err)
		}
		subs[i] = Submission{
			Name:    "smoke-" + runID + "-" + strconv.Itoa(i),
			Comment: "run " + runID + " note " + uuid.NewString()[:8],
		}
	}

	stats.Generated = len(subs)
	logger.Get().Info(ctx, "generated submissions", logger.Int("count", len(subs)), logger.String("run_id", runID))
	return subs, nil
}
