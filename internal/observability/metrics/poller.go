package metrics

import (
	"context"
	"time"
)

// RecordPollerDuration times every run of poll under the poller name.
func RecordPollerDuration(name string, poll func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		start := time.Now()
		err := poll(ctx)

		outcome := Success
		if err != nil {
			outcome = Error
		}
		pollerDurationHistogram.WithLabelValues(name, outcome.String()).Observe(time.Since(start).Seconds())
		return err
	}
}
