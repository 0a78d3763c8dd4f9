package facultysnipe

import "context"

// Notifier receives per-target change reports. The monitor invokes it at
// most once per target per run, and only when the target's pipeline
// completed (success or partial success with gathered data). It is never
// invoked after a pipeline-level failure before any extraction occurred.
//
// Delivery policy (email, webhooks, deduplication) is the implementation's
// concern; the core makes no delivery guarantees.
type Notifier interface {
	Notify(ctx context.Context, target *Target, newRecords []Record, changed []Record, removedIDs []string) error
}
