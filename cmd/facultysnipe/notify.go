package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/eflotty/facultysnipe"
)

// Ensure consoleNotifier implements facultysnipe.Notifier.
var _ facultysnipe.Notifier = (*consoleNotifier)(nil)

// consoleNotifier prints per-target change reports to the writer. Target
// workers run concurrently, so writes are serialized to keep each report
// contiguous.
type consoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

func newConsoleNotifier(out io.Writer) *consoleNotifier {
	return &consoleNotifier{out: out}
}

// Notify prints one change report for the target.
func (n *consoleNotifier) Notify(_ context.Context, target *facultysnipe.Target, newRecords, changed []facultysnipe.Record, removedIDs []string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	fmt.Fprintf(n.out, "%s: %d new, %d changed, %d removed\n",
		target.DisplayName, len(newRecords), len(changed), len(removedIDs))

	for _, r := range newRecords {
		fmt.Fprintf(n.out, "  + %s\n", formatRecord(r))
	}
	for _, r := range changed {
		fmt.Fprintf(n.out, "  ~ %s\n", formatRecord(r))
	}
	for _, id := range removedIDs {
		fmt.Fprintf(n.out, "  - %s\n", id)
	}

	return nil
}
