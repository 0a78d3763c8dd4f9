package facultysnipe

import "context"

// AIExtractor extracts records from a full page using a paid model backend.
// It is the most expensive step of the cascade and is optional: a nil
// AIExtractor disables the AI step entirely.
type AIExtractor interface {
	// Extract sends the (cleaned) HTML to the backend and returns the
	// extracted records along with the estimated cost in USD.
	Extract(ctx context.Context, html string) (records []Record, costUSD float64, err error)
}
