package cli

import "github.com/google/uuid"

// TraceIDGenerator produces the id that correlates one CLI invocation's
// JSON output with its log records.
type TraceIDGenerator interface {
	Generate() string
}

// UUIDv7TraceGenerator generates time-sortable UUIDv7 trace ids.
//
// UUIDv7 embeds a timestamp in the most significant bits, so ids sort by
// invocation time.
//
// Thread-safety: UUIDv7TraceGenerator is stateless and safe for concurrent use.
type UUIDv7TraceGenerator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7TraceGenerator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
