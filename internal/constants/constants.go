// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Matching constants
const (
	// MinMatchThreshold is the minimum 0-100 score for a person to be
	// considered a candidate match for a file
	MinMatchThreshold = 50

	// AmbiguityMargin is the score gap below which a runner-up candidate
	// makes the committed match ambiguous
	AmbiguityMargin = 10

	// SlugMatchThreshold is the minimum 0.0-1.0 slug score required by the
	// layer-name fast path before falling back to fuzzy name matching
	SlugMatchThreshold = 0.8
)

// Upload constants
const (
	// DefaultChunkSize is the number of photos uploaded per chunk request
	DefaultChunkSize = 10

	// MaxUploadSize is the maximum multipart upload size in bytes (100MB)
	MaxUploadSize = 100 << 20
)

// Handler constants
const (
	// DefaultHandlerPageSize is the page size for paginated handler endpoints
	DefaultHandlerPageSize = 100

	// EventChannelBuffer is the buffer size for progress event channels
	EventChannelBuffer = 100
)
