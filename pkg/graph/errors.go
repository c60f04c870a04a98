package graph

import "errors"

var (
	// ErrIDCollision is returned in strict mode when two distinct
	// (type, label) pairs normalize to the same node id.
	ErrIDCollision = errors.New("node id collision")
	// ErrMalformedCandidate is returned in strict mode for structurally
	// broken extractor output.
	ErrMalformedCandidate = errors.New("malformed candidate")
	// ErrIntegrity wraps every violation reported by Validate.
	ErrIntegrity = errors.New("graph integrity violation")
)
