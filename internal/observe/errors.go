package observe

import "errors"

// Sentinel errors for observer attachment.
var (
	// ErrNoAnchor is returned when a boundary block cannot be resolved
	// inside the container. Non-fatal: attachment is retried on the
	// next index-set change.
	ErrNoAnchor = errors.New("no observable boundary block")

	// ErrStaleDOM is returned when the container's children do not yet
	// reflect the latest index set. Attaching watchers against a stale
	// tree would produce ghost triggers.
	ErrStaleDOM = errors.New("render tree not yet updated")

	// ErrSuspended is returned when observation is suspended by a
	// programmatic focus request.
	ErrSuspended = errors.New("observation suspended")
)
