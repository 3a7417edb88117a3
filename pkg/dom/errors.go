package dom

import "github.com/enliven-dev/enliven/internal/errors"

// Sentinel errors. Structured errors match by code, so backends may wrap
// these with context and errors.Is still holds.
var (
	// ErrNotSupported reports a renderer capability the backend does not
	// implement. Fatal to the specific operation, not to the tree.
	ErrNotSupported = errors.New(errors.CategoryRender,
		"E_RENDER_UNSUPPORTED", "renderer capability not supported")

	// ErrNotActive reports an operation that requires a bound, active
	// renderer proxy.
	ErrNotActive = errors.New(errors.CategoryDOM,
		"E_DOM_NOT_ACTIVE", "tag has no active renderer")

	// ErrNoBackend reports a render attempt without a backend.
	ErrNoBackend = errors.New(errors.CategoryDOM,
		"E_DOM_NO_BACKEND", "no rendering backend configured")

	// ErrNotChild reports a structural operation on a node that is not a
	// child of the receiver.
	ErrNotChild = errors.New(errors.CategoryDOM,
		"E_DOM_NOT_CHILD", "node is not a child of this tag")

	// ErrIndexRange reports a child index outside the valid range.
	ErrIndexRange = errors.New(errors.CategoryDOM,
		"E_DOM_INDEX_RANGE", "child index out of range")
)
