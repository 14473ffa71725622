package chat

import "errors"

// Domain-specific errors for the chat package. These stay inside the
// router: Route catches them at the turn boundary and degrades to a
// polite response instead of propagating.
var (
	ErrEmptyMessage  = errors.New("message text is empty")
	ErrMessageTooBig = errors.New("message text exceeds the size limit")
	ErrCatalogMiss   = errors.New("no catalog candidate met the threshold")
	ErrUpstreamFatal = errors.New("upstream response unusable")
)
