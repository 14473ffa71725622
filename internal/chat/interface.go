package chat

import (
	"context"

	"restaurant-concierge/internal/model"
)

// UseCase routes one user turn to a structured intent. A turn never
// escapes the router as an error: the worst-case outcome is a canned
// fallback response offering a human handoff.
type UseCase interface {
	// Route processes one user message and returns exactly one response.
	Route(ctx context.Context, sc model.Scope, input RouteInput) (RouterResponse, error)
}
