package ports

import (
	"context"

	"github.com/quotedeck/flowkit/pkg/domain"
)

// FlowStore persists flow documents. Flows are loaded wholesale: there are no
// partial or streaming loads.
type FlowStore interface {
	// Save persists the flow under its ID, overwriting any previous version.
	Save(ctx context.Context, flow *domain.Flow) error

	// Load retrieves a flow by ID.
	// Returns domain.ErrFlowNotFound if the flow does not exist.
	Load(ctx context.Context, flowID string) (*domain.Flow, error)

	// Delete removes the flow.
	Delete(ctx context.Context, flowID string) error

	// List returns the IDs of all stored flows.
	List(ctx context.Context) ([]string, error)
}

// SessionStore persists intake session state, enabling stop-and-resume
// quote intake across requests.
type SessionStore interface {
	// Save persists the state for a given session ID.
	Save(ctx context.Context, sessionID string, state *domain.State) error

	// Load retrieves the state for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.State, error)

	// Delete removes the state for a given session ID.
	Delete(ctx context.Context, sessionID string) error
}
