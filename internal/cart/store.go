package cart

import "context"

// Store persists carts keyed by an explicit session id. Load returns an
// empty cart for unknown sessions; carts expire with the session.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
	Delete(ctx context.Context, sessionID string) error
}
