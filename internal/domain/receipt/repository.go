package receipt

import "context"

// TokenRepository is the append-only session token store. Ids are
// strictly increasing, so "latest" is a total order even under
// concurrent creates.
type TokenRepository interface {
	// Create persists a new token, assigning ID and CreatedAt, and
	// returns the persisted record.
	Create(ctx context.Context, token *SessionToken) (*SessionToken, error)

	// GetLatest returns the most recently created token, or (nil, nil)
	// when the store is empty.
	GetLatest(ctx context.Context) (*SessionToken, error)
}
