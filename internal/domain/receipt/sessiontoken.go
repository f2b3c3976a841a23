// Package receipt holds the domain model for the receipt-lookup
// service: the persisted session token and the ports to the token store
// and the remote receipt-verification service.
package receipt

import (
	"fmt"
	"time"
)

// SessionToken is the only persisted entity. Records are immutable once
// created: renewal always produces a new record, never an in-place
// update. ID and CreatedAt are assigned by the store on creation.
type SessionToken struct {
	ID              uint
	SessionID       string
	RefreshToken    string
	ObtainedViaCode bool
	CreatedAt       time.Time
}

// NewSessionToken builds an unpersisted token from credentials issued by
// the remote service. obtainedViaCode is true only for tokens coming
// straight out of an SMS-code exchange; the flag is audit-only and never
// consulted by lifecycle decisions.
func NewSessionToken(sessionID, refreshToken string, obtainedViaCode bool) (*SessionToken, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}
	return &SessionToken{
		SessionID:       sessionID,
		RefreshToken:    refreshToken,
		ObtainedViaCode: obtainedViaCode,
	}, nil
}

// Age returns how long ago the token was persisted, relative to now.
func (t *SessionToken) Age(now time.Time) time.Duration {
	return now.Sub(t.CreatedAt)
}

// IsFresh reports whether the cached session id is still usable given
// the configured lifetime window.
func (t *SessionToken) IsFresh(now time.Time, lifetime time.Duration) bool {
	return !t.CreatedAt.IsZero() && t.Age(now) < lifetime
}

// HasRefreshToken reports whether the token can be renewed without a
// full SMS re-authentication.
func (t *SessionToken) HasRefreshToken() bool {
	return t.RefreshToken != ""
}
