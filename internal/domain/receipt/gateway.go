package receipt

import "context"

// SessionCredentials is the pair issued by the remote service whenever a
// session is created or renewed.
type SessionCredentials struct {
	SessionID    string
	RefreshToken string
}

// Gateway is the stateless client for the remote receipt-verification
// service. It carries no caching and no retry logic; every call must
// bound its wait and surface transport failures as errors.
//
// Lookup calls report a remote miss as a zero value with a nil error so
// callers can distinguish "no match" from a failed call.
type Gateway interface {
	// RequestSMSCode asks the remote service to send a one-time code to
	// phone. Returns whether the request was accepted.
	RequestSMSCode(ctx context.Context, phone string) (bool, error)

	// VerifySMSCode exchanges phone + one-time code for session
	// credentials. A rejection surfaces as an unauthorized error.
	VerifySMSCode(ctx context.Context, phone, code string) (*SessionCredentials, error)

	// RefreshSession exchanges a refresh token for fresh session
	// credentials. A rejection surfaces as an unauthorized error.
	RefreshSession(ctx context.Context, refreshToken string) (*SessionCredentials, error)

	// GetTicketID resolves a QR payload to the remote ticket id.
	// Returns "" with a nil error when the QR matches nothing.
	GetTicketID(ctx context.Context, qr, sessionID string) (string, error)

	// GetTicketByID fetches the ticket body for a ticket id. Returns nil
	// with a nil error when the id matches nothing.
	GetTicketByID(ctx context.Context, ticketID, sessionID string) (map[string]any, error)
}
