package dto

import (
	"time"

	"cheki/internal/domain/receipt"
)

// SessionTokenDTO is the transport form of a persisted session token.
type SessionTokenDTO struct {
	ID              uint      `json:"id"`
	SessionID       string    `json:"session_id"`
	RefreshToken    string    `json:"refresh_token"`
	ObtainedViaCode bool      `json:"obtained_via_code"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToSessionTokenDTO converts a domain token to its transport form.
func ToSessionTokenDTO(token *receipt.SessionToken) *SessionTokenDTO {
	if token == nil {
		return nil
	}
	return &SessionTokenDTO{
		ID:              token.ID,
		SessionID:       token.SessionID,
		RefreshToken:    token.RefreshToken,
		ObtainedViaCode: token.ObtainedViaCode,
		CreatedAt:       token.CreatedAt,
	}
}
