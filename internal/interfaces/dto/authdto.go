package dto

import "time"

// RequestSMSCodeRequest asks the upstream to text a one-time code to
// the phone number.
type RequestSMSCodeRequest struct {
	Phone string `json:"phone" binding:"required" validate:"required,e164"`
}

// RequestSMSCodeResponse reports whether the upstream accepted the
// request.
type RequestSMSCodeResponse struct {
	Accepted bool `json:"accepted"`
}

// VerifySMSCodeRequest exchanges a received code for a stored session.
type VerifySMSCodeRequest struct {
	Phone string `json:"phone" binding:"required" validate:"required,e164"`
	Code  string `json:"code" binding:"required" validate:"required,numeric,min=4,max=6"`
}

// VerifySMSCodeResponse confirms authentication. The credentials
// themselves stay server-side.
type VerifySMSCodeResponse struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
