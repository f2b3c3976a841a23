package usecases

import (
	"context"

	"cheki/internal/application/receipt/dto"
)

// SessionResolver resolves a usable session id for the next gateway
// call. A (nil, nil) return means no session is available.
type SessionResolver interface {
	Execute(ctx context.Context, query ResolveSessionQuery) (*ResolveSessionResult, error)
}

// RequestSMSCodeExecutor defines the interface for the SMS code request
// use case.
type RequestSMSCodeExecutor interface {
	Execute(ctx context.Context, cmd RequestSMSCodeCommand) (*RequestSMSCodeResult, error)
}

// CreateSessionExecutor defines the interface for the SMS-code exchange
// use case.
type CreateSessionExecutor interface {
	Execute(ctx context.Context, cmd CreateSessionCommand) (*dto.SessionTokenDTO, error)
}

// FetchReceiptExecutor defines the interface for the receipt lookup use
// case.
type FetchReceiptExecutor interface {
	Execute(ctx context.Context, query FetchReceiptQuery) (*FetchReceiptResult, error)
}
