package usecases

import (
	"context"

	"cheki/internal/domain/receipt"
	"cheki/internal/shared/biztime"
	"cheki/internal/shared/errors"
	"cheki/internal/shared/logger"
)

// FetchReceiptQuery represents the input for fetching a receipt body by
// its QR payload.
type FetchReceiptQuery struct {
	QR string
}

// FetchReceiptResult carries the receipt body as returned by the remote
// service.
type FetchReceiptResult struct {
	Receipt map[string]any
}

// FetchReceiptUseCase orchestrates the two-step lookup: QR to ticket id,
// ticket id to ticket body. The session is resolved once and used for
// both steps; the two calls run back to back within the same resolved
// window, so there is no mid-call expiry re-check and no retries across
// steps.
type FetchReceiptUseCase struct {
	resolver SessionResolver
	gateway  receipt.Gateway
	logger   logger.Interface
}

func NewFetchReceiptUseCase(
	resolver SessionResolver,
	gateway receipt.Gateway,
	logger logger.Interface,
) *FetchReceiptUseCase {
	return &FetchReceiptUseCase{
		resolver: resolver,
		gateway:  gateway,
		logger:   logger,
	}
}

// Execute fetches the receipt body for a QR payload. A (nil, nil)
// return means the remote service has no match for the QR or the
// ticket id. When no session can be resolved the use case returns an
// unauthorized error so the API layer can tell the client to
// re-authenticate.
func (uc *FetchReceiptUseCase) Execute(ctx context.Context, query FetchReceiptQuery) (*FetchReceiptResult, error) {
	if query.QR == "" {
		return nil, errors.NewValidationError("qr is required")
	}

	session, err := uc.resolver.Execute(ctx, ResolveSessionQuery{Now: biztime.NowUTC()})
	if err != nil {
		return nil, err
	}
	if session == nil {
		uc.logger.Infow("no usable session for receipt lookup")
		return nil, errors.NewUnauthorizedError("no valid session, re-authentication required")
	}

	ticketID, err := uc.gateway.GetTicketID(ctx, query.QR, session.SessionID)
	if err != nil {
		uc.logger.Errorw("ticket id lookup failed", "error", err)
		return nil, err
	}
	if ticketID == "" {
		uc.logger.Debugw("no ticket matches QR payload")
		return nil, nil
	}

	body, err := uc.gateway.GetTicketByID(ctx, ticketID, session.SessionID)
	if err != nil {
		uc.logger.Errorw("ticket body lookup failed", "ticket_id", ticketID, "error", err)
		return nil, err
	}
	if body == nil {
		uc.logger.Debugw("no ticket body for ticket id", "ticket_id", ticketID)
		return nil, nil
	}

	return &FetchReceiptResult{Receipt: body}, nil
}
