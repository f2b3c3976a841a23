package usecases

import (
	"context"

	"cheki/internal/domain/receipt"
	"cheki/internal/shared/errors"
	"cheki/internal/shared/logger"
)

// RequestSMSCodeCommand represents the input for requesting an SMS code.
type RequestSMSCodeCommand struct {
	Phone string
}

// RequestSMSCodeResult reports whether the remote service accepted the
// request.
type RequestSMSCodeResult struct {
	Accepted bool
}

// RequestSMSCodeUseCase is a pure pass-through to the gateway. Nothing
// is persisted and gateway failures propagate untouched: a human is in
// the loop and must see the failure to retry.
type RequestSMSCodeUseCase struct {
	gateway receipt.Gateway
	logger  logger.Interface
}

func NewRequestSMSCodeUseCase(gateway receipt.Gateway, logger logger.Interface) *RequestSMSCodeUseCase {
	return &RequestSMSCodeUseCase{
		gateway: gateway,
		logger:  logger,
	}
}

// Execute asks the remote service to send a one-time code.
func (uc *RequestSMSCodeUseCase) Execute(ctx context.Context, cmd RequestSMSCodeCommand) (*RequestSMSCodeResult, error) {
	if cmd.Phone == "" {
		return nil, errors.NewValidationError("phone is required")
	}

	accepted, err := uc.gateway.RequestSMSCode(ctx, cmd.Phone)
	if err != nil {
		uc.logger.Errorw("SMS code request failed", "error", err)
		return nil, err
	}

	uc.logger.Infow("SMS code requested", "accepted", accepted)
	return &RequestSMSCodeResult{Accepted: accepted}, nil
}
