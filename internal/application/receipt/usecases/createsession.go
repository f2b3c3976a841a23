package usecases

import (
	"context"

	"cheki/internal/application/receipt/dto"
	"cheki/internal/domain/receipt"
	"cheki/internal/shared/errors"
	"cheki/internal/shared/logger"
)

// CreateSessionCommand represents the input for exchanging phone + SMS
// code for a session.
type CreateSessionCommand struct {
	Phone string
	Code  string
}

// CreateSessionUseCase exchanges phone + one-time code for session
// credentials and persists the resulting token. This is the only path
// that creates a token with ObtainedViaCode set.
//
// Gateway failures propagate to the caller uninterpreted so the client
// application can prompt for re-entry of phone or code.
type CreateSessionUseCase struct {
	repo    receipt.TokenRepository
	gateway receipt.Gateway
	logger  logger.Interface
}

func NewCreateSessionUseCase(
	repo receipt.TokenRepository,
	gateway receipt.Gateway,
	logger logger.Interface,
) *CreateSessionUseCase {
	return &CreateSessionUseCase{
		repo:    repo,
		gateway: gateway,
		logger:  logger,
	}
}

// Execute performs the SMS-code exchange and persists the new token.
func (uc *CreateSessionUseCase) Execute(ctx context.Context, cmd CreateSessionCommand) (*dto.SessionTokenDTO, error) {
	if cmd.Phone == "" {
		return nil, errors.NewValidationError("phone is required")
	}
	if cmd.Code == "" {
		return nil, errors.NewValidationError("code is required")
	}

	creds, err := uc.gateway.VerifySMSCode(ctx, cmd.Phone, cmd.Code)
	if err != nil {
		uc.logger.Warnw("SMS code exchange failed", "error", err)
		return nil, err
	}

	token, err := receipt.NewSessionToken(creds.SessionID, creds.RefreshToken, true)
	if err != nil {
		uc.logger.Errorw("remote service returned unusable credentials", "error", err)
		return nil, errors.NewUpstreamError("remote service returned unusable credentials")
	}

	persisted, err := uc.repo.Create(ctx, token)
	if err != nil {
		uc.logger.Errorw("failed to persist session token", "error", err)
		return nil, errors.NewInternalError("failed to persist session token")
	}

	uc.logger.Infow("session created from SMS code", "token_id", persisted.ID)
	return dto.ToSessionTokenDTO(persisted), nil
}
