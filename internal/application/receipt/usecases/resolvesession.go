package usecases

import (
	"context"
	"time"

	"cheki/internal/domain/receipt"
	"cheki/internal/shared/errors"
	"cheki/internal/shared/logger"
)

// ResolveSessionQuery carries the reference time for the freshness
// decision. Now is required and injected by the caller so the decision
// is deterministic under test; the use case never reads a wall clock.
type ResolveSessionQuery struct {
	Now time.Time
}

// ResolveSessionResult is the usable session id for the next gateway
// call. Renewed is true when the id came out of a refresh exchange
// rather than the cache.
type ResolveSessionResult struct {
	SessionID string
	Renewed   bool
}

// ResolveSessionUseCase owns the session lifecycle decision: serve the
// cached session while it is fresh, renew it lazily through the refresh
// token once it goes stale, and report "no session" when neither works
// so the caller can drive a full SMS re-authentication.
//
// All state lives in the token store; the use case holds nothing between
// invocations and re-reads the store on every call. Renewal is attempted
// at most once per stale read and never proactively. Two callers racing
// on the same stale token may both renew; the store's latest-record read
// converges afterwards, which the remote service tolerates.
type ResolveSessionUseCase struct {
	repo     receipt.TokenRepository
	gateway  receipt.Gateway
	lifetime time.Duration
	logger   logger.Interface
}

// NewResolveSessionUseCase creates a new ResolveSessionUseCase. lifetime
// is the local freshness window for cached session ids.
func NewResolveSessionUseCase(
	repo receipt.TokenRepository,
	gateway receipt.Gateway,
	lifetime time.Duration,
	logger logger.Interface,
) *ResolveSessionUseCase {
	return &ResolveSessionUseCase{
		repo:     repo,
		gateway:  gateway,
		lifetime: lifetime,
		logger:   logger,
	}
}

// Execute resolves a usable session id. A (nil, nil) return means no
// session is available and the caller must re-authenticate via SMS;
// that covers the empty store, a stale token without a refresh token,
// and every renewal failure. Renewal failures are deliberately folded
// into the nil outcome so callers see one negative result instead of
// having to tell "expired", "refresh rejected" and "transport error"
// apart.
func (uc *ResolveSessionUseCase) Execute(ctx context.Context, query ResolveSessionQuery) (*ResolveSessionResult, error) {
	if query.Now.IsZero() {
		return nil, errors.NewValidationError("reference time is required")
	}

	token, err := uc.repo.GetLatest(ctx)
	if err != nil {
		uc.logger.Errorw("failed to read latest session token", "error", err)
		return nil, errors.NewInternalError("failed to read session store")
	}
	if token == nil {
		uc.logger.Debugw("session store is empty")
		return nil, nil
	}

	if token.IsFresh(query.Now, uc.lifetime) {
		return &ResolveSessionResult{SessionID: token.SessionID}, nil
	}

	if !token.HasRefreshToken() {
		uc.logger.Warnw("stale session has no refresh token",
			"token_id", token.ID,
			"age", token.Age(query.Now))
		return nil, nil
	}

	creds, err := uc.gateway.RefreshSession(ctx, token.RefreshToken)
	if err != nil {
		// Rejection and transport failure are equally terminal here:
		// persist nothing, hand back no session.
		uc.logger.Warnw("session renewal failed",
			"token_id", token.ID,
			"age", token.Age(query.Now),
			"error", err)
		return nil, nil
	}

	renewed, err := receipt.NewSessionToken(creds.SessionID, creds.RefreshToken, false)
	if err != nil {
		uc.logger.Errorw("remote service returned unusable credentials", "error", err)
		return nil, nil
	}

	persisted, err := uc.repo.Create(ctx, renewed)
	if err != nil {
		uc.logger.Errorw("failed to persist renewed session token", "error", err)
		return nil, errors.NewInternalError("failed to persist session token")
	}

	uc.logger.Infow("session renewed via refresh token",
		"old_token_id", token.ID,
		"new_token_id", persisted.ID)

	return &ResolveSessionResult{SessionID: persisted.SessionID, Renewed: true}, nil
}
