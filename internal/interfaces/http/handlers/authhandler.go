package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"cheki/internal/application/receipt/usecases"
	"cheki/internal/interfaces/dto"
	"cheki/internal/shared/errors"
	"cheki/internal/shared/logger"
	"cheki/internal/shared/utils"
)

// verifyAttemptStore is the subset of the cache store used here. A nil
// store disables the lockout (redis not configured).
type verifyAttemptStore interface {
	IsLocked(ctx context.Context, phone string) (bool, error)
	RecordFailure(ctx context.Context, phone string) error
	Clear(ctx context.Context, phone string) error
}

// AuthHandler serves the SMS bootstrap endpoints that establish the
// first session with the upstream.
type AuthHandler struct {
	requestCode   usecases.RequestSMSCodeExecutor
	createSession usecases.CreateSessionExecutor
	attempts      verifyAttemptStore
	logger        logger.Interface
}

// NewAuthHandler creates an auth handler. attempts may be nil when no
// redis is configured.
func NewAuthHandler(
	requestCode usecases.RequestSMSCodeExecutor,
	createSession usecases.CreateSessionExecutor,
	attempts verifyAttemptStore,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		requestCode:   requestCode,
		createSession: createSession,
		attempts:      attempts,
		logger:        logger,
	}
}

// RequestSMSCode asks the upstream to text a verification code to the
// given phone number.
func (h *AuthHandler) RequestSMSCode(c *gin.Context) {
	var req dto.RequestSMSCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for sms code request", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body"))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.requestCode.Execute(c.Request.Context(), usecases.RequestSMSCodeCommand{
		Phone: req.Phone,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "SMS code requested", dto.RequestSMSCodeResponse{
		Accepted: result.Accepted,
	})
}

// VerifySMSCode exchanges a received code for a stored session. Failed
// attempts count against a per-phone lockout.
func (h *AuthHandler) VerifySMSCode(c *gin.Context) {
	var req dto.VerifySMSCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for sms code verify", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body"))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ctx := c.Request.Context()

	if h.attempts != nil {
		locked, err := h.attempts.IsLocked(ctx, req.Phone)
		if err != nil {
			h.logger.Warnw("failed to check verify lockout, allowing attempt",
				"error", err)
		} else if locked {
			utils.ErrorResponseWithError(c, errors.NewTooManyRequestsError("too many failed attempts, please request a new code later"))
			return
		}
	}

	token, err := h.createSession.Execute(ctx, usecases.CreateSessionCommand{
		Phone: req.Phone,
		Code:  req.Code,
	})
	if err != nil {
		if h.attempts != nil && errors.IsUnauthorizedError(err) {
			if recordErr := h.attempts.RecordFailure(ctx, req.Phone); recordErr != nil {
				h.logger.Warnw("failed to record verify attempt", "error", recordErr)
			}
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	if h.attempts != nil {
		if err := h.attempts.Clear(ctx, req.Phone); err != nil {
			h.logger.Warnw("failed to clear verify attempts", "error", err)
		}
	}

	utils.CreatedResponse(c, dto.VerifySMSCodeResponse{
		ID:        token.ID,
		CreatedAt: token.CreatedAt,
	}, "Session established")
}
