package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cheki/internal/application/receipt/usecases"
	"cheki/internal/interfaces/dto"
	"cheki/internal/shared/errors"
	"cheki/internal/shared/logger"
	"cheki/internal/shared/utils"
)

// ReceiptHandler serves the receipt lookup endpoint.
type ReceiptHandler struct {
	fetchReceipt usecases.FetchReceiptExecutor
	logger       logger.Interface
}

func NewReceiptHandler(fetchReceipt usecases.FetchReceiptExecutor, logger logger.Interface) *ReceiptHandler {
	return &ReceiptHandler{
		fetchReceipt: fetchReceipt,
		logger:       logger,
	}
}

// LookupReceipt resolves a scanned QR payload to the full receipt body.
// An unknown QR is a 404; a missing or unrenewable session is a 401
// telling the operator to re-run the SMS bootstrap.
func (h *ReceiptHandler) LookupReceipt(c *gin.Context) {
	var req dto.LookupReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for receipt lookup", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body"))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.fetchReceipt.Execute(c.Request.Context(), usecases.FetchReceiptQuery{
		QR: req.QR,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result == nil || result.Receipt == nil {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("receipt not found"))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Receipt found", result.Receipt)
}
