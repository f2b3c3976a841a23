package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"cheki/internal/application/receipt/usecases"
	"cheki/internal/shared/errors"
	"cheki/internal/shared/logger"
)

type mockFetchReceipt struct {
	result *usecases.FetchReceiptResult
	err    error
	calls  int
}

func (m *mockFetchReceipt) Execute(ctx context.Context, query usecases.FetchReceiptQuery) (*usecases.FetchReceiptResult, error) {
	m.calls++
	return m.result, m.err
}

func TestReceiptHandler_LookupReceipt(t *testing.T) {
	fetch := &mockFetchReceipt{result: &usecases.FetchReceiptResult{
		Receipt: map[string]any{"id": "ticket-42", "operation": map[string]any{"sum": 10000}},
	}}
	h := NewReceiptHandler(fetch, logger.NewLogger())

	w := performJSON(t, h.LookupReceipt, gin.H{"qr": "t=20240301T1200&s=100.00&fn=1&i=2&fp=3&n=1"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, fetch.calls)
	assert.Contains(t, w.Body.String(), "ticket-42")
}

func TestReceiptHandler_LookupReceipt_UnknownQR(t *testing.T) {
	fetch := &mockFetchReceipt{result: nil}
	h := NewReceiptHandler(fetch, logger.NewLogger())

	w := performJSON(t, h.LookupReceipt, gin.H{"qr": "bogus"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReceiptHandler_LookupReceipt_NoSession(t *testing.T) {
	fetch := &mockFetchReceipt{err: errors.NewUnauthorizedError("no valid session, re-authentication required")}
	h := NewReceiptHandler(fetch, logger.NewLogger())

	w := performJSON(t, h.LookupReceipt, gin.H{"qr": "t=20240301T1200&s=100.00"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReceiptHandler_LookupReceipt_MissingQR(t *testing.T) {
	fetch := &mockFetchReceipt{}
	h := NewReceiptHandler(fetch, logger.NewLogger())

	w := performJSON(t, h.LookupReceipt, gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, fetch.calls)
}
