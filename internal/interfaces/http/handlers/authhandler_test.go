package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdto "cheki/internal/application/receipt/dto"
	"cheki/internal/application/receipt/usecases"
	"cheki/internal/shared/errors"
	"cheki/internal/shared/logger"
)

type mockRequestCode struct {
	result *usecases.RequestSMSCodeResult
	err    error
	calls  int
}

func (m *mockRequestCode) Execute(ctx context.Context, cmd usecases.RequestSMSCodeCommand) (*usecases.RequestSMSCodeResult, error) {
	m.calls++
	return m.result, m.err
}

type mockCreateSession struct {
	result *appdto.SessionTokenDTO
	err    error
	calls  int
}

func (m *mockCreateSession) Execute(ctx context.Context, cmd usecases.CreateSessionCommand) (*appdto.SessionTokenDTO, error) {
	m.calls++
	return m.result, m.err
}

type mockAttemptStore struct {
	locked   bool
	failures int
	cleared  int
}

func (m *mockAttemptStore) IsLocked(ctx context.Context, phone string) (bool, error) {
	return m.locked, nil
}

func (m *mockAttemptStore) RecordFailure(ctx context.Context, phone string) error {
	m.failures++
	return nil
}

func (m *mockAttemptStore) Clear(ctx context.Context, phone string) error {
	m.cleared++
	return nil
}

func performJSON(t *testing.T, handler gin.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	_, engine := gin.CreateTestContext(w)
	engine.POST("/", handler)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_RequestSMSCode(t *testing.T) {
	requestCode := &mockRequestCode{result: &usecases.RequestSMSCodeResult{Accepted: true}}
	h := NewAuthHandler(requestCode, &mockCreateSession{}, nil, logger.NewLogger())

	w := performJSON(t, h.RequestSMSCode, gin.H{"phone": "+79991234567"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, requestCode.calls)
	assert.Contains(t, w.Body.String(), `"accepted":true`)
}

func TestAuthHandler_RequestSMSCode_InvalidPhone(t *testing.T) {
	requestCode := &mockRequestCode{result: &usecases.RequestSMSCodeResult{Accepted: true}}
	h := NewAuthHandler(requestCode, &mockCreateSession{}, nil, logger.NewLogger())

	w := performJSON(t, h.RequestSMSCode, gin.H{"phone": "not-a-phone"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, requestCode.calls)
}

func TestAuthHandler_VerifySMSCode(t *testing.T) {
	createSession := &mockCreateSession{result: &appdto.SessionTokenDTO{
		ID:        1,
		SessionID: "sess-1",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}}
	attempts := &mockAttemptStore{}
	h := NewAuthHandler(&mockRequestCode{}, createSession, attempts, logger.NewLogger())

	w := performJSON(t, h.VerifySMSCode, gin.H{"phone": "+79991234567", "code": "1234"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, createSession.calls)
	assert.Equal(t, 1, attempts.cleared)
	// credentials must not leak to the API client
	assert.NotContains(t, w.Body.String(), "sess-1")
}

func TestAuthHandler_VerifySMSCode_WrongCode(t *testing.T) {
	createSession := &mockCreateSession{err: errors.NewUnauthorizedError("sms code verification rejected by upstream")}
	attempts := &mockAttemptStore{}
	h := NewAuthHandler(&mockRequestCode{}, createSession, attempts, logger.NewLogger())

	w := performJSON(t, h.VerifySMSCode, gin.H{"phone": "+79991234567", "code": "0000"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 1, attempts.failures)
}

func TestAuthHandler_VerifySMSCode_LockedOut(t *testing.T) {
	createSession := &mockCreateSession{}
	attempts := &mockAttemptStore{locked: true}
	h := NewAuthHandler(&mockRequestCode{}, createSession, attempts, logger.NewLogger())

	w := performJSON(t, h.VerifySMSCode, gin.H{"phone": "+79991234567", "code": "1234"})

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Zero(t, createSession.calls)
}

func TestAuthHandler_VerifySMSCode_MissingCode(t *testing.T) {
	createSession := &mockCreateSession{}
	h := NewAuthHandler(&mockRequestCode{}, createSession, nil, logger.NewLogger())

	w := performJSON(t, h.VerifySMSCode, gin.H{"phone": "+79991234567"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, createSession.calls)
}
