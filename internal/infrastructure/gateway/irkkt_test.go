package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cheki/internal/shared/config"
	apperrors "cheki/internal/shared/errors"
	"cheki/internal/shared/logger"
)

func newTestClient(t *testing.T, handler http.Handler) (*IRKKTClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.GatewayConfig{
		Host:           server.URL,
		ClientSecret:   "test-secret",
		OS:             "Android",
		Accept:         "*/*",
		DeviceOS:       "Android",
		DeviceID:       "device-1",
		AcceptLanguage: "ru-RU;q=1, en-US;q=0.9",
		UserAgent:      "okhttp/4.2.2",
		TimeoutSeconds: 5,
	}
	return NewIRKKTClient(cfg, logger.NewLogger()), server
}

func TestIRKKTClient_RequestSMSCode(t *testing.T) {
	var gotBody map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, smsRequestPath, r.URL.Path)
		require.Equal(t, "okhttp/4.2.2", r.Header.Get("User-Agent"))
		require.Equal(t, "device-1", r.Header.Get("Device-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))

	accepted, err := client.RequestSMSCode(context.Background(), "+79991234567")
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.Equal(t, "+79991234567", gotBody["phone"])
	assert.Equal(t, "test-secret", gotBody["client_secret"])
}

func TestIRKKTClient_RequestSMSCode_Rejected(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	accepted, err := client.RequestSMSCode(context.Background(), "+79991234567")
	require.NoError(t, err)
	assert.False(t, accepted)
}

func TestIRKKTClient_RequestSMSCode_UpstreamFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.RequestSMSCode(context.Background(), "+79991234567")
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstreamError(err))
}

func TestIRKKTClient_VerifySMSCode(t *testing.T) {
	var gotBody map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, smsVerifyPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{
			"sessionId":     "sess-1",
			"refresh_token": "refresh-1",
		})
	}))

	creds, err := client.VerifySMSCode(context.Background(), "+79991234567", "1234")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", creds.SessionID)
	assert.Equal(t, "refresh-1", creds.RefreshToken)
	assert.Equal(t, "1234", gotBody["code"])
	assert.Equal(t, "Android", gotBody["os"])
}

func TestIRKKTClient_VerifySMSCode_WrongCode(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))

	creds, err := client.VerifySMSCode(context.Background(), "+79991234567", "0000")
	require.Error(t, err)
	assert.Nil(t, creds)
	assert.True(t, apperrors.IsUnauthorizedError(err))
}

func TestIRKKTClient_RefreshSession(t *testing.T) {
	var gotBody map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, refreshPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{
			"sessionId":     "sess-2",
			"refresh_token": "refresh-2",
		})
	}))

	creds, err := client.RefreshSession(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-2", creds.SessionID)
	assert.Equal(t, "refresh-2", creds.RefreshToken)
	assert.Equal(t, "refresh-1", gotBody["refresh_token"])
}

func TestIRKKTClient_RefreshSession_Rejected(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	creds, err := client.RefreshSession(context.Background(), "expired")
	require.Error(t, err)
	assert.Nil(t, creds)
	assert.True(t, apperrors.IsUnauthorizedError(err))
}

func TestIRKKTClient_GetTicketID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, ticketPath, r.URL.Path)
		require.Equal(t, "sess-1", r.Header.Get("sessionId"))
		json.NewEncoder(w).Encode(map[string]string{"id": "ticket-42"})
	}))

	id, err := client.GetTicketID(context.Background(), "t=20240301T1200&s=100.00", "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "ticket-42", id)
}

func TestIRKKTClient_GetTicketID_UnknownQR(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	id, err := client.GetTicketID(context.Background(), "bogus", "sess-1")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestIRKKTClient_GetTicketByID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/tickets/ticket-42", r.URL.Path)
		require.Equal(t, "sess-1", r.Header.Get("sessionId"))
		json.NewEncoder(w).Encode(map[string]any{
			"id":        "ticket-42",
			"operation": map[string]any{"sum": 10000},
		})
	}))

	body, err := client.GetTicketByID(context.Background(), "ticket-42", "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "ticket-42", body["id"])
}

func TestIRKKTClient_GetTicketByID_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	body, err := client.GetTicketByID(context.Background(), "missing", "sess-1")
	require.NoError(t, err)
	assert.Nil(t, body)
}

func TestIRKKTClient_GetTicketByID_SessionRejected(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	body, err := client.GetTicketByID(context.Background(), "ticket-42", "stale")
	require.Error(t, err)
	assert.Nil(t, body)
	assert.True(t, apperrors.IsUnauthorizedError(err))
}
