package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"cheki/internal/domain/receipt"
	"cheki/internal/shared/config"
	apperrors "cheki/internal/shared/errors"
	"cheki/internal/shared/logger"
)

const (
	smsRequestPath = "/v2/auth/phone/request"
	smsVerifyPath  = "/v2/auth/phone/verify"
	refreshPath    = "/v2/mobile/users/refresh"
	ticketPath     = "/v2/ticket"
	ticketByIDPath = "/v2/tickets/"

	// Maximum response body size for gateway responses (1MB).
	// Ticket bodies carry full item lists and can get large.
	maxResponseSize = 1 << 20
)

// sessionResponse is the upstream payload returned by both the SMS
// verify and the refresh endpoints.
type sessionResponse struct {
	SessionID    string `json:"sessionId"`
	RefreshToken string `json:"refresh_token"`
}

// ticketIDResponse is the upstream payload returned by the ticket
// registration endpoint.
type ticketIDResponse struct {
	ID string `json:"id"`
}

// IRKKTClient implements receipt.Gateway against the tax service
// mobile API. All requests carry the device identity headers the
// mobile app sends; lookups additionally carry the session id header.
type IRKKTClient struct {
	httpClient *http.Client
	cfg        *config.GatewayConfig
	logger     logger.Interface
}

// NewIRKKTClient creates a gateway client from configuration.
func NewIRKKTClient(cfg *config.GatewayConfig, log logger.Interface) *IRKKTClient {
	return &IRKKTClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		cfg:    cfg,
		logger: log.With("component", "gateway.irkkt"),
	}
}

var _ receipt.Gateway = (*IRKKTClient)(nil)

// RequestSMSCode asks the upstream to send a verification code to the
// given phone number. A client-side rejection from the upstream is
// reported as accepted=false, not as an error.
func (c *IRKKTClient) RequestSMSCode(ctx context.Context, phone string) (bool, error) {
	payload := map[string]string{
		"phone":         phone,
		"client_secret": c.cfg.ClientSecret,
	}

	resp, err := c.post(ctx, smsRequestPath, payload, "")
	if err != nil {
		return false, fmt.Errorf("failed to request sms code: %w", err)
	}
	defer resp.Body.Close()
	drain(resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		c.logger.Warnw("sms code request rejected by upstream",
			"status", resp.StatusCode)
		return false, nil
	default:
		return false, apperrors.NewUpstreamError(fmt.Sprintf("sms code request failed with status %d", resp.StatusCode))
	}
}

// VerifySMSCode exchanges a received code for session credentials.
func (c *IRKKTClient) VerifySMSCode(ctx context.Context, phone, code string) (*receipt.SessionCredentials, error) {
	payload := map[string]string{
		"phone":         phone,
		"client_secret": c.cfg.ClientSecret,
		"code":          code,
		"os":            c.cfg.OS,
	}

	resp, err := c.post(ctx, smsVerifyPath, payload, "")
	if err != nil {
		return nil, fmt.Errorf("failed to verify sms code: %w", err)
	}
	defer resp.Body.Close()

	return c.decodeSession(resp, "sms code verification")
}

// RefreshSession exchanges a refresh token for fresh session
// credentials. Upstream rejections surface as unauthorized errors so
// the caller can fall back to re-authentication.
func (c *IRKKTClient) RefreshSession(ctx context.Context, refreshToken string) (*receipt.SessionCredentials, error) {
	payload := map[string]string{
		"refresh_token": refreshToken,
		"client_secret": c.cfg.ClientSecret,
	}

	resp, err := c.post(ctx, refreshPath, payload, "")
	if err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}
	defer resp.Body.Close()

	return c.decodeSession(resp, "session refresh")
}

// GetTicketID registers a QR payload and returns the upstream ticket
// id. An unknown QR is reported as an empty id with no error.
func (c *IRKKTClient) GetTicketID(ctx context.Context, qr, sessionID string) (string, error) {
	payload := map[string]string{"qr": qr}

	resp, err := c.post(ctx, ticketPath, payload, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to register ticket: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		drain(resp.Body)
		return "", nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		drain(resp.Body)
		return "", apperrors.NewUnauthorizedError("session rejected by upstream")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		drain(resp.Body)
		return "", apperrors.NewUpstreamError(fmt.Sprintf("ticket registration failed with status %d", resp.StatusCode))
	}

	var data ticketIDResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode ticket id response: %w", err)
	}

	return data.ID, nil
}

// GetTicketByID fetches the full ticket body for a previously
// registered ticket id. A missing ticket is reported as a nil body
// with no error.
func (c *IRKKTClient) GetTicketByID(ctx context.Context, ticketID, sessionID string) (map[string]any, error) {
	req, err := c.newRequest(ctx, http.MethodGet, ticketByIDPath+url.PathEscape(ticketID), nil, sessionID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ticket: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		drain(resp.Body)
		return nil, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		drain(resp.Body)
		return nil, apperrors.NewUnauthorizedError("session rejected by upstream")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		drain(resp.Body)
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("ticket fetch failed with status %d", resp.StatusCode))
	}

	var body map[string]any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode ticket response: %w", err)
	}

	return body, nil
}

// decodeSession handles the shared response contract of the verify and
// refresh endpoints.
func (c *IRKKTClient) decodeSession(resp *http.Response, operation string) (*receipt.SessionCredentials, error) {
	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		drain(resp.Body)
		c.logger.Warnw("upstream rejected credentials",
			"operation", operation,
			"status", resp.StatusCode)
		return nil, apperrors.NewUnauthorizedError(fmt.Sprintf("%s rejected by upstream", operation))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		drain(resp.Body)
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("%s failed with status %d", operation, resp.StatusCode))
	}

	var data sessionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", operation, err)
	}

	if data.SessionID == "" {
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("%s returned empty session id", operation))
	}

	return &receipt.SessionCredentials{
		SessionID:    data.SessionID,
		RefreshToken: data.RefreshToken,
	}, nil
}

func (c *IRKKTClient) post(ctx context.Context, path string, payload any, sessionID string) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(body), sessionID)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// newRequest builds a request with the device identity headers the
// upstream expects from its mobile clients.
func (c *IRKKTClient) newRequest(ctx context.Context, method, path string, body io.Reader, sessionID string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Host+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", c.cfg.Accept)
	req.Header.Set("Device-OS", c.cfg.DeviceOS)
	req.Header.Set("Device-Id", c.cfg.DeviceID)
	req.Header.Set("Accept-Language", c.cfg.AcceptLanguage)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if sessionID != "" {
		req.Header.Set("sessionId", sessionID)
	}

	return req, nil
}

// drain discards the remaining body so the connection can be reused.
func drain(body io.ReadCloser) {
	io.Copy(io.Discard, io.LimitReader(body, maxResponseSize)) //nolint:errcheck
}
