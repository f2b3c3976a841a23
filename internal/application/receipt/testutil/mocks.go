// Package testutil provides in-memory fakes for the receipt application
// layer tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"cheki/internal/domain/receipt"
	"cheki/internal/shared/biztime"
	"cheki/internal/shared/errors"
	"cheki/internal/shared/logger"
)

// MockTokenRepository is an append-only in-memory token store with
// strictly increasing ids.
type MockTokenRepository struct {
	mu     sync.Mutex
	tokens []*receipt.SessionToken
	nextID uint

	// NowFunc controls the CreatedAt assigned on Create. Defaults to
	// biztime.NowUTC.
	NowFunc func() time.Time

	CreateErr    error
	GetLatestErr error
	CreateCalls  int
}

func NewMockTokenRepository() *MockTokenRepository {
	return &MockTokenRepository{nextID: 1}
}

// Seed inserts a record as-is, assigning the next id. Use it to set up
// tokens with an explicit CreatedAt.
func (r *MockTokenRepository) Seed(token *receipt.SessionToken) *receipt.SessionToken {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *token
	stored.ID = r.nextID
	r.nextID++
	r.tokens = append(r.tokens, &stored)
	return &stored
}

func (r *MockTokenRepository) Create(ctx context.Context, token *receipt.SessionToken) (*receipt.SessionToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.CreateCalls++
	if r.CreateErr != nil {
		return nil, r.CreateErr
	}

	now := biztime.NowUTC()
	if r.NowFunc != nil {
		now = r.NowFunc()
	}

	stored := *token
	stored.ID = r.nextID
	stored.CreatedAt = now
	r.nextID++
	r.tokens = append(r.tokens, &stored)

	persisted := stored
	return &persisted, nil
}

func (r *MockTokenRepository) GetLatest(ctx context.Context) (*receipt.SessionToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.GetLatestErr != nil {
		return nil, r.GetLatestErr
	}
	if len(r.tokens) == 0 {
		return nil, nil
	}
	latest := *r.tokens[len(r.tokens)-1]
	return &latest, nil
}

// All returns a copy of every stored record in creation order.
func (r *MockTokenRepository) All() []*receipt.SessionToken {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*receipt.SessionToken, len(r.tokens))
	for i, t := range r.tokens {
		cp := *t
		out[i] = &cp
	}
	return out
}

// MockGateway is a configurable fake of the remote receipt service.
type MockGateway struct {
	mu sync.Mutex

	SMSAccepted bool
	SMSErr      error

	// VerifyResults maps "phone|code" to issued credentials. Pairs with
	// no entry are rejected with an unauthorized error.
	VerifyResults map[string]*receipt.SessionCredentials
	VerifyErr     error

	// RefreshResults maps refresh tokens to issued credentials. Tokens
	// with no entry are rejected with an unauthorized error.
	RefreshResults map[string]*receipt.SessionCredentials
	RefreshErr     error

	// TicketIDs maps QR payloads to ticket ids; Tickets maps ticket ids
	// to bodies. Missing entries are remote misses, not errors.
	TicketIDs map[string]string
	Tickets   map[string]map[string]any

	TicketIDErr error
	TicketErr   error

	RequestCalls  int
	VerifyCalls   int
	RefreshCalls  int
	TicketIDCalls int
	TicketCalls   int

	// LastSessionID records the session id used on the most recent
	// lookup call.
	LastSessionID string
}

func NewMockGateway() *MockGateway {
	return &MockGateway{
		SMSAccepted:    true,
		VerifyResults:  make(map[string]*receipt.SessionCredentials),
		RefreshResults: make(map[string]*receipt.SessionCredentials),
		TicketIDs:      make(map[string]string),
		Tickets:        make(map[string]map[string]any),
	}
}

func (g *MockGateway) RequestSMSCode(ctx context.Context, phone string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.RequestCalls++
	if g.SMSErr != nil {
		return false, g.SMSErr
	}
	return g.SMSAccepted, nil
}

func (g *MockGateway) VerifySMSCode(ctx context.Context, phone, code string) (*receipt.SessionCredentials, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.VerifyCalls++
	if g.VerifyErr != nil {
		return nil, g.VerifyErr
	}
	creds, ok := g.VerifyResults[phone+"|"+code]
	if !ok {
		return nil, errors.NewUnauthorizedError("SMS code rejected")
	}
	cp := *creds
	return &cp, nil
}

func (g *MockGateway) RefreshSession(ctx context.Context, refreshToken string) (*receipt.SessionCredentials, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.RefreshCalls++
	if g.RefreshErr != nil {
		return nil, g.RefreshErr
	}
	creds, ok := g.RefreshResults[refreshToken]
	if !ok {
		return nil, errors.NewUnauthorizedError("refresh token rejected")
	}
	cp := *creds
	return &cp, nil
}

func (g *MockGateway) GetTicketID(ctx context.Context, qr, sessionID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.TicketIDCalls++
	g.LastSessionID = sessionID
	if g.TicketIDErr != nil {
		return "", g.TicketIDErr
	}
	return g.TicketIDs[qr], nil
}

func (g *MockGateway) GetTicketByID(ctx context.Context, ticketID, sessionID string) (map[string]any, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.TicketCalls++
	g.LastSessionID = sessionID
	if g.TicketErr != nil {
		return nil, g.TicketErr
	}
	return g.Tickets[ticketID], nil
}

// MockLogger is a no-op logger for tests.
type MockLogger struct{}

func NewMockLogger() logger.Interface {
	return &MockLogger{}
}

func (l *MockLogger) Debug(msg string, args ...any)           {}
func (l *MockLogger) Info(msg string, args ...any)            {}
func (l *MockLogger) Warn(msg string, args ...any)            {}
func (l *MockLogger) Error(msg string, args ...any)           {}
func (l *MockLogger) With(args ...any) logger.Interface       { return l }
func (l *MockLogger) Named(name string) logger.Interface      { return l }
func (l *MockLogger) Debugw(msg string, keysAndValues ...any) {}
func (l *MockLogger) Infow(msg string, keysAndValues ...any)  {}
func (l *MockLogger) Warnw(msg string, keysAndValues ...any)  {}
func (l *MockLogger) Errorw(msg string, keysAndValues ...any) {}
