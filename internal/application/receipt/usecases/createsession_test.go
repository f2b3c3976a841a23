package usecases

import (
	"context"
	"errors"
	"testing"

	"cheki/internal/application/receipt/testutil"
	"cheki/internal/domain/receipt"
	sharederrors "cheki/internal/shared/errors"
)

func TestCreateSession_Success(t *testing.T) {
	repo := testutil.NewMockTokenRepository()
	gateway := testutil.NewMockGateway()
	gateway.VerifyResults["+70000000000|0000"] = &receipt.SessionCredentials{
		SessionID:    "S1",
		RefreshToken: "R1",
	}
	uc := NewCreateSessionUseCase(repo, gateway, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), CreateSessionCommand{
		Phone: "+70000000000",
		Code:  "0000",
	})

	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result == nil {
		t.Fatal("Execute() returned nil result")
	}
	if result.SessionID != "S1" {
		t.Errorf("SessionID = %q, want S1", result.SessionID)
	}
	if result.RefreshToken != "R1" {
		t.Errorf("RefreshToken = %q, want R1", result.RefreshToken)
	}
	if !result.ObtainedViaCode {
		t.Error("ObtainedViaCode = false, want true for SMS-code exchange")
	}
	if result.ID == 0 {
		t.Error("ID = 0, want store-assigned id")
	}
	if result.CreatedAt.IsZero() {
		t.Error("CreatedAt not populated by the store")
	}

	tokens := repo.All()
	if len(tokens) != 1 {
		t.Fatalf("stored tokens = %d, want 1", len(tokens))
	}
	if !tokens[0].ObtainedViaCode {
		t.Error("persisted token ObtainedViaCode = false, want true")
	}
}

func TestCreateSession_RejectedCodePropagates(t *testing.T) {
	repo := testutil.NewMockTokenRepository()
	gateway := testutil.NewMockGateway()
	uc := NewCreateSessionUseCase(repo, gateway, testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), CreateSessionCommand{
		Phone: "+70000000000",
		Code:  "9999",
	})

	if !sharederrors.IsUnauthorizedError(err) {
		t.Errorf("Execute() error = %v, want unauthorized", err)
	}
	if repo.CreateCalls != 0 {
		t.Errorf("CreateCalls = %d, want 0 after rejection", repo.CreateCalls)
	}
}

func TestCreateSession_TransportFailurePropagates(t *testing.T) {
	repo := testutil.NewMockTokenRepository()
	gateway := testutil.NewMockGateway()
	gateway.VerifyErr = errors.New("dial tcp: i/o timeout")
	uc := NewCreateSessionUseCase(repo, gateway, testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), CreateSessionCommand{
		Phone: "+70000000000",
		Code:  "0000",
	})

	if err == nil {
		t.Fatal("Execute() expected transport error to propagate")
	}
	if repo.CreateCalls != 0 {
		t.Errorf("CreateCalls = %d, want 0 after failure", repo.CreateCalls)
	}
}

func TestCreateSession_Validation(t *testing.T) {
	uc := NewCreateSessionUseCase(testutil.NewMockTokenRepository(), testutil.NewMockGateway(), testutil.NewMockLogger())

	if _, err := uc.Execute(context.Background(), CreateSessionCommand{Code: "0000"}); !sharederrors.IsValidationError(err) {
		t.Errorf("missing phone: error = %v, want validation error", err)
	}
	if _, err := uc.Execute(context.Background(), CreateSessionCommand{Phone: "+70000000000"}); !sharederrors.IsValidationError(err) {
		t.Errorf("missing code: error = %v, want validation error", err)
	}
}
