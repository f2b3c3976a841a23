package usecases

import (
	"context"
	"errors"
	"testing"

	"cheki/internal/application/receipt/testutil"
	sharederrors "cheki/internal/shared/errors"
)

func TestRequestSMSCode_Accepted(t *testing.T) {
	gateway := testutil.NewMockGateway()
	uc := NewRequestSMSCodeUseCase(gateway, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), RequestSMSCodeCommand{Phone: "+70000000000"})

	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if !result.Accepted {
		t.Error("Accepted = false, want true")
	}
	if gateway.RequestCalls != 1 {
		t.Errorf("RequestCalls = %d, want 1", gateway.RequestCalls)
	}
}

func TestRequestSMSCode_Declined(t *testing.T) {
	gateway := testutil.NewMockGateway()
	gateway.SMSAccepted = false
	uc := NewRequestSMSCodeUseCase(gateway, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), RequestSMSCodeCommand{Phone: "+70000000000"})

	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Accepted {
		t.Error("Accepted = true, want false")
	}
}

func TestRequestSMSCode_TransportFailurePropagates(t *testing.T) {
	gateway := testutil.NewMockGateway()
	gateway.SMSErr = errors.New("no route to host")
	uc := NewRequestSMSCodeUseCase(gateway, testutil.NewMockLogger())

	if _, err := uc.Execute(context.Background(), RequestSMSCodeCommand{Phone: "+70000000000"}); err == nil {
		t.Error("Execute() expected transport error to propagate")
	}
}

func TestRequestSMSCode_RequiresPhone(t *testing.T) {
	uc := NewRequestSMSCodeUseCase(testutil.NewMockGateway(), testutil.NewMockLogger())

	if _, err := uc.Execute(context.Background(), RequestSMSCodeCommand{}); !sharederrors.IsValidationError(err) {
		t.Errorf("Execute() error = %v, want validation error", err)
	}
}
