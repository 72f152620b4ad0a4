package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/pitchside/fantasy-cricket/internal/infrastructure/repository/memory"
	idgen "github.com/pitchside/fantasy-cricket/internal/platform/id"
)

type stubGateway struct {
	lastInput  CheckoutSessionInput
	session    CheckoutSession
	status     SessionStatus
	createErr  error
	statusErr  error
	statusByID map[string]SessionStatus
}

func (g *stubGateway) CreateCheckoutSession(_ context.Context, input CheckoutSessionInput) (CheckoutSession, error) {
	g.lastInput = input
	if g.createErr != nil {
		return CheckoutSession{}, g.createErr
	}
	return g.session, nil
}

func (g *stubGateway) GetSessionStatus(_ context.Context, sessionID string) (SessionStatus, error) {
	if g.statusErr != nil {
		return SessionStatus{}, g.statusErr
	}
	if status, ok := g.statusByID[sessionID]; ok {
		return status, nil
	}
	return g.status, nil
}

func newWalletService(gateway *stubGateway) (*WalletService, *memory.WalletRepository) {
	walletRepo := memory.NewWalletRepository()
	svc := NewWalletService(walletRepo, gateway, idgen.NewRandomGenerator(), "https://app.example/wallet/success", "https://app.example/wallet/cancel", nil)
	return svc, walletRepo
}

func TestWalletService_CreateRechargeSession_ConvertsToCents(t *testing.T) {
	gateway := &stubGateway{session: CheckoutSession{ID: "cs_123", URL: "https://pay.example/cs_123"}}
	svc, _ := newWalletService(gateway)

	session, err := svc.CreateRechargeSession(t.Context(), "user-1", 500)
	if err != nil {
		t.Fatalf("create recharge session failed: %v", err)
	}
	if session.ID != "cs_123" {
		t.Fatalf("unexpected session id: %s", session.ID)
	}

	if len(gateway.lastInput.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(gateway.lastInput.Items))
	}
	item := gateway.lastInput.Items[0]
	if item.PriceInCents != 50000 {
		t.Fatalf("expected 50000 cents, got %d", item.PriceInCents)
	}
	if item.Currency != "INR" {
		t.Fatalf("unexpected currency: %s", item.Currency)
	}
}

func TestWalletService_CreateRechargeSession_RejectOutOfBounds(t *testing.T) {
	svc, _ := newWalletService(&stubGateway{})

	for _, amount := range []int64{0, 9, 10001} {
		_, err := svc.CreateRechargeSession(t.Context(), "user-1", amount)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("amount %d: expected ErrInvalidInput, got %v", amount, err)
		}
	}
}

func TestWalletService_CreateRechargeSession_GatewayDown(t *testing.T) {
	gateway := &stubGateway{createErr: errors.New("connection refused")}
	svc, _ := newWalletService(gateway)

	_, err := svc.CreateRechargeSession(t.Context(), "user-1", 100)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestWalletService_RecordDeposit_CreditsExactlyOnce(t *testing.T) {
	gateway := &stubGateway{status: SessionStatus{
		State:         SessionStateCompleted,
		UserID:        "user-1",
		AmountInCents: 50000,
	}}
	svc, walletRepo := newWalletService(gateway)

	first, err := svc.RecordDeposit(t.Context(), "user-1", "cs_123")
	if err != nil {
		t.Fatalf("record deposit failed: %v", err)
	}
	if first.AlreadyRecorded {
		t.Fatal("first reconciliation must insert")
	}
	if first.Transaction.Amount != 500 {
		t.Fatalf("unexpected amount: %d", first.Transaction.Amount)
	}

	second, err := svc.RecordDeposit(t.Context(), "user-1", "cs_123")
	if err != nil {
		t.Fatalf("replayed reconciliation failed: %v", err)
	}
	if !second.AlreadyRecorded {
		t.Fatal("replay must report already recorded")
	}

	balance, err := walletRepo.Balance(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance != 500 {
		t.Fatalf("expected balance 500 after replay, got %d", balance)
	}
}

func TestWalletService_RecordDeposit_RejectPendingSession(t *testing.T) {
	gateway := &stubGateway{status: SessionStatus{State: SessionStatePending, UserID: "user-1"}}
	svc, _ := newWalletService(gateway)

	_, err := svc.RecordDeposit(t.Context(), "user-1", "cs_123")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWalletService_RecordDeposit_RejectFailedSession(t *testing.T) {
	gateway := &stubGateway{status: SessionStatus{
		State:         SessionStateFailed,
		UserID:        "user-1",
		FailureReason: "card declined",
	}}
	svc, _ := newWalletService(gateway)

	_, err := svc.RecordDeposit(t.Context(), "user-1", "cs_123")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWalletService_RecordDeposit_RejectForeignSession(t *testing.T) {
	gateway := &stubGateway{status: SessionStatus{
		State:         SessionStateCompleted,
		UserID:        "user-2",
		AmountInCents: 50000,
	}}
	svc, _ := newWalletService(gateway)

	_, err := svc.RecordDeposit(t.Context(), "user-1", "cs_123")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestWalletService_RecordDeposit_GatewayDown(t *testing.T) {
	gateway := &stubGateway{statusErr: errors.New("timeout")}
	svc, _ := newWalletService(gateway)

	_, err := svc.RecordDeposit(t.Context(), "user-1", "cs_123")
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
