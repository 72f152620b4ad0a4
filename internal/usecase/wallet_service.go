package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/wallet"
	idgen "github.com/pitchside/fantasy-cricket/internal/platform/id"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
)

const (
	minRechargeAmount = 10
	maxRechargeAmount = 10000

	rechargeCurrency = "INR"
)

// DepositResult reports a reconciliation outcome. AlreadyRecorded means the
// session was reconciled earlier and this call changed nothing; replayed
// status checks are a success, not a failure.
type DepositResult struct {
	Transaction     wallet.Transaction
	AlreadyRecorded bool
}

type WalletService struct {
	walletRepo wallet.Repository
	gateway    PaymentGateway
	idGen      idgen.Generator
	successURL string
	cancelURL  string
	logger     *logging.Logger
	now        func() time.Time
}

func NewWalletService(
	walletRepo wallet.Repository,
	gateway PaymentGateway,
	idGen idgen.Generator,
	successURL string,
	cancelURL string,
	logger *logging.Logger,
) *WalletService {
	if logger == nil {
		logger = logging.Default()
	}

	return &WalletService{
		walletRepo: walletRepo,
		gateway:    gateway,
		idGen:      idGen,
		successURL: successURL,
		cancelURL:  cancelURL,
		logger:     logger,
		now:        time.Now,
	}
}

// GetBalance folds the user's ledger. Admission never calls this; the
// authoritative balance read for admission happens inside the admission store.
func (s *WalletService) GetBalance(ctx context.Context, userID string) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WalletService.GetBalance")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	balance, err := s.walletRepo.Balance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("wallet balance: %w", err)
	}

	return balance, nil
}

func (s *WalletService) ListTransactions(ctx context.Context, userID string) ([]wallet.Transaction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WalletService.ListTransactions")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.walletRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}

	return items, nil
}

// CreateRechargeSession opens a checkout session at the payment gateway for a
// wallet top-up. No ledger entry is made here; the deposit lands only when the
// completed session is reconciled through RecordDeposit.
func (s *WalletService) CreateRechargeSession(ctx context.Context, userID string, amount int64) (CheckoutSession, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WalletService.CreateRechargeSession")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return CheckoutSession{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if amount < minRechargeAmount || amount > maxRechargeAmount {
		return CheckoutSession{}, fmt.Errorf("%w: recharge amount must be between %d and %d", ErrInvalidInput, minRechargeAmount, maxRechargeAmount)
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, CheckoutSessionInput{
		UserID: userID,
		Items: []CheckoutItem{
			{
				ProductName:        "Wallet Recharge",
				ProductDescription: fmt.Sprintf("Add %d to wallet", amount),
				Currency:           rechargeCurrency,
				PriceInCents:       amount * 100,
				Quantity:           1,
			},
		},
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
	})
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("%w: create checkout session: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "checkout session created",
		"user_id", userID,
		"session_id", session.ID,
		"amount", amount,
	)

	return session, nil
}

// RecordDeposit reconciles a checkout session into the ledger. Only a
// completed session addressed to this user produces a transaction, exactly
// once per session id regardless of how often the status is replayed.
func (s *WalletService) RecordDeposit(ctx context.Context, userID, sessionID string) (DepositResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WalletService.RecordDeposit")
	defer span.End()

	userID = strings.TrimSpace(userID)
	sessionID = strings.TrimSpace(sessionID)
	if userID == "" {
		return DepositResult{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if sessionID == "" {
		return DepositResult{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}

	status, err := s.gateway.GetSessionStatus(ctx, sessionID)
	if err != nil {
		return DepositResult{}, fmt.Errorf("%w: get session status: %v", ErrDependencyUnavailable, err)
	}

	switch status.State {
	case SessionStateCompleted:
	case SessionStatePending:
		return DepositResult{}, fmt.Errorf("%w: session %s is still pending", ErrInvalidInput, sessionID)
	case SessionStateFailed:
		return DepositResult{}, fmt.Errorf("%w: session %s failed: %s", ErrInvalidInput, sessionID, status.FailureReason)
	default:
		return DepositResult{}, fmt.Errorf("%w: unknown session state %q", ErrInvalidInput, status.State)
	}

	if status.UserID != "" && status.UserID != userID {
		return DepositResult{}, fmt.Errorf("%w: session %s belongs to another user", ErrUnauthorized, sessionID)
	}

	amount := status.AmountInCents / 100
	if amount <= 0 {
		return DepositResult{}, fmt.Errorf("%w: session %s reports non-positive amount", ErrInvalidInput, sessionID)
	}

	txID, err := s.idGen.NewID()
	if err != nil {
		return DepositResult{}, fmt.Errorf("generate transaction id: %w", err)
	}

	tx := wallet.Transaction{
		ID:        txID,
		UserID:    userID,
		Type:      wallet.TypeDeposit,
		Amount:    amount,
		SessionID: sessionID,
		CreatedAt: s.now().UTC(),
	}
	if err := tx.Validate(); err != nil {
		return DepositResult{}, fmt.Errorf("validate deposit transaction: %w", err)
	}

	inserted, err := s.walletRepo.AppendDeposit(ctx, tx)
	if err != nil {
		return DepositResult{}, fmt.Errorf("append deposit: %w", err)
	}
	if !inserted {
		s.logger.InfoContext(ctx, "deposit already reconciled",
			"user_id", userID,
			"session_id", sessionID,
		)
		return DepositResult{Transaction: tx, AlreadyRecorded: true}, nil
	}

	s.logger.InfoContext(ctx, "deposit recorded",
		"user_id", userID,
		"session_id", sessionID,
		"amount", amount,
	)

	return DepositResult{Transaction: tx}, nil
}
