package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/wallet"
	"github.com/pitchside/fantasy-cricket/internal/usecase"
)

func (h *Handler) GetWalletBalance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWalletBalance")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	balance, err := h.walletService.GetBalance(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get wallet balance failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, walletBalanceDTO{Balance: balance, Currency: "INR"})
}

func (h *Handler) ListWalletTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWalletTransactions")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	transactions, err := h.walletService.ListTransactions(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list wallet transactions failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]walletTransactionDTO, 0, len(transactions))
	for _, t := range transactions {
		items = append(items, transactionToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateWalletCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateWalletCheckout")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req walletCheckoutRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.walletService.CreateRechargeSession(ctx, principal.UserID, req.Amount)
	if err != nil {
		h.logger.WarnContext(ctx, "create wallet checkout failed",
			"user_id", principal.UserID,
			"amount", req.Amount,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, walletCheckoutResponse{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	})
}

func (h *Handler) RecordWalletDeposit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordWalletDeposit")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req walletDepositRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.walletService.RecordDeposit(ctx, principal.UserID, req.SessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "record wallet deposit failed",
			"user_id", principal.UserID,
			"session_id", req.SessionID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, walletDepositResponse{
		Transaction:     transactionToDTO(result.Transaction),
		AlreadyRecorded: result.AlreadyRecorded,
	})
}

type walletBalanceDTO struct {
	Balance  int64  `json:"balance"`
	Currency string `json:"currency"`
}

type walletCheckoutRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type walletCheckoutResponse struct {
	SessionID   string `json:"sessionId"`
	CheckoutURL string `json:"checkoutUrl"`
}

type walletDepositRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type walletDepositResponse struct {
	Transaction     walletTransactionDTO `json:"transaction"`
	AlreadyRecorded bool                 `json:"alreadyRecorded"`
}

type walletTransactionDTO struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Amount    int64     `json:"amount"`
	SessionID string    `json:"sessionId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func transactionToDTO(t wallet.Transaction) walletTransactionDTO {
	return walletTransactionDTO{
		ID:        t.ID,
		Type:      string(t.Type),
		Amount:    t.Amount,
		SessionID: t.SessionID,
		CreatedAt: t.CreatedAt,
	}
}
