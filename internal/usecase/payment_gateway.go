package usecase

import "context"

// SessionState is the lifecycle of an external checkout session.
type SessionState string

const (
	SessionStateCompleted SessionState = "completed"
	SessionStatePending   SessionState = "pending"
	SessionStateFailed    SessionState = "failed"
)

// CheckoutItem is one priced line in a checkout session.
type CheckoutItem struct {
	ProductName        string
	ProductDescription string
	Currency           string
	PriceInCents       int64
	Quantity           int64
}

// CheckoutSessionInput carries everything the gateway needs to open a session.
type CheckoutSessionInput struct {
	UserID     string
	Items      []CheckoutItem
	SuccessURL string
	CancelURL  string
}

// CheckoutSession is the gateway's handle for a created session.
type CheckoutSession struct {
	ID  string
	URL string
}

// SessionStatus is the gateway's report for a session. AmountInCents is the
// confirmed total for completed sessions.
type SessionStatus struct {
	State         SessionState
	UserID        string
	AmountInCents int64
	Reference     string
	FailureReason string
}

// PaymentGateway abstracts the external checkout provider. The core never
// implements checkout itself; it only opens sessions and reconciles their
// reported status into the ledger.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, input CheckoutSessionInput) (CheckoutSession, error)
	GetSessionStatus(ctx context.Context, sessionID string) (SessionStatus, error)
}
