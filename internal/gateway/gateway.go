package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/config"
	"github.com/shopspring/decimal"
)

var (
	ErrNotConfigured = errors.New("payment gateway is not configured")
	ErrRejected      = errors.New("payment gateway rejected the charge")
	ErrUnverified    = errors.New("payment could not be verified with the gateway")
	ErrUnavailable   = errors.New("payment gateway is unavailable")
)

const (
	KindHosted = "hosted"
	KindDirect = "direct"
)

// Charge describes one coin purchase.
type Charge struct {
	TransactionID string
	Amount        decimal.Decimal
	Currency      string
	PayerName     string
	PayerEmail    string
	// PaymentMethod is the processor-side card token for direct charges.
	PaymentMethod string
}

// Checkout is the gateway's answer to Initiate.
type Checkout struct {
	// RedirectURL is the hosted page the payer must visit; empty for direct charges.
	RedirectURL string
	Reference   string
}

// Callback carries what the service must verify before completing a payment.
// Amount and Currency are the values stored when the charge was initiated.
type Callback struct {
	TransactionID string
	Reference     string
	Amount        decimal.Decimal
	Currency      string
}

// Outcome is a verified, settled charge.
type Outcome struct {
	TransactionID string
	Reference     string
}

// Gateway is implemented by every payment integration.
type Gateway interface {
	Kind() string
	Initiate(ctx context.Context, charge Charge) (*Checkout, error)
	Confirm(ctx context.Context, callback Callback) (*Outcome, error)
}

// New builds the gateway selected by cfg.PaymentGateway.
func New(cfg *config.Config) (Gateway, error) {
	switch cfg.PaymentGateway {
	case KindHosted:
		if cfg.StoreID == "" || cfg.StorePassword == "" {
			return nil, fmt.Errorf("%w: STORE_ID and STORE_PASSWORD are required", ErrNotConfigured)
		}
		return NewHosted(HostedConfig{
			StoreID:       cfg.StoreID,
			StorePassword: cfg.StorePassword,
			BaseURL:       cfg.GatewayBaseURL,
			SuccessURL:    cfg.ServerURL + "/success-payment",
			FailURL:       cfg.ServerURL + "/fail",
			CancelURL:     cfg.ServerURL + "/cancel",
		}, &http.Client{Timeout: 15 * time.Second}), nil
	case KindDirect:
		if cfg.StripeSecretKey == "" {
			return nil, fmt.Errorf("%w: STRIPE_SECRET_KEY is required", ErrNotConfigured)
		}
		return NewDirect(cfg.StripeSecretKey, cfg.StripeAPIURL), nil
	default:
		return nil, fmt.Errorf("%w: unknown gateway %q", ErrNotConfigured, cfg.PaymentGateway)
	}
}
