package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/logging"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Direct charges a card synchronously through a Stripe PaymentIntent.
type Direct struct {
	api *client.API
}

// NewDirect creates the direct-charge adapter. apiURL overrides the Stripe
// endpoint and is empty in production.
func NewDirect(secretKey, apiURL string) *Direct {
	var backends *stripe.Backends
	if apiURL != "" {
		backends = &stripe.Backends{
			API: stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
				URL:               stripe.String(apiURL),
				LeveledLogger:     logging.Logger,
				MaxNetworkRetries: stripe.Int64(0),
			}),
		}
	}

	api := &client.API{}
	api.Init(secretKey, backends)
	return &Direct{api: api}
}

func (d *Direct) Kind() string { return KindDirect }

// Initiate creates and confirms a PaymentIntent for the charge.
func (d *Direct) Initiate(ctx context.Context, charge Charge) (*Checkout, error) {
	if charge.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: payment method is required", ErrRejected)
	}
	amount, ok := ToMinorUnits(charge.Amount, charge.Currency)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not allow amount %s", ErrRejected, charge.Currency, charge.Amount)
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amount),
		Currency:      stripe.String(strings.ToLower(charge.Currency)),
		PaymentMethod: stripe.String(charge.PaymentMethod),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String("Coin purchase " + charge.TransactionID),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	if charge.PayerEmail != "" {
		params.ReceiptEmail = stripe.String(charge.PayerEmail)
	}
	params.Context = ctx
	params.AddMetadata("transaction_id", charge.TransactionID)
	params.SetIdempotencyKey(charge.TransactionID)

	intent, err := d.api.PaymentIntents.New(params)
	if err != nil {
		return nil, classify(err)
	}
	return &Checkout{Reference: intent.ID}, nil
}

// Confirm re-reads the PaymentIntent and requires it to have succeeded for the
// stored transaction and amount.
func (d *Direct) Confirm(ctx context.Context, cb Callback) (*Outcome, error) {
	if cb.Reference == "" {
		return nil, fmt.Errorf("%w: missing payment intent", ErrUnverified)
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	intent, err := d.api.PaymentIntents.Get(cb.Reference, params)
	if err != nil {
		return nil, classify(err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("%w: intent status %q", ErrUnverified, intent.Status)
	}
	if intent.Metadata["transaction_id"] != cb.TransactionID {
		return nil, fmt.Errorf("%w: transaction id mismatch", ErrUnverified)
	}
	if amount, ok := ToMinorUnits(cb.Amount, cb.Currency); !ok || intent.Amount != amount {
		return nil, fmt.Errorf("%w: amount mismatch", ErrUnverified)
	}

	return &Outcome{TransactionID: cb.TransactionID, Reference: intent.ID}, nil
}

func classify(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch stripeErr.Type {
		case stripe.ErrorTypeCard, stripe.ErrorTypeInvalidRequest:
			return fmt.Errorf("%w: %s", ErrRejected, stripeErr.Msg)
		}
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
