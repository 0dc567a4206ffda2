package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const succeededIntent = `{
  "id": "pi_123",
  "object": "payment_intent",
  "amount": 1000,
  "currency": "usd",
  "status": "succeeded",
  "metadata": {"transaction_id": "TXN-1"}
}`

func newDirectForTest(t *testing.T, handler http.HandlerFunc) *Direct {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewDirect("sk_test_123", server.URL)
}

func TestDirect_InitiateAndConfirm(t *testing.T) {
	d := newDirectForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/payment_intents":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "1000", r.PostForm.Get("amount"))
			assert.Equal(t, "usd", r.PostForm.Get("currency"))
			assert.Equal(t, "pm_card_visa", r.PostForm.Get("payment_method"))
			assert.Equal(t, "TXN-1", r.PostForm.Get("metadata[transaction_id]"))
			w.Write([]byte(succeededIntent))
		case r.Method == http.MethodGet && r.URL.Path == "/v1/payment_intents/pi_123":
			w.Write([]byte(succeededIntent))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	checkout, err := d.Initiate(context.Background(), Charge{
		TransactionID: "TXN-1",
		Amount:        decimal.NewFromInt(10),
		Currency:      "USD",
		PaymentMethod: "pm_card_visa",
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_123", checkout.Reference)
	assert.Empty(t, checkout.RedirectURL)

	outcome, err := d.Confirm(context.Background(), Callback{TransactionID: "TXN-1", Reference: "pi_123", Amount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Equal(t, "pi_123", outcome.Reference)

	_, err = d.Confirm(context.Background(), Callback{TransactionID: "TXN-9", Reference: "pi_123", Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, ErrUnverified)
}

func TestDirect_CardDeclined(t *testing.T) {
	d := newDirectForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error": {"type": "card_error", "code": "card_declined", "message": "Your card was declined."}}`))
	})

	_, err := d.Initiate(context.Background(), Charge{
		TransactionID: "TXN-1",
		Amount:        decimal.NewFromInt(10),
		Currency:      "USD",
		PaymentMethod: "pm_card_chargeDeclined",
	})
	assert.ErrorIs(t, err, ErrRejected)
}

func TestDirect_RequiresPaymentMethod(t *testing.T) {
	d := NewDirect("sk_test_123", "http://127.0.0.1:0")
	_, err := d.Initiate(context.Background(), Charge{TransactionID: "TXN-1", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrRejected)
}

func TestDirect_ZeroDecimalCurrency(t *testing.T) {
	d := newDirectForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "500", r.PostForm.Get("amount"))
		assert.Equal(t, "jpy", r.PostForm.Get("currency"))
		w.Write([]byte(`{"id": "pi_jpy", "object": "payment_intent", "amount": 500, "currency": "jpy", "status": "succeeded"}`))
	})

	checkout, err := d.Initiate(context.Background(), Charge{
		TransactionID: "TXN-2",
		Amount:        decimal.NewFromInt(500),
		Currency:      "JPY",
		PaymentMethod: "pm_card_visa",
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_jpy", checkout.Reference)

	_, err = d.Initiate(context.Background(), Charge{
		TransactionID: "TXN-3",
		Amount:        decimal.RequireFromString("500.5"),
		Currency:      "JPY",
		PaymentMethod: "pm_card_visa",
	})
	assert.ErrorIs(t, err, ErrRejected)
}
