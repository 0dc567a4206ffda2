package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHostedForTest(t *testing.T, handler http.HandlerFunc) *Hosted {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewHosted(HostedConfig{
		StoreID:       "store",
		StorePassword: "secret",
		BaseURL:       server.URL + "/",
		SuccessURL:    "http://api.test/success-payment",
		FailURL:       "http://api.test/fail",
		CancelURL:     "http://api.test/cancel",
	}, server.Client())
}

func TestHosted_Initiate(t *testing.T) {
	h := newHostedForTest(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, sessionPath, r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "store", r.PostForm.Get("store_id"))
		assert.Equal(t, "12.50", r.PostForm.Get("total_amount"))
		assert.Equal(t, "TXN-1", r.PostForm.Get("tran_id"))
		assert.Equal(t, "http://api.test/success-payment", r.PostForm.Get("success_url"))

		json.NewEncoder(w).Encode(map[string]string{
			"status":         "SUCCESS",
			"sessionkey":     "sess-1",
			"GatewayPageURL": "https://pay.test/checkout/sess-1",
		})
	})

	checkout, err := h.Initiate(context.Background(), Charge{
		TransactionID: "TXN-1",
		Amount:        decimal.RequireFromString("12.5"),
		Currency:      "USD",
		PayerEmail:    "buyer@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.test/checkout/sess-1", checkout.RedirectURL)
	assert.Equal(t, "sess-1", checkout.Reference)
}

func TestHosted_InitiateRejected(t *testing.T) {
	h := newHostedForTest(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "FAILED", "failedreason": "Store Credential Error"})
	})

	_, err := h.Initiate(context.Background(), Charge{TransactionID: "TXN-1", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrRejected)
}

func TestHosted_Confirm(t *testing.T) {
	validation := map[string]string{
		"status":       "VALID",
		"tran_id":      "TXN-1",
		"val_id":       "val-1",
		"amount":       "12.50",
		"currency":     "USD",
		"bank_tran_id": "bank-1",
	}
	h := newHostedForTest(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, validationPath, r.URL.Path)
		assert.Equal(t, "val-1", r.URL.Query().Get("val_id"))
		assert.Equal(t, "secret", r.URL.Query().Get("store_passwd"))
		json.NewEncoder(w).Encode(validation)
	})

	cb := Callback{TransactionID: "TXN-1", Reference: "val-1", Amount: decimal.RequireFromString("12.5"), Currency: "USD"}
	outcome, err := h.Confirm(context.Background(), cb)
	require.NoError(t, err)
	assert.Equal(t, "bank-1", outcome.Reference)

	validation["status"] = "INVALID_TRANSACTION"
	_, err = h.Confirm(context.Background(), cb)
	assert.ErrorIs(t, err, ErrUnverified)

	validation["status"] = "VALIDATED"
	validation["amount"] = "1.00"
	_, err = h.Confirm(context.Background(), cb)
	assert.ErrorIs(t, err, ErrUnverified)

	validation["amount"] = "12.50"
	validation["tran_id"] = "TXN-2"
	_, err = h.Confirm(context.Background(), cb)
	assert.ErrorIs(t, err, ErrUnverified)

	_, err = h.Confirm(context.Background(), Callback{TransactionID: "TXN-1"})
	assert.ErrorIs(t, err, ErrUnverified)
}

func TestHosted_BreakerOpensAfterFailures(t *testing.T) {
	calls := 0
	h := newHostedForTest(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})

	for i := 0; i < 6; i++ {
		_, err := h.Confirm(context.Background(), Callback{TransactionID: "TXN-1", Reference: "val-1"})
		assert.ErrorIs(t, err, ErrUnavailable)
	}
	assert.Equal(t, 4, calls, "breaker stops calling after four consecutive failures")
}
