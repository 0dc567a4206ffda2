package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/logging"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
)

const (
	sessionPath    = "/gwprocess/v4/api.php"
	validationPath = "/validator/api/validationserverAPI.php"
)

// HostedConfig holds the merchant credentials and callback URLs.
type HostedConfig struct {
	StoreID       string
	StorePassword string
	BaseURL       string
	SuccessURL    string
	FailURL       string
	CancelURL     string
}

// Hosted redirects the payer to the gateway's checkout page and verifies the
// callback against the gateway's validation API.
type Hosted struct {
	cfg     HostedConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

type sessionResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

type validationResponse struct {
	Status     string `json:"status"`
	TranID     string `json:"tran_id"`
	ValID      string `json:"val_id"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	BankTranID string `json:"bank_tran_id"`
}

func NewHosted(cfg HostedConfig, client *http.Client) *Hosted {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Hosted{
		cfg:    cfg,
		client: client,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "payment-gateway-cb",
			MaxRequests: 1,
			Timeout:     5 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logging.Logger.Warnf("Circuit breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
			},
		}),
	}
}

func (h *Hosted) Kind() string { return KindHosted }

// Initiate opens a checkout session and returns the hosted page URL.
func (h *Hosted) Initiate(ctx context.Context, charge Charge) (*Checkout, error) {
	form := url.Values{}
	form.Set("store_id", h.cfg.StoreID)
	form.Set("store_passwd", h.cfg.StorePassword)
	form.Set("total_amount", charge.Amount.StringFixed(MinorUnits(charge.Currency)))
	form.Set("currency", charge.Currency)
	form.Set("tran_id", charge.TransactionID)
	form.Set("success_url", h.cfg.SuccessURL)
	form.Set("fail_url", h.cfg.FailURL)
	form.Set("cancel_url", h.cfg.CancelURL)
	form.Set("cus_name", charge.PayerName)
	form.Set("cus_email", charge.PayerEmail)
	form.Set("cus_add1", "N/A")
	form.Set("cus_city", "N/A")
	form.Set("cus_country", "N/A")
	form.Set("cus_phone", "N/A")
	form.Set("shipping_method", "NO")
	form.Set("num_of_item", "1")
	form.Set("product_name", "Coins")
	form.Set("product_category", "Digital")
	form.Set("product_profile", "non-physical-goods")

	var resp sessionResponse
	if err := h.call(ctx, http.MethodPost, sessionPath, form, &resp); err != nil {
		return nil, err
	}
	if !strings.EqualFold(resp.Status, "SUCCESS") || resp.GatewayPageURL == "" {
		return nil, fmt.Errorf("%w: %s", ErrRejected, resp.FailedReason)
	}

	return &Checkout{RedirectURL: resp.GatewayPageURL, Reference: resp.SessionKey}, nil
}

// Confirm asks the gateway to validate the callback's val_id. The gateway's
// record must be valid and match the stored transaction id and amount.
func (h *Hosted) Confirm(ctx context.Context, cb Callback) (*Outcome, error) {
	if cb.Reference == "" {
		return nil, fmt.Errorf("%w: missing validation id", ErrUnverified)
	}

	query := url.Values{}
	query.Set("val_id", cb.Reference)
	query.Set("store_id", h.cfg.StoreID)
	query.Set("store_passwd", h.cfg.StorePassword)
	query.Set("format", "json")

	var resp validationResponse
	if err := h.call(ctx, http.MethodGet, validationPath, query, &resp); err != nil {
		return nil, err
	}

	switch strings.ToUpper(resp.Status) {
	case "VALID", "VALIDATED":
	default:
		return nil, fmt.Errorf("%w: status %q", ErrUnverified, resp.Status)
	}
	if resp.TranID != cb.TransactionID {
		return nil, fmt.Errorf("%w: transaction id mismatch", ErrUnverified)
	}
	amount, err := decimal.NewFromString(resp.Amount)
	if err != nil || !amount.Equal(cb.Amount) {
		return nil, fmt.Errorf("%w: amount mismatch", ErrUnverified)
	}
	if cb.Currency != "" && resp.Currency != "" && !strings.EqualFold(resp.Currency, cb.Currency) {
		return nil, fmt.Errorf("%w: currency mismatch", ErrUnverified)
	}

	ref := resp.BankTranID
	if ref == "" {
		ref = cb.Reference
	}
	return &Outcome{TransactionID: resp.TranID, Reference: ref}, nil
}

func (h *Hosted) call(ctx context.Context, method, path string, params url.Values, out interface{}) error {
	_, err := h.breaker.Execute(func() (interface{}, error) {
		var (
			req *http.Request
			err error
		)
		endpoint := h.cfg.BaseURL + path
		if method == http.MethodGet {
			req, err = http.NewRequestWithContext(ctx, method, endpoint+"?"+params.Encode(), nil)
		} else {
			req, err = http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(params.Encode()))
			if req != nil {
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
		}
		if err != nil {
			return nil, err
		}

		resp, err := h.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("gateway answered %s", resp.Status)
		}
		return nil, json.NewDecoder(resp.Body).Decode(out)
	})
	if err == nil {
		return nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		logging.Logger.WithError(err).Warn("payment gateway call short-circuited")
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
