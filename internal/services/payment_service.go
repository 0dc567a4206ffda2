package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/gateway"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/logging"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/repository"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// PaymentService sells coins through the configured payment gateway
type PaymentService struct {
	paymentRepo  repository.PaymentRepository
	gateway      gateway.Gateway
	currency     string
	coinsPerUnit int64
}

// NewPaymentService creates a new PaymentService. gw may be nil, in which case
// every purchase fails with ErrGatewayNotConfigured.
func NewPaymentService(paymentRepo repository.PaymentRepository, gw gateway.Gateway, currency string, coinsPerUnit int64) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		gateway:      gw,
		currency:     currency,
		coinsPerUnit: coinsPerUnit,
	}
}

// GatewayKind reports which adapter is active, or "" when none is configured.
func (s *PaymentService) GatewayKind() string {
	if s.gateway == nil {
		return ""
	}
	return s.gateway.Kind()
}

// PurchaseInput is a request to buy coins
type PurchaseInput struct {
	Amount        decimal.Decimal
	PaymentMethod string
}

// PurchaseResult is either a pending payment with a checkout page to visit, or
// a payment the gateway settled synchronously.
type PurchaseResult struct {
	Payment     *models.Payment
	RedirectURL string
}

// CallbackInput is what the gateway posts back after checkout
type CallbackInput struct {
	TransactionID string
	ValidationID  string
}

// Purchase records a pending payment and starts the charge. Hosted gateways
// return a checkout URL; direct gateways settle and credit the coins before
// returning.
func (s *PaymentService) Purchase(ctx context.Context, actor *models.User, input PurchaseInput) (*PurchaseResult, error) {
	if s.gateway == nil {
		return nil, ErrGatewayNotConfigured
	}

	amount := input.Amount.Round(gateway.MinorUnits(s.currency))
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	coins := amount.Mul(decimal.NewFromInt(s.coinsPerUnit)).IntPart()
	if coins <= 0 {
		return nil, fmt.Errorf("%w: amount is too small to buy a coin", ErrValidation)
	}

	payment := &models.Payment{
		TransactionID: utils.GenerateTransactionID(),
		PayerName:     actor.Name,
		PayerEmail:    actor.Email,
		Amount:        amount,
		Currency:      s.currency,
		Coins:         coins,
		Gateway:       s.gateway.Kind(),
		Status:        models.PaymentPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	checkout, err := s.gateway.Initiate(ctx, gateway.Charge{
		TransactionID: payment.TransactionID,
		Amount:        amount,
		Currency:      s.currency,
		PayerName:     actor.Name,
		PayerEmail:    actor.Email,
		PaymentMethod: input.PaymentMethod,
	})
	if err != nil {
		s.markFailed(ctx, payment.TransactionID, err)
		return nil, s.translateGateway(err)
	}

	if checkout.RedirectURL != "" {
		return &PurchaseResult{Payment: payment, RedirectURL: checkout.RedirectURL}, nil
	}

	completed, err := s.confirm(ctx, payment, checkout.Reference)
	if err != nil {
		if errors.Is(err, ErrPaymentUnverified) {
			s.markFailed(ctx, payment.TransactionID, err)
			return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
		}
		return nil, err
	}
	return &PurchaseResult{Payment: completed}, nil
}

// CompleteCallback verifies a gateway callback and, once verified, marks the
// payment successful and credits the payer exactly once. A callback for a
// payment that already succeeded returns it without crediting again.
func (s *PaymentService) CompleteCallback(ctx context.Context, input CallbackInput) (*models.Payment, error) {
	if s.gateway == nil {
		return nil, ErrGatewayNotConfigured
	}
	if input.TransactionID == "" || input.ValidationID == "" {
		return nil, fmt.Errorf("%w: tran_id and val_id are required", ErrPaymentUnverified)
	}

	payment, err := s.paymentRepo.FindByTransactionID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown transaction", ErrPaymentUnverified)
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}

	switch payment.Status {
	case models.PaymentSuccess:
		return payment, nil
	case models.PaymentFailed:
		return nil, ErrPaymentCompleted
	}

	return s.confirm(ctx, payment, input.ValidationID)
}

// ListPayments lists the payments made by email; defaults to the caller.
func (s *PaymentService) ListPayments(ctx context.Context, actor *models.User, email string, pagination utils.PaginationParams) ([]models.Payment, int64, error) {
	if email == "" {
		email = actor.Email
	}
	if actor.Role != models.RoleAdmin && actor.Email != email {
		return nil, 0, ErrForbidden
	}

	payments, total, err := s.paymentRepo.ListByPayer(ctx, email, pagination)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, total, nil
}

func (s *PaymentService) confirm(ctx context.Context, payment *models.Payment, reference string) (*models.Payment, error) {
	outcome, err := s.gateway.Confirm(ctx, gateway.Callback{
		TransactionID: payment.TransactionID,
		Reference:     reference,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
	})
	if err != nil {
		if errors.Is(err, gateway.ErrUnverified) {
			logging.Logger.WithFields(logrus.Fields{
				"transaction_id": payment.TransactionID,
				"error":          err,
			}).Warn("rejected unverifiable payment confirmation")
			return nil, fmt.Errorf("%w: %v", ErrPaymentUnverified, err)
		}
		return nil, s.translateGateway(err)
	}

	completed, err := s.paymentRepo.Complete(ctx, payment.TransactionID, models.PaymentSuccess, outcome.Reference)
	if err != nil {
		if errors.Is(err, repository.ErrPreconditionFailed) {
			// Another confirmation won the race; it did the crediting.
			current, findErr := s.paymentRepo.FindByTransactionID(ctx, payment.TransactionID)
			if findErr == nil && current.Status == models.PaymentSuccess {
				return current, nil
			}
			return nil, ErrPaymentCompleted
		}
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to complete payment: %w", err)
	}

	logging.Logger.WithFields(logrus.Fields{
		"transaction_id": completed.TransactionID,
		"payer":          completed.PayerEmail,
		"coins":          completed.Coins,
	}).Info("payment completed")
	return completed, nil
}

func (s *PaymentService) markFailed(ctx context.Context, transactionID string, cause error) {
	logging.Logger.WithFields(logrus.Fields{
		"transaction_id": transactionID,
		"error":          cause,
	}).Warn("payment initiation failed")

	if _, err := s.paymentRepo.Complete(ctx, transactionID, models.PaymentFailed, ""); err != nil {
		logging.Logger.WithError(err).Error("failed to mark payment as failed")
	}
}

func (s *PaymentService) translateGateway(err error) error {
	switch {
	case errors.Is(err, gateway.ErrNotConfigured):
		return ErrGatewayNotConfigured
	case errors.Is(err, gateway.ErrRejected), errors.Is(err, gateway.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	return fmt.Errorf("payment gateway call failed: %w", err)
}
