package dto

import (
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest is the body of POST /create-payment
type CreatePaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// DirectPaymentRequest is the body of POST /payment
type DirectPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
}

// CheckoutResponse points the browser at the hosted checkout page
type CheckoutResponse struct {
	PaymentURL    string `json:"paymentUrl"`
	TransactionID string `json:"transaction_id"`
}

// PaymentResponse is returned once a direct charge has settled
type PaymentResponse struct {
	Success bool           `json:"success"`
	Payment models.Payment `json:"payment"`
}

// PaymentCallbackRequest is what the hosted gateway posts back, as a form or JSON
type PaymentCallbackRequest struct {
	TransactionID string `form:"tran_id" json:"tran_id"`
	ValidationID  string `form:"val_id" json:"val_id"`
	Status        string `form:"status" json:"status"`
}
