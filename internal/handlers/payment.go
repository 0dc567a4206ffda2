package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/dto"
	apierrors "github.com/Ancishan/micro-task-earnning-pf-server/internal/errors"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/gateway"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/logging"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/services"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PaymentHandler sells coins through the configured payment gateway.
type PaymentHandler struct {
	paymentService *services.PaymentService
	clientURL      string
}

// NewPaymentHandler creates a new PaymentHandler. clientURL is the frontend
// origin that gateway callbacks redirect back to.
func NewPaymentHandler(paymentService *services.PaymentService, clientURL string) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		clientURL:      clientURL,
	}
}

// CreatePayment starts a hosted checkout and returns the page to redirect to.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	if h.paymentService.GatewayKind() == gateway.KindDirect {
		apierrors.BadRequest(c, "Card payments are charged directly; use POST /payment")
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.paymentService.Purchase(c.Request.Context(), actor, services.PurchaseInput{Amount: req.Amount})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{
		PaymentURL:    result.RedirectURL,
		TransactionID: result.Payment.TransactionID,
	})
}

// ChargePayment charges a payment method synchronously and credits the coins.
func (h *PaymentHandler) ChargePayment(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	if h.paymentService.GatewayKind() == gateway.KindHosted {
		apierrors.BadRequest(c, "Payments go through hosted checkout; use POST /create-payment")
		return
	}

	var req dto.DirectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.paymentService.Purchase(c.Request.Context(), actor, services.PurchaseInput{
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaymentResponse{Success: true, Payment: *result.Payment})
}

// PaymentSucceeded handles the gateway's success callback. The callback is
// only trusted after the gateway confirms it.
func (h *PaymentHandler) PaymentSucceeded(c *gin.Context) {
	var req dto.PaymentCallbackRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid callback payload")
		return
	}

	payment, err := h.paymentService.CompleteCallback(c.Request.Context(), services.CallbackInput{
		TransactionID: req.TransactionID,
		ValidationID:  req.ValidationID,
	})
	if err != nil {
		if errors.Is(err, services.ErrPaymentUnverified) {
			logging.Logger.WithFields(logrus.Fields{
				"transaction_id": req.TransactionID,
				"client_ip":      c.ClientIP(),
			}).Warn("Unverifiable payment callback")
		}
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, h.clientURL+"/payment/success/"+url.PathEscape(payment.TransactionID))
}

// PaymentAborted handles the gateway's fail and cancel callbacks. They only
// send the browser back; the payment stays pending.
func (h *PaymentHandler) PaymentAborted(c *gin.Context) {
	var req dto.PaymentCallbackRequest
	_ = c.ShouldBind(&req)
	logging.Logger.WithFields(logrus.Fields{
		"transaction_id": req.TransactionID,
		"path":           c.FullPath(),
	}).Info("Payment not completed")

	c.Redirect(http.StatusSeeOther, h.clientURL+"/payment/fail")
}

// ListPayments lists the payments of ?email=, or of the caller.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	payments, total, err := h.paymentService.ListPayments(c.Request.Context(), actor, c.Query("email"), utils.GetPaginationParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	setTotalCount(c, total)
	c.JSON(http.StatusOK, payments)
}
