package services

import "errors"

var (
	// ErrValidation marks bad client input; wrapped errors carry the detail.
	ErrValidation = errors.New("invalid input")
	// ErrForbidden is returned when the caller may not act on the resource.
	ErrForbidden = errors.New("not allowed to perform this action")

	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrUserNotFound      = errors.New("user not found")
	ErrAdminSelfAssign   = errors.New("the Admin role cannot be self-assigned")
	ErrInsufficientCoins = errors.New("insufficient coins")

	// ErrAuthenticationRequired is returned when an anonymous caller touches an existing account.
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrIssuerNotConfigured    = errors.New("token issuing is not configured")
	ErrInvalidIssuer          = errors.New("identity provider secret is missing or wrong")

	ErrTaskNotFound = errors.New("task not found")

	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadySubmitted   = errors.New("worker already submitted for this task")
	ErrOwnTask            = errors.New("task creators cannot submit to their own task")
	ErrInvalidTransition  = errors.New("submission is no longer pending")

	ErrGatewayNotConfigured = errors.New("payment gateway is not configured")
	ErrPaymentUnverified    = errors.New("payment could not be verified")
	ErrPaymentFailed        = errors.New("payment gateway error")
	ErrPaymentCompleted     = errors.New("payment is already completed")

	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoValidDraft         = errors.New("AI did not return a usable task draft")
)
