package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apierrors "github.com/Ancishan/micro-task-earnning-pf-server/internal/errors"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/logging"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const totalCountHeader = "X-Total-Count"

// respondError maps service errors onto API responses. Anything unrecognised
// is logged and reported as a 500 without leaking the cause.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrAdminSelfAssign):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAuthenticationRequired),
		errors.Is(err, services.ErrInvalidIssuer):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrPaymentUnverified):
		apierrors.RespondWithError(c, http.StatusBadRequest,
			apierrors.NewAPIError(apierrors.ErrCodePaymentUnverified, err.Error()))
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrOwnTask):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrSubmissionNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadySubmitted),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrPaymentCompleted):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInsufficientCoins):
		apierrors.InsufficientCoins(c, err.Error())
	case errors.Is(err, services.ErrPaymentFailed),
		errors.Is(err, services.ErrAINoValidDraft):
		logging.Logger.WithError(err).Warn("Upstream call failed")
		apierrors.BadGateway(c, err.Error())
	case errors.Is(err, services.ErrGatewayNotConfigured),
		errors.Is(err, services.ErrAIServiceNotConfigured),
		errors.Is(err, services.ErrIssuerNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())
	default:
		logging.Logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).WithError(err).Error("Request failed")
		apierrors.InternalError(c, "Internal server error")
	}
}

func setTotalCount(c *gin.Context, total int64) {
	c.Header(totalCountHeader, strconv.FormatInt(total, 10))
}
