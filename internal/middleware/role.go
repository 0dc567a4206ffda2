package middleware

import (
	"errors"
	"net/http"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/constants"
	apierrors "github.com/Ancishan/micro-task-earnning-pf-server/internal/errors"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/logging"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/services"
	"github.com/gin-gonic/gin"
)

// RequireUser loads the stored account of the authenticated caller and, when
// roles are given, requires its current role to be one of them. It must run
// after RequireAuth. The role is read per request, so role changes apply
// without issuing a new token.
func RequireUser(userService *services.UserService, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := GetEmail(c)
		if !ok {
			apierrors.AbortWithError(c, http.StatusUnauthorized, apierrors.NewAPIError(apierrors.ErrCodeUnauthorized, "Unauthorized access"))
			return
		}

		user, err := userService.GetByEmail(c.Request.Context(), email)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				apierrors.AbortWithError(c, http.StatusForbidden, apierrors.NewAPIError(apierrors.ErrCodeForbidden, "No account is registered for this token"))
				return
			}
			logging.Logger.WithError(err).Error("failed to load authenticated user")
			apierrors.AbortWithError(c, http.StatusInternalServerError, apierrors.NewAPIError(apierrors.ErrCodeInternalError, "Internal server error"))
			return
		}

		if len(roles) > 0 && !hasRole(user.Role, roles) {
			apierrors.AbortWithError(c, http.StatusForbidden, apierrors.NewAPIErrorWithDetails(
				apierrors.ErrCodeInsufficientPermissions,
				"Your role cannot perform this action",
				gin.H{"required": roles, "role": user.Role},
			))
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// CurrentUser retrieves the account loaded by RequireUser
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

func hasRole(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
