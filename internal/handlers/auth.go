package handlers

import (
	"net/http"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/constants"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/dto"
	apierrors "github.com/Ancishan/micro-task-earnning-pf-server/internal/errors"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/logging"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AuthHandler issues and clears the session token.
type AuthHandler struct {
	authService *services.AuthService
	production  bool
}

// NewAuthHandler creates a new AuthHandler. In production the cookie is sent
// cross-site over HTTPS only.
func NewAuthHandler(authService *services.AuthService, production bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		production:  production,
	}
}

// IssueToken signs a token for the posted identity and stores it in the session
// cookie. The identity provider vouches for the email with its shared secret.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	if err := h.authService.VerifyIssuer(c.GetHeader(constants.HeaderIdentitySecret)); err != nil {
		respondError(c, err)
		return
	}

	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	token, err := h.authService.IssueToken(req.Email, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyToken, token)
	session.Options(h.cookieOptions(int(constants.TokenLifetime.Seconds())))
	if err := session.Save(); err != nil {
		logging.Logger.WithError(err).Error("Failed to save session")
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Success: true, Token: token})
}

// Logout expires the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(h.cookieOptions(-1))
	if err := session.Save(); err != nil {
		logging.Logger.WithError(err).Error("Failed to clear session")
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, dto.ResultResponse{Success: true})
}

func (h *AuthHandler) cookieOptions(maxAge int) sessions.Options {
	opts := sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if h.production {
		opts.Secure = true
		opts.SameSite = http.SameSiteNoneMode
	}
	return opts
}
