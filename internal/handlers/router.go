package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/config"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/constants"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/logging"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/middleware"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	Auth        *services.AuthService
	Users       *services.UserService
	Tasks       *services.TaskService
	Submissions *services.SubmissionService
	Payments    *services.PaymentService
	Comments    *services.CommentService
}

// RouterOptions configures the transport concerns of the router.
type RouterOptions struct {
	Production   bool
	CORSOrigins  []string
	ClientURL    string
	// SessionStore is required; see NewSessionStore.
	SessionStore sessions.Store
}

type accessLevel int

const (
	levelPublic accessLevel = iota
	// levelIdentified reads a token when one is sent but does not require it.
	levelIdentified
	// levelAuthenticated needs a valid token only.
	levelAuthenticated
	// levelMember also needs a stored account; roles, when set, restrict it further.
	levelMember
)

type access struct {
	level accessLevel
	roles []models.Role
}

var (
	public        = access{level: levelPublic}
	identified    = access{level: levelIdentified}
	authenticated = access{level: levelAuthenticated}
	member        = access{level: levelMember}
)

func restrictedTo(roles ...models.Role) access {
	return access{level: levelMember, roles: roles}
}

type route struct {
	method  string
	path    string
	access  access
	handler gin.HandlerFunc
}

// NewSessionStore returns a Redis-backed store when REDIS_HOST is set and a
// signed cookie store otherwise.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.RedisHost == "" {
		return cookie.NewStore([]byte(cfg.SessionSecret)), nil
	}

	store, err := redisStore.NewStore(
		10,
		"tcp",
		cfg.RedisHost+":"+cfg.RedisPort,
		"",
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis session store: %w", err)
	}
	return store, nil
}

// NewRouter wires every route behind its access policy.
func NewRouter(svc Services, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger())

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{totalCountHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	store := opts.SessionStore
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(constants.TokenLifetime.Seconds()),
		HttpOnly: true,
		Secure:   opts.Production,
		SameSite: http.SameSiteStrictMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	authHandler := NewAuthHandler(svc.Auth, opts.Production)
	userHandler := NewUserHandler(svc.Users)
	taskHandler := NewTaskHandler(svc.Tasks)
	submissionHandler := NewSubmissionHandler(svc.Submissions)
	paymentHandler := NewPaymentHandler(svc.Payments, opts.ClientURL)
	commentHandler := NewCommentHandler(svc.Comments)

	buyers := restrictedTo(models.RoleBuyer, models.RoleAdmin)
	workers := restrictedTo(models.RoleWorker)
	admins := restrictedTo(models.RoleAdmin)

	routes := []route{
		{http.MethodGet, "/health", public, health},
		{http.MethodPost, "/jwt", public, authHandler.IssueToken},
		{http.MethodGet, "/logout", public, authHandler.Logout},

		{http.MethodPost, "/users", identified, userHandler.UpsertUser},
		{http.MethodGet, "/users", authenticated, userHandler.GetUser},
		{http.MethodGet, "/users/role/:email", authenticated, userHandler.GetRole},
		{http.MethodGet, "/users/workers", authenticated, userHandler.ListWorkers},
		{http.MethodPut, "/users/update-coins", member, userHandler.AdjustCoins},
		{http.MethodPut, "/users/update-comment", member, userHandler.SetComment},
		{http.MethodGet, "/admin/users", admins, userHandler.ListUsers},
		{http.MethodDelete, "/admin/users/:id", admins, userHandler.DeleteUser},

		{http.MethodGet, "/tasks", authenticated, taskHandler.ListTasks},
		{http.MethodGet, "/view/:id", authenticated, taskHandler.GetTask},
		{http.MethodGet, "/tasks/:createdBy", buyers, taskHandler.ListTasksByCreator},
		{http.MethodPost, "/tasks", buyers, taskHandler.CreateTask},
		{http.MethodPost, "/tasks/draft", buyers, taskHandler.DraftTask},
		{http.MethodPut, "/tasks/:id", buyers, taskHandler.UpdateTask},
		{http.MethodDelete, "/tasks/:id", buyers, taskHandler.DeleteTask},

		{http.MethodPost, "/submissions", workers, submissionHandler.CreateSubmission},
		{http.MethodGet, "/submissions", member, submissionHandler.ListSubmissions},
		{http.MethodGet, "/submissions/exists", restrictedTo(models.RoleWorker, models.RoleAdmin), submissionHandler.Exists},
		{http.MethodGet, "/submissions/approved", member, submissionHandler.ListApproved},
		{http.MethodPut, "/submissions/:id", restrictedTo(models.RoleBuyer, models.RoleWorker, models.RoleAdmin), submissionHandler.UpdateSubmission},

		{http.MethodPost, "/create-payment", buyers, paymentHandler.CreatePayment},
		{http.MethodPost, "/payment", buyers, paymentHandler.ChargePayment},
		{http.MethodPost, "/success-payment", public, paymentHandler.PaymentSucceeded},
		{http.MethodPost, "/fail", public, paymentHandler.PaymentAborted},
		{http.MethodPost, "/cancel", public, paymentHandler.PaymentAborted},
		{http.MethodGet, "/payments", member, paymentHandler.ListPayments},

		{http.MethodPost, "/comments", member, commentHandler.AddComment},
		{http.MethodGet, "/comments/:workerEmail", authenticated, commentHandler.ListComments},
		{http.MethodGet, "/reviews", public, commentHandler.ListReviews},
	}

	requireAuth := middleware.RequireAuth(svc.Auth)
	optionalAuth := middleware.OptionalAuth(svc.Auth)
	for _, rt := range routes {
		chain := make([]gin.HandlerFunc, 0, 3)
		switch {
		case rt.access.level >= levelAuthenticated:
			chain = append(chain, requireAuth)
		case rt.access.level == levelIdentified:
			chain = append(chain, optionalAuth)
		}
		if rt.access.level >= levelMember {
			chain = append(chain, middleware.RequireUser(svc.Users, rt.access.roles...))
		}
		chain = append(chain, rt.handler)
		r.Handle(rt.method, rt.path, chain...)
	}

	return r
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Microtask earning server is running",
	})
}
