package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/constants"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/database"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/gateway"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/repository"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/services"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testClientURL      = "http://client.test"
	testIdentitySecret = "idp-secret"
)

// stubGateway is a hosted gateway that accepts callbacks whose val_id is
// "VALID-" followed by the transaction id.
type stubGateway struct{}

func (stubGateway) Kind() string { return gateway.KindHosted }

func (stubGateway) Initiate(_ context.Context, charge gateway.Charge) (*gateway.Checkout, error) {
	return &gateway.Checkout{RedirectURL: "https://pay.test/checkout/" + charge.TransactionID}, nil
}

func (stubGateway) Confirm(_ context.Context, cb gateway.Callback) (*gateway.Outcome, error) {
	if cb.Reference != "VALID-"+cb.TransactionID {
		return nil, fmt.Errorf("%w: bad val_id", gateway.ErrUnverified)
	}
	return &gateway.Outcome{TransactionID: cb.TransactionID, Reference: "bank-1"}, nil
}

// RouterTestSuite drives the full router against an in-memory store.
type RouterTestSuite struct {
	suite.Suite
	db     *gorm.DB
	repos  repository.Repositories
	auth   *services.AuthService
	router *gin.Engine
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	var err error
	s.db, err = gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	s.Require().NoError(err)
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(database.Migrate(s.db))

	s.repos = repository.NewGormRepositories(s.db)
	s.auth = services.NewAuthService("test-secret", time.Hour).WithIssuerSecret(testIdentitySecret)
	s.router = newTestRouter(s.auth, s.repos)
}

func (s *RouterTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func newTestRouter(auth *services.AuthService, repos repository.Repositories) *gin.Engine {
	userService := services.NewUserService(repos.Users)
	return NewRouter(Services{
		Auth:        auth,
		Users:       userService,
		Tasks:       services.NewTaskService(repos.Tasks, nil),
		Submissions: services.NewSubmissionService(repos.Submissions, repos.Tasks),
		Payments:    services.NewPaymentService(repos.Payments, stubGateway{}, "USD", 10),
		Comments:    services.NewCommentService(repos.Comments, repos.Reviews),
	}, RouterOptions{
		CORSOrigins:  []string{testClientURL},
		ClientURL:    testClientURL,
		SessionStore: cookie.NewStore([]byte("session-secret")),
	})
}

// do sends a JSON request authenticated as email; an empty email sends no token.
func (s *RouterTestSuite) do(method, path, email string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if email != "" {
		token, err := s.auth.IssueToken(email, "")
		s.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// issueToken calls /jwt the way the identity provider does, with secret in
// the identity header when it is non-empty.
func (s *RouterTestSuite) issueToken(secret string, body interface{}) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, "/jwt", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(constants.HeaderIdentitySecret, secret)
	}
	return s.serve(req)
}

func (s *RouterTestSuite) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) createUser(name, email string, role models.Role) *models.User {
	user := &models.User{Name: name, Email: email, Role: role}
	_, err := s.repos.Users.Upsert(context.Background(), user)
	s.Require().NoError(err)
	return user
}

func (s *RouterTestSuite) coinsOf(email string) int64 {
	user, err := s.repos.Users.FindByEmail(context.Background(), email)
	s.Require().NoError(err)
	return user.Coins
}

func (s *RouterTestSuite) decode(w *httptest.ResponseRecorder, out interface{}) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (s *RouterTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func newRequestWithCookies(method, path string, cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// jsonBody is shorthand for JSON request bodies in tests.
type jsonBody = map[string]interface{}
