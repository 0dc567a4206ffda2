package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/constants"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TaskServiceTestSuite struct {
	suite.Suite
	ctx   context.Context
	repos repository.Repositories
	svc   *TaskService
	buyer *models.User
	other *models.User
	admin *models.User
}

func (s *TaskServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = newTestRepositories(s.T())
	s.svc = NewTaskService(s.repos.Tasks, nil)
	s.buyer = createUser(s.T(), s.repos, "Alice", "alice@x.com", models.RoleBuyer)
	s.other = createUser(s.T(), s.repos, "Carol", "carol@x.com", models.RoleBuyer)
	s.admin = createUser(s.T(), s.repos, "Admin", "admin@x.com", models.RoleAdmin)
}

func (s *TaskServiceTestSuite) newTask() *models.Task {
	task, err := s.svc.CreateTask(s.ctx, s.buyer, CreateTaskInput{Title: "Review app", Quantity: 5, PayableAmount: 2})
	s.Require().NoError(err)
	return task
}

func (s *TaskServiceTestSuite) TestCreateTask_UsesActorAsCreator() {
	task := s.newTask()
	assert.Equal(s.T(), "alice@x.com", task.CreatorEmail)
	assert.Equal(s.T(), "Alice", task.CreatorName)
	assert.NotEmpty(s.T(), task.ID)
}

func (s *TaskServiceTestSuite) TestCreateTask_Validation() {
	_, err := s.svc.CreateTask(s.ctx, s.buyer, CreateTaskInput{Title: " ", Quantity: 1, PayableAmount: 1})
	assert.ErrorIs(s.T(), err, ErrValidation)

	_, err = s.svc.CreateTask(s.ctx, s.buyer, CreateTaskInput{Title: "t", Quantity: 0, PayableAmount: 1})
	assert.ErrorIs(s.T(), err, ErrValidation)

	_, err = s.svc.CreateTask(s.ctx, s.buyer, CreateTaskInput{Title: "t", Quantity: 1, PayableAmount: -3})
	assert.ErrorIs(s.T(), err, ErrValidation)
}

func (s *TaskServiceTestSuite) TestCreateTask_Bounds() {
	task, err := s.svc.CreateTask(s.ctx, s.buyer, CreateTaskInput{
		Title:         "Largest",
		Quantity:      constants.MaxTaskQuantity,
		PayableAmount: constants.MaxPayableAmount,
	})
	s.Require().NoError(err)
	refund, ok := task.Refund()
	assert.True(s.T(), ok)
	assert.Equal(s.T(), int64(constants.MaxTaskQuantity)*constants.MaxPayableAmount, refund)

	_, err = s.svc.CreateTask(s.ctx, s.buyer, CreateTaskInput{Title: "t", Quantity: constants.MaxTaskQuantity + 1, PayableAmount: 1})
	assert.ErrorIs(s.T(), err, ErrValidation)

	_, err = s.svc.CreateTask(s.ctx, s.buyer, CreateTaskInput{Title: "t", Quantity: 1, PayableAmount: constants.MaxPayableAmount + 1})
	assert.ErrorIs(s.T(), err, ErrValidation)

	_, err = s.svc.CreateTask(s.ctx, s.buyer, CreateTaskInput{Title: "t", Quantity: 3_037_000_500, PayableAmount: 3_037_000_500})
	assert.ErrorIs(s.T(), err, ErrValidation)

	_, total, err := s.svc.ListTasks(s.ctx, paginationAll)
	s.Require().NoError(err)
	assert.Equal(s.T(), int64(1), total)
}

func (s *TaskServiceTestSuite) TestListTasksByCreator() {
	task := s.newTask()

	tasks, total, err := s.svc.ListTasksByCreator(s.ctx, s.buyer, "alice@x.com", paginationAll)
	s.Require().NoError(err)
	assert.Equal(s.T(), int64(1), total)
	assert.Equal(s.T(), task.ID, tasks[0].ID)

	_, _, err = s.svc.ListTasksByCreator(s.ctx, s.other, "alice@x.com", paginationAll)
	assert.ErrorIs(s.T(), err, ErrForbidden)

	_, total, err = s.svc.ListTasksByCreator(s.ctx, s.admin, "alice@x.com", paginationAll)
	s.Require().NoError(err)
	assert.Equal(s.T(), int64(1), total)
}

func (s *TaskServiceTestSuite) TestUpdateTask() {
	task := s.newTask()

	title := "Review the new app"
	updated, err := s.svc.UpdateTask(s.ctx, s.buyer, task.ID, UpdateTaskInput{Title: &title})
	s.Require().NoError(err)
	assert.Equal(s.T(), title, updated.Title)

	_, err = s.svc.UpdateTask(s.ctx, s.other, task.ID, UpdateTaskInput{Title: &title})
	assert.ErrorIs(s.T(), err, ErrForbidden)

	_, err = s.svc.UpdateTask(s.ctx, s.buyer, task.ID, UpdateTaskInput{})
	assert.ErrorIs(s.T(), err, ErrValidation)

	empty := ""
	_, err = s.svc.UpdateTask(s.ctx, s.buyer, task.ID, UpdateTaskInput{Title: &empty})
	assert.ErrorIs(s.T(), err, ErrValidation)

	_, err = s.svc.UpdateTask(s.ctx, s.buyer, "missing", UpdateTaskInput{Title: &title})
	assert.ErrorIs(s.T(), err, ErrTaskNotFound)
}

func (s *TaskServiceTestSuite) TestDeleteTask_RefundsExactlyOnce() {
	task := s.newTask()

	_, err := s.svc.DeleteTask(s.ctx, s.other, task.ID)
	assert.ErrorIs(s.T(), err, ErrForbidden)

	_, err = s.svc.DeleteTask(s.ctx, s.buyer, task.ID)
	s.Require().NoError(err)
	assert.Equal(s.T(), int64(10), coinsOf(s.T(), s.repos, "alice@x.com"))

	_, err = s.svc.DeleteTask(s.ctx, s.buyer, task.ID)
	assert.ErrorIs(s.T(), err, ErrTaskNotFound)
	assert.Equal(s.T(), int64(10), coinsOf(s.T(), s.repos, "alice@x.com"))
}

func (s *TaskServiceTestSuite) TestDeleteTask_AdminRefundsCreator() {
	task := s.newTask()

	_, err := s.svc.DeleteTask(s.ctx, s.admin, task.ID)
	s.Require().NoError(err)
	assert.Equal(s.T(), int64(10), coinsOf(s.T(), s.repos, "alice@x.com"))
	assert.Zero(s.T(), coinsOf(s.T(), s.repos, "admin@x.com"))
}

func (s *TaskServiceTestSuite) TestDraftTask_NotConfigured() {
	_, err := s.svc.DraftTask(s.ctx, "get app reviews")
	assert.ErrorIs(s.T(), err, ErrAIServiceNotConfigured)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}

func newFakeOpenAI(t *testing.T, content string) *AIService {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o-mini",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]string{"role": "assistant", "content": content},
				},
			},
		})
	}))
	t.Cleanup(server.Close)
	return NewAIService("sk-test", server.URL)
}

func TestTaskService_DraftTask(t *testing.T) {
	ai := newFakeOpenAI(t, `{"title":"Review our app","detail":"Install and rate it","quantity":20,"payable_amount":3}`)
	svc := NewTaskService(nil, ai)

	draft, err := svc.DraftTask(context.Background(), "I want reviews for my app")
	require.NoError(t, err)
	assert.Equal(t, "Review our app", draft.Title)
	assert.Equal(t, int64(20), draft.Quantity)
	assert.Equal(t, int64(3), draft.PayableAmount)

	_, err = svc.DraftTask(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.DraftTask(context.Background(), strings.Repeat("x", 2001))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTaskService_DraftTaskRejectsUnusableOutput(t *testing.T) {
	svc := NewTaskService(nil, newFakeOpenAI(t, `{"title":"","quantity":0}`))

	_, err := svc.DraftTask(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrAINoValidDraft)
}
