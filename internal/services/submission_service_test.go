package services

import (
	"context"
	"testing"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SubmissionServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	repos  repository.Repositories
	svc    *SubmissionService
	buyer  *models.User
	worker *models.User
	other  *models.User
	task   *models.Task
}

func (s *SubmissionServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = newTestRepositories(s.T())
	s.svc = NewSubmissionService(s.repos.Submissions, s.repos.Tasks)

	s.buyer = createUser(s.T(), s.repos, "Alice", "alice@x.com", models.RoleBuyer)
	s.worker = createUser(s.T(), s.repos, "Bob", "bob@x.com", models.RoleWorker)
	s.other = createUser(s.T(), s.repos, "Dan", "dan@x.com", models.RoleWorker)

	tasks := NewTaskService(s.repos.Tasks, nil)
	task, err := tasks.CreateTask(s.ctx, s.buyer, CreateTaskInput{Title: "Follow page", Detail: "Follow and screenshot", Quantity: 5, PayableAmount: 4})
	s.Require().NoError(err)
	s.task = task
}

func (s *SubmissionServiceTestSuite) submit() *models.Submission {
	submission, err := s.svc.CreateSubmission(s.ctx, s.worker, CreateSubmissionInput{TaskID: s.task.ID, SubmissionDetails: "done"})
	s.Require().NoError(err)
	return submission
}

func (s *SubmissionServiceTestSuite) TestCreate_DenormalizesStoredTask() {
	submission := s.submit()

	assert.Equal(s.T(), s.task.ID, submission.TaskID)
	assert.Equal(s.T(), "Follow page", submission.TaskTitle)
	assert.Equal(s.T(), int64(4), submission.PayableAmount)
	assert.Equal(s.T(), "alice@x.com", submission.CreatorEmail)
	assert.Equal(s.T(), "Alice", submission.CreatorName)
	assert.Equal(s.T(), "bob@x.com", submission.WorkerEmail)
	assert.Equal(s.T(), models.SubmissionPending, submission.Status)
}

func (s *SubmissionServiceTestSuite) TestCreate_Rejections() {
	s.submit()

	_, err := s.svc.CreateSubmission(s.ctx, s.worker, CreateSubmissionInput{TaskID: s.task.ID})
	assert.ErrorIs(s.T(), err, ErrAlreadySubmitted)

	_, err = s.svc.CreateSubmission(s.ctx, s.buyer, CreateSubmissionInput{TaskID: s.task.ID})
	assert.ErrorIs(s.T(), err, ErrOwnTask)

	_, err = s.svc.CreateSubmission(s.ctx, s.worker, CreateSubmissionInput{TaskID: "missing"})
	assert.ErrorIs(s.T(), err, ErrTaskNotFound)

	_, err = s.svc.CreateSubmission(s.ctx, s.worker, CreateSubmissionInput{})
	assert.ErrorIs(s.T(), err, ErrValidation)
}

func (s *SubmissionServiceTestSuite) TestExists() {
	exists, err := s.svc.Exists(s.ctx, s.task.ID, "bob@x.com")
	s.Require().NoError(err)
	assert.False(s.T(), exists)

	s.submit()

	exists, err = s.svc.Exists(s.ctx, s.task.ID, "bob@x.com")
	s.Require().NoError(err)
	assert.True(s.T(), exists)

	exists, err = s.svc.Exists(s.ctx, s.task.ID, "dan@x.com")
	s.Require().NoError(err)
	assert.False(s.T(), exists)
}

func (s *SubmissionServiceTestSuite) TestApprove_CreditsWorkerOnce() {
	submission := s.submit()
	approved := models.SubmissionApproved

	_, err := s.svc.UpdateSubmission(s.ctx, s.worker, submission.ID, UpdateSubmissionInput{Status: &approved})
	assert.ErrorIs(s.T(), err, ErrForbidden, "workers cannot approve their own work")

	updated, err := s.svc.UpdateSubmission(s.ctx, s.buyer, submission.ID, UpdateSubmissionInput{Status: &approved})
	s.Require().NoError(err)
	assert.Equal(s.T(), models.SubmissionApproved, updated.Status)

	_, err = s.svc.UpdateSubmission(s.ctx, s.buyer, submission.ID, UpdateSubmissionInput{Status: &approved})
	assert.ErrorIs(s.T(), err, ErrInvalidTransition)

	assert.Equal(s.T(), int64(4), coinsOf(s.T(), s.repos, "bob@x.com"))
}

func (s *SubmissionServiceTestSuite) TestUpdate_Validation() {
	submission := s.submit()
	pending := models.SubmissionPending
	link := "https://x.com/proof"

	_, err := s.svc.UpdateSubmission(s.ctx, s.buyer, submission.ID, UpdateSubmissionInput{Status: &pending})
	assert.ErrorIs(s.T(), err, ErrValidation)

	_, err = s.svc.UpdateSubmission(s.ctx, s.buyer, submission.ID, UpdateSubmissionInput{})
	assert.ErrorIs(s.T(), err, ErrValidation)

	approved := models.SubmissionApproved
	_, err = s.svc.UpdateSubmission(s.ctx, s.buyer, submission.ID, UpdateSubmissionInput{Status: &approved, Link: &link})
	assert.ErrorIs(s.T(), err, ErrValidation)

	_, err = s.svc.UpdateSubmission(s.ctx, s.buyer, "missing", UpdateSubmissionInput{Status: &approved})
	assert.ErrorIs(s.T(), err, ErrSubmissionNotFound)
}

func (s *SubmissionServiceTestSuite) TestUpdateLink() {
	submission := s.submit()
	link := "https://x.com/proof"

	_, err := s.svc.UpdateSubmission(s.ctx, s.other, submission.ID, UpdateSubmissionInput{Link: &link})
	assert.ErrorIs(s.T(), err, ErrForbidden)

	updated, err := s.svc.UpdateSubmission(s.ctx, s.worker, submission.ID, UpdateSubmissionInput{Link: &link})
	s.Require().NoError(err)
	assert.Equal(s.T(), link, updated.Link)

	rejected := models.SubmissionRejected
	_, err = s.svc.UpdateSubmission(s.ctx, s.buyer, submission.ID, UpdateSubmissionInput{Status: &rejected})
	s.Require().NoError(err)

	_, err = s.svc.UpdateSubmission(s.ctx, s.worker, submission.ID, UpdateSubmissionInput{Link: &link})
	assert.ErrorIs(s.T(), err, ErrInvalidTransition)
	assert.Zero(s.T(), coinsOf(s.T(), s.repos, "bob@x.com"))
}

func (s *SubmissionServiceTestSuite) TestList_RestrictedToParticipants() {
	s.submit()

	list, total, err := s.svc.ListSubmissions(s.ctx, s.buyer, ListSubmissionsInput{})
	s.Require().NoError(err)
	assert.Equal(s.T(), int64(1), total)
	assert.Len(s.T(), list, 1)

	_, total, err = s.svc.ListSubmissions(s.ctx, s.other, ListSubmissionsInput{WorkerEmail: "bob@x.com"})
	s.Require().NoError(err)
	assert.Zero(s.T(), total)

	_, total, err = s.svc.ListApproved(s.ctx, s.worker, "", paginationAll)
	s.Require().NoError(err)
	assert.Zero(s.T(), total)
}

func TestSubmissionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubmissionServiceTestSuite))
}
