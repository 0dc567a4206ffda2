package repository

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/config"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/database"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMongoRepositories connects to MONGO_TEST_URI, which must point at a
// replica set. Each test gets its own database, dropped afterwards.
func newMongoRepositories(t *testing.T) Repositories {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	cfg := &config.Config{
		MongoURI: uri,
		MongoDB:  "microtask_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
	}
	client, db, err := database.ConnectMongo(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	require.NoError(t, database.EnsureMongoIndexes(ctx, db))
	return NewMongoRepositories(client, db)
}

func TestMongo_UserUpsertAndCoinFloor(t *testing.T) {
	ctx := context.Background()
	repos := newMongoRepositories(t)

	created, err := repos.Users.Upsert(ctx, &models.User{Name: "Alice", Email: "alice@x.com", Role: models.RoleBuyer})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repos.Users.Upsert(ctx, &models.User{Name: "Alice B", Email: "alice@x.com", Role: models.RoleBuyer})
	require.NoError(t, err)
	assert.False(t, created)

	user, err := repos.Users.AdjustCoins(ctx, "alice@x.com", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.Coins)

	_, err = repos.Users.AdjustCoins(ctx, "alice@x.com", -6)
	assert.ErrorIs(t, err, ErrInsufficientCoins)

	_, err = repos.Users.FindByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMongo_DeleteWithRefundCreditsOnce(t *testing.T) {
	ctx := context.Background()
	repos := newMongoRepositories(t)

	_, err := repos.Users.Upsert(ctx, &models.User{Name: "Alice", Email: "alice@x.com", Role: models.RoleBuyer})
	require.NoError(t, err)
	task := &models.Task{Title: "Watch", Quantity: 5, PayableAmount: 2, CreatorEmail: "alice@x.com"}
	require.NoError(t, repos.Tasks.Create(ctx, task))

	_, err = repos.Tasks.DeleteWithRefund(ctx, task.ID)
	require.NoError(t, err)
	_, err = repos.Tasks.DeleteWithRefund(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	user, err := repos.Users.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(10), user.Coins)
}

func TestMongo_SubmissionApprovalCreditsOnce(t *testing.T) {
	ctx := context.Background()
	repos := newMongoRepositories(t)

	_, err := repos.Users.Upsert(ctx, &models.User{Name: "Bob", Email: "bob@x.com", Role: models.RoleWorker})
	require.NoError(t, err)

	submission := &models.Submission{TaskID: "T1", PayableAmount: 3, WorkerEmail: "bob@x.com", CreatorEmail: "alice@x.com"}
	require.NoError(t, repos.Submissions.Create(ctx, submission))
	assert.ErrorIs(t, repos.Submissions.Create(ctx, &models.Submission{TaskID: "T1", WorkerEmail: "bob@x.com"}), ErrConflict)

	_, err = repos.Submissions.Transition(ctx, submission.ID, models.SubmissionApproved)
	require.NoError(t, err)
	_, err = repos.Submissions.Transition(ctx, submission.ID, models.SubmissionApproved)
	assert.ErrorIs(t, err, ErrPreconditionFailed)

	user, err := repos.Users.FindByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.Coins)
}

func TestMongo_PaymentCompleteKeepsDecimalAmount(t *testing.T) {
	ctx := context.Background()
	repos := newMongoRepositories(t)

	_, err := repos.Users.Upsert(ctx, &models.User{Name: "Alice", Email: "alice@x.com", Role: models.RoleBuyer})
	require.NoError(t, err)

	payment := &models.Payment{
		TransactionID: "TX1",
		PayerEmail:    "alice@x.com",
		Amount:        decimal.RequireFromString("12.50"),
		Coins:         125,
		Status:        models.PaymentPending,
	}
	require.NoError(t, repos.Payments.Create(ctx, payment))

	completed, err := repos.Payments.Complete(ctx, "TX1", models.PaymentSuccess, "bank-1")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.5").Equal(completed.Amount))

	_, err = repos.Payments.Complete(ctx, "TX1", models.PaymentSuccess, "bank-1")
	assert.ErrorIs(t, err, ErrPreconditionFailed)

	user, err := repos.Users.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(125), user.Coins)
}
