package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names shared with the document-store deployment.
const (
	CollectionUsers       = "users"
	CollectionTasks       = "tasks"
	CollectionSubmissions = "submissions"
	CollectionPayments    = "payment"
	CollectionComments    = "comments"
	CollectionReviews     = "reviews"
)

type mongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoRepositories wires every repository to one MongoDB database. Writes
// that span collections run in a session transaction, which requires a replica
// set or sharded cluster.
func NewMongoRepositories(client *mongo.Client, db *mongo.Database) Repositories {
	store := &mongoStore{client: client, db: db}
	return Repositories{
		Users:       &MongoUserRepository{store: store, coll: db.Collection(CollectionUsers)},
		Tasks:       &MongoTaskRepository{store: store, coll: db.Collection(CollectionTasks)},
		Submissions: &MongoSubmissionRepository{store: store, coll: db.Collection(CollectionSubmissions)},
		Payments:    &MongoPaymentRepository{store: store, coll: db.Collection(CollectionPayments)},
		Comments:    &MongoCommentRepository{coll: db.Collection(CollectionComments)},
		Reviews:     &MongoReviewRepository{coll: db.Collection(CollectionReviews)},
	}
}

func (s *mongoStore) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// credit adds amount to the balance of the user with email.
func (s *mongoStore) credit(ctx context.Context, email string, amount int64) error {
	res, err := s.db.Collection(CollectionUsers).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$inc": bson.M{"coins": amount},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// translateMongo maps driver errors onto the package sentinels.
func translateMongo(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrConflict
	}
	return err
}

func findOptions(p utils.PaginationParams, sortField string) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: sortField, Value: -1}})
	if p.Limit > 0 {
		opts.SetSkip(int64(p.Offset)).SetLimit(int64(p.Limit))
	}
	return opts
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func findPage[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, p utils.PaginationParams, sortField string) ([]T, int64, error) {
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items, err := findAll[T](ctx, coll, filter, findOptions(p, sortField))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
