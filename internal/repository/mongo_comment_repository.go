package repository

import (
	"context"
	"time"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCommentRepository is a MongoDB implementation of CommentRepository
type MongoCommentRepository struct {
	coll *mongo.Collection
}

// Create appends a comment
func (r *MongoCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = models.NewID()
	}
	comment.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, comment)
	return translateMongo(err)
}

// ListByWorker lists comments about a worker newest first
func (r *MongoCommentRepository) ListByWorker(ctx context.Context, workerEmail string) ([]models.Comment, error) {
	return findAll[models.Comment](ctx, r.coll, bson.M{"worker_email": workerEmail},
		findOptions(utils.PaginationParams{}, "created_at"))
}

// MongoReviewRepository is a MongoDB implementation of ReviewRepository
type MongoReviewRepository struct {
	coll *mongo.Collection
}

// List lists every review newest first
func (r *MongoReviewRepository) List(ctx context.Context) ([]models.Review, error) {
	return findAll[models.Review](ctx, r.coll, bson.M{}, findOptions(utils.PaginationParams{}, "created_at"))
}
