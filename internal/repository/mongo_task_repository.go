package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTaskRepository is a MongoDB implementation of TaskRepository
type MongoTaskRepository struct {
	store *mongoStore
	coll  *mongo.Collection
}

// Create creates a new task
func (r *MongoTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = models.NewID()
	}
	now := time.Now()
	task.CreatedAt, task.UpdatedAt = now, now

	_, err := r.coll.InsertOne(ctx, task)
	return translateMongo(err)
}

// FindByID finds a task by ID
func (r *MongoTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&task); err != nil {
		return nil, translateMongo(err)
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *MongoTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error) {
	query := bson.M{}
	if filter.CreatorEmail != "" {
		query["creator_email"] = filter.CreatorEmail
	}
	return findPage[models.Task](ctx, r.coll, query, filter.Pagination, "created_at")
}

// Update applies the non-nil fields of update
func (r *MongoTaskRepository) Update(ctx context.Context, id string, update TaskUpdate) (*models.Task, error) {
	fields := bson.M{"updated_at": time.Now()}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Detail != nil {
		fields["detail"] = *update.Detail
	}
	if update.CompletionDate != nil {
		fields["completion_date"] = *update.CompletionDate
	}
	if update.ImageURL != nil {
		fields["image_url"] = *update.ImageURL
	}

	var task models.Task
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&task)
	if err != nil {
		return nil, translateMongo(err)
	}
	return &task, nil
}

// DeleteWithRefund deletes the task and refunds its creator in one transaction
func (r *MongoTaskRepository) DeleteWithRefund(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	err := r.store.withTransaction(ctx, func(sc mongo.SessionContext) error {
		// FindOneAndDelete lets only one concurrent caller observe the document.
		if err := r.coll.FindOneAndDelete(sc, bson.M{"_id": id}).Decode(&task); err != nil {
			return err
		}
		refund, ok := task.Refund()
		if !ok {
			return fmt.Errorf("%w: task %s", ErrInvalidRefund, task.ID)
		}
		if refund > 0 {
			if err := r.store.credit(sc, task.CreatorEmail, refund); err != nil && !errors.Is(err, ErrAccountNotFound) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translateMongo(err)
	}
	return &task, nil
}
