package repository

import (
	"context"
	"time"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSubmissionRepository is a MongoDB implementation of SubmissionRepository
type MongoSubmissionRepository struct {
	store *mongoStore
	coll  *mongo.Collection
}

// Create stores a submission; the unique (task_id, worker_email) index rejects
// a second one.
func (r *MongoSubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	if submission.ID == "" {
		submission.ID = models.NewID()
	}
	if submission.Status == "" {
		submission.Status = models.SubmissionPending
	}
	now := time.Now()
	submission.SubmittedAt, submission.UpdatedAt = now, now

	_, err := r.coll.InsertOne(ctx, submission)
	return translateMongo(err)
}

// FindByID finds a submission by ID
func (r *MongoSubmissionRepository) FindByID(ctx context.Context, id string) (*models.Submission, error) {
	var submission models.Submission
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&submission); err != nil {
		return nil, translateMongo(err)
	}
	return &submission, nil
}

// Exists reports whether the worker already submitted for the task
func (r *MongoSubmissionRepository) Exists(ctx context.Context, taskID, workerEmail string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx,
		bson.M{"task_id": taskID, "worker_email": workerEmail},
		options.Count().SetLimit(1),
	)
	return count > 0, err
}

// List retrieves submissions with filtering and pagination
func (r *MongoSubmissionRepository) List(ctx context.Context, filter SubmissionFilter) ([]models.Submission, int64, error) {
	query := bson.M{}
	if filter.WorkerEmail != "" {
		query["worker_email"] = filter.WorkerEmail
	}
	if filter.CreatorEmail != "" {
		query["creator_email"] = filter.CreatorEmail
	}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}
	if filter.Participant != "" {
		query["$or"] = bson.A{
			bson.M{"worker_email": filter.Participant},
			bson.M{"creator_email": filter.Participant},
		}
	}
	return findPage[models.Submission](ctx, r.coll, query, filter.Pagination, "submitted_at")
}

// Transition moves a pending submission to status, crediting the worker on approval
func (r *MongoSubmissionRepository) Transition(ctx context.Context, id string, status models.SubmissionStatus) (*models.Submission, error) {
	var submission models.Submission
	err := r.store.withTransaction(ctx, func(sc mongo.SessionContext) error {
		err := r.coll.FindOneAndUpdate(sc,
			bson.M{"_id": id, "status": models.SubmissionPending},
			bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&submission)
		if err == mongo.ErrNoDocuments {
			if err := r.coll.FindOne(sc, bson.M{"_id": id}).Decode(&submission); err != nil {
				return err
			}
			return ErrPreconditionFailed
		}
		if err != nil {
			return err
		}

		if status != models.SubmissionApproved || submission.PayableAmount <= 0 {
			return nil
		}
		return r.store.credit(sc, submission.WorkerEmail, submission.PayableAmount)
	})
	if err != nil {
		return nil, translateMongo(err)
	}
	return &submission, nil
}

// UpdateLink replaces the link of a pending submission
func (r *MongoSubmissionRepository) UpdateLink(ctx context.Context, id, link string) (*models.Submission, error) {
	var submission models.Submission
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.SubmissionPending},
		bson.M{"$set": bson.M{"link": link, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&submission)
	if err == mongo.ErrNoDocuments {
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrPreconditionFailed
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}
