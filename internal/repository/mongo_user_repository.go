package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository is a MongoDB implementation of UserRepository
type MongoUserRepository struct {
	store *mongoStore
	coll  *mongo.Collection
}

// Upsert creates the user or overwrites the profile fields of the existing one.
func (r *MongoUserRepository) Upsert(ctx context.Context, user *models.User) (bool, error) {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"name":       user.Name,
			"photo_url":  user.PhotoURL,
			"role":       user.Role,
			"skill":      user.Skill,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"_id":        models.NewID(),
			"coins":      int64(0),
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.Before)

	err := r.coll.FindOneAndUpdate(ctx, bson.M{"email": user.Email}, update, opts).Err()
	created := errors.Is(err, mongo.ErrNoDocuments)
	if err != nil && !created {
		return false, translateMongo(err)
	}

	stored, err := r.FindByEmail(ctx, user.Email)
	if err != nil {
		return false, err
	}
	*user = *stored
	return created, nil
}

// FindByEmail finds a user by email
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByID finds a user by ID
func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translateMongo(err)
	}
	return &user, nil
}

// List retrieves users with filtering and pagination
func (r *MongoUserRepository) List(ctx context.Context, filter UserFilter) ([]models.User, int64, error) {
	query := bson.M{}
	if filter.Role != nil {
		query["role"] = *filter.Role
	}
	return findPage[models.User](ctx, r.coll, query, filter.Pagination, "created_at")
}

// Delete removes a user
func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustCoins adds delta to the balance without letting it drop below zero.
func (r *MongoUserRepository) AdjustCoins(ctx context.Context, email string, delta int64) (*models.User, error) {
	filter := bson.M{"email": email}
	if delta < 0 {
		filter["coins"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"coins": delta},
		"$set": bson.M{"updated_at": time.Now()},
	}

	var user models.User
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, err := r.FindByEmail(ctx, email); err != nil {
			return nil, err
		}
		return nil, ErrInsufficientCoins
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetComment replaces the free-text comment field
func (r *MongoUserRepository) SetComment(ctx context.Context, email, comment string) error {
	return r.set(ctx, email, "comment", comment)
}

// SetRole replaces the user's role
func (r *MongoUserRepository) SetRole(ctx context.Context, email string, role models.Role) error {
	return r.set(ctx, email, "role", role)
}

func (r *MongoUserRepository) set(ctx context.Context, email, field string, value interface{}) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{field: value, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
