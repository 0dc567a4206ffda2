package repository

import (
	"context"
	"time"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPaymentRepository is a MongoDB implementation of PaymentRepository
type MongoPaymentRepository struct {
	store *mongoStore
	coll  *mongo.Collection
}

// Create stores a payment row
func (r *MongoPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = models.NewID()
	}
	now := time.Now()
	payment.CreatedAt, payment.UpdatedAt = now, now

	_, err := r.coll.InsertOne(ctx, payment)
	return translateMongo(err)
}

// FindByTransactionID finds a payment by its gateway transaction id
func (r *MongoPaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.coll.FindOne(ctx, bson.M{"transaction_id": transactionID}).Decode(&payment); err != nil {
		return nil, translateMongo(err)
	}
	return &payment, nil
}

// ListByPayer lists a payer's payments newest first
func (r *MongoPaymentRepository) ListByPayer(ctx context.Context, email string, pagination utils.PaginationParams) ([]models.Payment, int64, error) {
	return findPage[models.Payment](ctx, r.coll, bson.M{"payer_email": email}, pagination, "created_at")
}

// Complete moves a pending payment to status, crediting the payer on success
func (r *MongoPaymentRepository) Complete(ctx context.Context, transactionID string, status models.PaymentStatus, gatewayRef string) (*models.Payment, error) {
	var payment models.Payment
	err := r.store.withTransaction(ctx, func(sc mongo.SessionContext) error {
		err := r.coll.FindOneAndUpdate(sc,
			bson.M{"transaction_id": transactionID, "status": models.PaymentPending},
			bson.M{"$set": bson.M{"status": status, "gateway_ref": gatewayRef, "updated_at": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&payment)
		if err == mongo.ErrNoDocuments {
			if err := r.coll.FindOne(sc, bson.M{"transaction_id": transactionID}).Decode(&payment); err != nil {
				return err
			}
			return ErrPreconditionFailed
		}
		if err != nil {
			return err
		}

		if status != models.PaymentSuccess || payment.Coins <= 0 {
			return nil
		}
		return r.store.credit(sc, payment.PayerEmail, payment.Coins)
	})
	if err != nil {
		return nil, translateMongo(err)
	}
	return &payment, nil
}
