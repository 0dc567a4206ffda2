package repository

import (
	"context"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/database"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/utils"
	"gorm.io/gorm"
)

// GormPaymentRepository is a GORM implementation of PaymentRepository
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create stores a payment row
func (r *GormPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return translate(r.db.WithContext(ctx).Create(payment).Error)
}

// FindByTransactionID finds a payment by its gateway transaction id
func (r *GormPaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&payment).Error; err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

// ListByPayer lists a payer's payments newest first
func (r *GormPaymentRepository) ListByPayer(ctx context.Context, email string, pagination utils.PaginationParams) ([]models.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("payer_email = ?", email).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	payments := []models.Payment{}
	if err := query.Order("created_at DESC").
		Scopes(database.Paginate(pagination)).
		Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// Complete moves a pending payment to status, crediting the payer on success
func (r *GormPaymentRepository) Complete(ctx context.Context, transactionID string, status models.PaymentStatus, gatewayRef string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Payment{}).
			Where("transaction_id = ? AND status = ?", transactionID, models.PaymentPending).
			Updates(map[string]interface{}{
				"status":      status,
				"gateway_ref": gatewayRef,
			})
		if res.Error != nil {
			return res.Error
		}

		if err := tx.Where("transaction_id = ?", transactionID).First(&payment).Error; err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return ErrPreconditionFailed
		}

		if status != models.PaymentSuccess || payment.Coins <= 0 {
			return nil
		}
		return credit(tx, payment.PayerEmail, payment.Coins)
	})
	if err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}
