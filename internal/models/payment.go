package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentSuccess PaymentStatus = "Success"
	PaymentFailed  PaymentStatus = "Failed"
)

type Payment struct {
	ID            string          `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	TransactionID string          `gorm:"type:varchar(64);uniqueIndex;not null" bson:"transaction_id" json:"transaction_id"`
	PayerName     string          `gorm:"type:varchar(255)" bson:"payer_name" json:"payer_name"`
	PayerEmail    string          `gorm:"type:varchar(255);index;not null" bson:"payer_email" json:"payer_email"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" bson:"amount" json:"amount"`
	Currency      string          `gorm:"type:varchar(8)" bson:"currency" json:"currency"`
	Coins         int64           `gorm:"not null" bson:"coins" json:"coins"`
	Gateway       string          `gorm:"type:varchar(32)" bson:"gateway" json:"gateway"`
	GatewayRef    string          `gorm:"type:varchar(128)" bson:"gateway_ref,omitempty" json:"gateway_ref,omitempty"`
	Status        PaymentStatus   `gorm:"type:varchar(20);not null;index" bson:"status" json:"status"`
	CreatedAt     time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `bson:"updated_at" json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	newID(&p.ID)
	return nil
}
