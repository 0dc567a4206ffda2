package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

type Task struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	Title          string    `gorm:"type:varchar(255);not null" bson:"title" json:"title"`
	Detail         string    `gorm:"type:text" bson:"detail" json:"detail"`
	Quantity       int64     `gorm:"not null" bson:"quantity" json:"quantity"`
	PayableAmount  int64     `gorm:"not null" bson:"payable_amount" json:"payable_amount"`
	CompletionDate string    `gorm:"type:varchar(32)" bson:"completion_date" json:"completion_date"`
	ImageURL       string    `gorm:"type:text" bson:"image_url" json:"image_url"`
	CreatorEmail   string    `gorm:"type:varchar(255);index;not null" bson:"creator_email" json:"creator_email"`
	CreatorName    string    `gorm:"type:varchar(255)" bson:"creator_name" json:"creator_name"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// Refund is the coin amount returned to the creator when the task is withdrawn.
// ok is false when a field is negative or the product overflows an int64.
func (t Task) Refund() (refund int64, ok bool) {
	if t.Quantity < 0 || t.PayableAmount < 0 {
		return 0, false
	}
	if t.Quantity != 0 && t.PayableAmount > math.MaxInt64/t.Quantity {
		return 0, false
	}
	return t.Quantity * t.PayableAmount, true
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	newID(&t.ID)
	return nil
}
