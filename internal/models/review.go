package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is read-only over HTTP; rows are loaded by operators.
type Review struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	WorkerEmail string    `gorm:"type:varchar(255);index" bson:"worker_email" json:"worker_email"`
	Content     string    `gorm:"type:text" bson:"content" json:"content"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	newID(&r.ID)
	return nil
}
