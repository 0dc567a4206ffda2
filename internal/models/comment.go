package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	WorkerEmail    string    `gorm:"type:varchar(255);index;not null" bson:"worker_email" json:"worker_email"`
	CommenterName  string    `gorm:"type:varchar(255)" bson:"commenter_name" json:"commenter_name"`
	CommenterPhoto string    `gorm:"type:text" bson:"commenter_photo" json:"commenter_photo"`
	Comment        string    `gorm:"type:text;not null" bson:"comment" json:"comment"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	newID(&c.ID)
	return nil
}
