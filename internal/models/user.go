package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleWorker Role = "Worker"
	RoleBuyer  Role = "Buyer"
	RoleAdmin  Role = "Admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleWorker, RoleBuyer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	Name      string    `gorm:"type:varchar(255)" bson:"name" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" bson:"email" json:"email"`
	PhotoURL  string    `gorm:"type:text" bson:"photo_url" json:"photo_url"`
	Role      Role      `gorm:"type:varchar(20);index;not null" bson:"role" json:"role"`
	Coins     int64     `gorm:"not null;default:0" bson:"coins" json:"coins"`
	Skill     string    `gorm:"type:varchar(255)" bson:"skill,omitempty" json:"skill,omitempty"`
	Comment   string    `gorm:"type:text" bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	newID(&u.ID)
	return nil
}
