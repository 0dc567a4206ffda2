package models

import (
	"time"

	"gorm.io/gorm"
)

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Terminal reports whether no further transition is allowed from s.
func (s SubmissionStatus) Terminal() bool {
	return s == SubmissionApproved || s == SubmissionRejected
}

// Submission copies the task fields it needs at write time; later task edits
// do not propagate.
type Submission struct {
	ID                string           `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	TaskID            string           `gorm:"type:varchar(36);not null;uniqueIndex:idx_submissions_task_worker" bson:"task_id" json:"task_id"`
	TaskTitle         string           `gorm:"type:varchar(255)" bson:"task_title" json:"task_title"`
	TaskDetail        string           `gorm:"type:text" bson:"task_detail" json:"task_detail"`
	PayableAmount     int64            `gorm:"not null" bson:"payable_amount" json:"payable_amount"`
	WorkerEmail       string           `gorm:"type:varchar(255);not null;uniqueIndex:idx_submissions_task_worker;index" bson:"worker_email" json:"worker_email"`
	WorkerName        string           `gorm:"type:varchar(255)" bson:"worker_name" json:"worker_name"`
	CreatorEmail      string           `gorm:"type:varchar(255);index" bson:"creator_email" json:"creator_email"`
	CreatorName       string           `gorm:"type:varchar(255)" bson:"creator_name" json:"creator_name"`
	SubmissionDetails string           `gorm:"type:text" bson:"submission_details" json:"submission_details"`
	Link              string           `gorm:"type:text" bson:"link,omitempty" json:"link,omitempty"`
	Status            SubmissionStatus `gorm:"type:varchar(20);not null;default:'pending';index" bson:"status" json:"status"`
	SubmittedAt       time.Time        `gorm:"autoCreateTime" bson:"submitted_at" json:"submitted_at"`
	UpdatedAt         time.Time        `bson:"updated_at" json:"updated_at"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	newID(&s.ID)
	return nil
}
