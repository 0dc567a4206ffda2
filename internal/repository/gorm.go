package repository

import (
	"errors"

	"gorm.io/gorm"
)

// NewGormRepositories wires every repository to the same GORM connection.
func NewGormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:       NewUserRepository(db),
		Tasks:       NewTaskRepository(db),
		Submissions: NewSubmissionRepository(db),
		Payments:    NewPaymentRepository(db),
		Comments:    NewCommentRepository(db),
		Reviews:     NewReviewRepository(db),
	}
}

// translate maps GORM errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	}
	return err
}

// credit adds amount to the balance of the user with email.
func credit(tx *gorm.DB, email string, amount int64) error {
	res := tx.Table("users").
		Where("email = ?", email).
		Update("coins", gorm.Expr("coins + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}
