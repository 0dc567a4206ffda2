package repository

import (
	"context"
	"errors"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/database"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Upsert creates the user or overwrites the profile fields of the existing one.
func (r *GormUserRepository) Upsert(ctx context.Context, user *models.User) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("email = ?", user.Email).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			user.Coins = 0
			return tx.Create(user).Error
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&existing).Updates(map[string]interface{}{
			"name":      user.Name,
			"photo_url": user.PhotoURL,
			"role":      user.Role,
			"skill":     user.Skill,
		}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", existing.ID).First(user).Error
	})
	return created, translate(err)
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// List retrieves users with filtering and pagination
func (r *GormUserRepository) List(ctx context.Context, filter UserFilter) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := []models.User{}
	if err := query.Order("created_at DESC").
		Scopes(database.Paginate(filter.Pagination)).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Delete removes a user
func (r *GormUserRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustCoins adds delta to the balance without letting it drop below zero.
func (r *GormUserRepository) AdjustCoins(ctx context.Context, email string, delta int64) (*models.User, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if delta < 0 {
		query = query.Where("coins >= ?", -delta)
	}

	res := query.Update("coins", gorm.Expr("coins + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByEmail(ctx, email); err != nil {
			return nil, err
		}
		return nil, ErrInsufficientCoins
	}

	return r.FindByEmail(ctx, email)
}

// SetComment replaces the free-text comment field
func (r *GormUserRepository) SetComment(ctx context.Context, email, comment string) error {
	return r.updateField(ctx, email, "comment", comment)
}

// SetRole replaces the user's role
func (r *GormUserRepository) SetRole(ctx context.Context, email string, role models.Role) error {
	return r.updateField(ctx, email, "role", role)
}

func (r *GormUserRepository) updateField(ctx context.Context, email, column string, value interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
