// internal/repository/user_repo.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/the-exchanger/exchanger-backend/internal/database"
	"github.com/the-exchanger/exchanger-backend/internal/models"
	"github.com/the-exchanger/exchanger-backend/internal/services"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) services.UserStore {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// DeleteCascade removes the user's listings, every offer they participate
// in (with messages), and finally the user, in one transaction.
func (r *userRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		offerIDs := tx.Model(&models.TradeOffer{}).
			Select("id").
			Where("from_user_id = ? OR to_user_id = ?", id, id)

		if err := tx.Where("offer_id IN (?)", offerIDs).Delete(&models.OfferMessage{}).Error; err != nil {
			return fmt.Errorf("failed to delete offer messages: %w", err)
		}

		if err := tx.Where("from_user_id = ? OR to_user_id = ?", id, id).Delete(&models.TradeOffer{}).Error; err != nil {
			return fmt.Errorf("failed to delete offers: %w", err)
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Listing{}).Error; err != nil {
			return fmt.Errorf("failed to delete listings: %w", err)
		}

		result := tx.Delete(&models.User{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return services.ErrUserNotFound
		}
		return nil
	})
}
