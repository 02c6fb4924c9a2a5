// internal/repository/offer_repo.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/the-exchanger/exchanger-backend/internal/models"
	"github.com/the-exchanger/exchanger-backend/internal/services"
)

type offerRepository struct {
	db *gorm.DB
}

func NewOfferStore(db *gorm.DB) services.OfferStore {
	return &offerRepository{db: db}
}

func (r *offerRepository) withMessages(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("offer_messages.created_at ASC")
	})
}

func (r *offerRepository) Create(ctx context.Context, offer *models.TradeOffer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *offerRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.TradeOffer, error) {
	var offer models.TradeOffer
	if err := r.withMessages(ctx).First(&offer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to load offer: %w", err)
	}
	return &offer, nil
}

func (r *offerRepository) FindByListing(ctx context.Context, listingID uuid.UUID) ([]models.TradeOffer, error) {
	var offers []models.TradeOffer
	if err := r.withMessages(ctx).
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to load offers: %w", err)
	}
	return offers, nil
}

func (r *offerRepository) FindByProposer(ctx context.Context, proposerID uuid.UUID, listingID *uuid.UUID) ([]models.TradeOffer, error) {
	query := r.withMessages(ctx).Where("from_user_id = ?", proposerID)
	if listingID != nil {
		query = query.Where("listing_id = ?", *listingID)
	}

	var offers []models.TradeOffer
	if err := query.Order("created_at DESC").Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to load offers: %w", err)
	}
	return offers, nil
}

func (r *offerRepository) UpdateOfferedItems(ctx context.Context, id uuid.UUID, items models.UUIDList) error {
	return r.db.WithContext(ctx).
		Model(&models.TradeOffer{}).
		Where("id = ?", id).
		Update("offered_items", items).Error
}

func (r *offerRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OfferStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.TradeOffer{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// UpdateStatusIf is the conditional write guarding the lifecycle critical
// section: of two concurrent transitions only one sees RowsAffected == 1.
func (r *offerRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to models.OfferStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.TradeOffer{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *offerRepository) DeclinePendingSiblings(ctx context.Context, listingID, exclude uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.TradeOffer{}).
		Where("listing_id = ? AND id <> ? AND status = ?", listingID, exclude, models.OfferStatusPending).
		Update("status", models.OfferStatusDeclined)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *offerRepository) AppendMessage(ctx context.Context, msg *models.OfferMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}
