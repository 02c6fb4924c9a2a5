// internal/repository/listing_repo.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/the-exchanger/exchanger-backend/internal/models"
	"github.com/the-exchanger/exchanger-backend/internal/services"
)

type listingRepository struct {
	db *gorm.DB
}

func NewListingStore(db *gorm.DB) services.ListingStore {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}
	return &listing, nil
}

func (r *listingRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Listing, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var listings []models.Listing
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}
	return listings, nil
}

func (r *listingRepository) Search(ctx context.Context, filter services.ListingFilter) ([]models.Listing, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Listing{})

	if filter.Query != "" {
		like := "%" + escapeLike(filter.Query) + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OwnerID != nil {
		query = query.Where("user_id = ?", *filter.OwnerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	order := "created_at DESC"
	if filter.Sort == "oldest" {
		order = "created_at ASC"
	}
	query = query.Order(order)

	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}

	var listings []models.Listing
	if err := query.Find(&listings).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search listings: %w", err)
	}
	return listings, total, nil
}

// escapeLike neutralizes LIKE metacharacters so a search for "100%" matches
// the literal text instead of acting as a wildcard.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *listingRepository) Save(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(listing).Error
}

func (r *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Listing{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return services.ErrListingNotFound
	}
	return nil
}

func (r *listingRepository) SetStatus(ctx context.Context, ids []uuid.UUID, status models.ListingStatus) error {
	if len(ids) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("id IN ?", ids).
		Update("status", status).Error
}

func (r *listingRepository) FilterOwnedAvailable(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("id IN ? AND user_id = ? AND status = ?", ids, ownerID, models.ListingStatusAvailable).
		Pluck("id", &found).Error; err != nil {
		return nil, fmt.Errorf("failed to validate offered items: %w", err)
	}

	// Preserve caller order, drop duplicates.
	set := make(map[uuid.UUID]bool, len(found))
	for _, id := range found {
		set[id] = true
	}
	valid := make([]uuid.UUID, 0, len(found))
	for _, id := range ids {
		if set[id] {
			valid = append(valid, id)
			set[id] = false
		}
	}
	return valid, nil
}
