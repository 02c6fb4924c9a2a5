// internal/services/stores.go
package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/the-exchanger/exchanger-backend/internal/models"
)

// Storage collaborator contracts. The gorm implementations live in
// internal/repository; tests substitute in-memory fakes. Lookups by id
// return the package sentinels (ErrListingNotFound etc.) when the record
// is absent.

type ListingFilter struct {
	Query    string
	Category string
	Status   models.ListingStatus
	OwnerID  *uuid.UUID
	Sort     string // "newest" (default) or "oldest"
	Page     int
	Limit    int
}

type ListingStore interface {
	Create(ctx context.Context, listing *models.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	// FindByIDs resolves the listings that still exist; absent ids are
	// skipped, never an error.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Listing, error)
	Search(ctx context.Context, filter ListingFilter) ([]models.Listing, int64, error)
	Save(ctx context.Context, listing *models.Listing) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SetStatus bulk-updates the status of every listed id. Ownership is
	// not re-validated; the lifecycle engine authorizes at the offer
	// level. Setting a status a listing already holds is a no-op.
	SetStatus(ctx context.Context, ids []uuid.UUID, status models.ListingStatus) error

	// FilterOwnedAvailable returns, in input order, the subset of ids that
	// exist, belong to ownerID and are currently available.
	FilterOwnedAvailable(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error)
}

type OfferStore interface {
	Create(ctx context.Context, offer *models.TradeOffer) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.TradeOffer, error)
	FindByListing(ctx context.Context, listingID uuid.UUID) ([]models.TradeOffer, error)
	FindByProposer(ctx context.Context, proposerID uuid.UUID, listingID *uuid.UUID) ([]models.TradeOffer, error)

	UpdateOfferedItems(ctx context.Context, id uuid.UUID, items models.UUIDList) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OfferStatus) error

	// UpdateStatusIf performs the transition as a single conditional
	// write and reports whether this caller won it.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to models.OfferStatus) (bool, error)

	// DeclinePendingSiblings bulk-declines every still-pending offer on
	// the listing except the one given.
	DeclinePendingSiblings(ctx context.Context, listingID, exclude uuid.UUID) (int64, error)

	AppendMessage(ctx context.Context, msg *models.OfferMessage) error
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// DeleteCascade removes the user, their listings and every offer they
	// participate in, all-or-nothing.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}
