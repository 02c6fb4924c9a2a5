// internal/services/listing_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/the-exchanger/exchanger-backend/internal/models"
	"github.com/the-exchanger/exchanger-backend/internal/utils"
)

type ListingService struct {
	listings ListingStore
}

type CreateListingRequest struct {
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description" validate:"required"`
	Category    string               `json:"category" validate:"required"`
	Condition   string               `json:"condition,omitempty"`
	Location    string               `json:"location,omitempty"`
	Images      []models.Image       `json:"images,omitempty"`
	Status      models.ListingStatus `json:"status,omitempty"`
}

// UpdateListingRequest carries the allow-listed fields. Pointer fields keep
// PATCH semantics: only supplied fields are applied, anything else in the
// request body is ignored.
type UpdateListingRequest struct {
	Title       *string               `json:"title,omitempty"`
	Description *string               `json:"description,omitempty"`
	Category    *string               `json:"category,omitempty"`
	Condition   *string               `json:"condition,omitempty"`
	Location    *string               `json:"location,omitempty"`
	Status      *models.ListingStatus `json:"status,omitempty"`
	Images      *[]models.Image       `json:"images,omitempty"`
}

func NewListingService(listings ListingStore) *ListingService {
	return &ListingService{listings: listings}
}

func (s *ListingService) CreateListing(ctx context.Context, ownerID uuid.UUID, req *CreateListingRequest) (*models.Listing, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	status := req.Status
	if status == "" {
		status = models.ListingStatusAvailable
	} else if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	listing := &models.Listing{
		UserID:      ownerID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Condition:   req.Condition,
		Location:    req.Location,
		Images:      models.ImageList(req.Images),
		Status:      status,
	}

	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	return listing, nil
}

func (s *ListingService) GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	return s.listings.FindByID(ctx, id)
}

func (s *ListingService) UpdateListing(ctx context.Context, id, actorID uuid.UUID, req *UpdateListingRequest) (*models.Listing, error) {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !listing.IsOwnedBy(actorID) {
		return nil, fmt.Errorf("%w: only the owner can update this listing", ErrForbidden)
	}

	if req.Title != nil {
		listing.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		listing.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		listing.Category = strings.TrimSpace(*req.Category)
	}
	if req.Condition != nil {
		listing.Condition = *req.Condition
	}
	if req.Location != nil {
		listing.Location = *req.Location
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		listing.Status = *req.Status
	}
	if req.Images != nil {
		listing.Images = models.ImageList(*req.Images)
	}

	if err := s.listings.Save(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}

	return listing, nil
}

func (s *ListingService) SearchListings(ctx context.Context, filter ListingFilter) ([]models.Listing, int64, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	filter.Category = strings.TrimSpace(filter.Category)
	if filter.Sort != "oldest" {
		filter.Sort = "newest"
	}
	return s.listings.Search(ctx, filter)
}

// ListOwned returns the actor's own listings, optionally restricted to the
// available ones (the picker for building an offer).
func (s *ListingService) ListOwned(ctx context.Context, ownerID uuid.UUID, availableOnly bool) ([]models.Listing, error) {
	filter := ListingFilter{OwnerID: &ownerID, Sort: "newest"}
	if availableOnly {
		filter.Status = models.ListingStatusAvailable
	}
	listings, _, err := s.listings.Search(ctx, filter)
	return listings, err
}

func (s *ListingService) DeleteListing(ctx context.Context, id, actorID uuid.UUID) error {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !listing.IsOwnedBy(actorID) {
		return fmt.Errorf("%w: only the owner can delete this listing", ErrForbidden)
	}

	return s.listings.Delete(ctx, id)
}
