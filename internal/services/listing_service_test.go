// internal/services/listing_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-exchanger/exchanger-backend/internal/models"
)

func TestCreateListingDefaultsAndTrims(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store)
	owner := uuid.New()

	listing, err := svc.CreateListing(context.Background(), owner, &CreateListingRequest{
		Title:       "  Mountain bike  ",
		Description: " barely used ",
		Category:    " sports ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Mountain bike", listing.Title)
	assert.Equal(t, "barely used", listing.Description)
	assert.Equal(t, "sports", listing.Category)
	assert.Equal(t, models.ListingStatusAvailable, listing.Status)
	assert.Equal(t, owner, listing.UserID)
}

func TestCreateListingValidation(t *testing.T) {
	svc := NewListingService(newFakeListingStore())

	_, err := svc.CreateListing(context.Background(), uuid.New(), &CreateListingRequest{
		Title: "   ", // whitespace only trims to empty
	})
	assert.Error(t, err)
}

func TestListingStatusEnumEnforced(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store)
	owner := uuid.New()

	_, err := svc.CreateListing(context.Background(), owner, &CreateListingRequest{
		Title:       "Kettle",
		Description: "Electric",
		Category:    "kitchen",
		Status:      "bogus",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	listing, err := svc.CreateListing(context.Background(), owner, &CreateListingRequest{
		Title:       "Kettle",
		Description: "Electric",
		Category:    "kitchen",
		Status:      models.ListingStatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusPending, listing.Status)

	junk := models.ListingStatus("junk")
	_, err = svc.UpdateListing(context.Background(), listing.ID, owner, &UpdateListingRequest{Status: &junk})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// The bogus value never reached the store.
	kept, err := svc.GetListing(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusPending, kept.Status)

	traded := models.ListingStatusTraded
	updated, err := svc.UpdateListing(context.Background(), listing.ID, owner, &UpdateListingRequest{Status: &traded})
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusTraded, updated.Status)
}

func TestUpdateListingPatchSemantics(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store)
	owner := uuid.New()

	listing, err := svc.CreateListing(context.Background(), owner, &CreateListingRequest{
		Title:       "Record player",
		Description: "With speakers",
		Category:    "music",
		Location:    "Taipei",
	})
	require.NoError(t, err)

	title := " Turntable "
	updated, err := svc.UpdateListing(context.Background(), listing.ID, owner, &UpdateListingRequest{
		Title: &title,
	})
	require.NoError(t, err)

	assert.Equal(t, "Turntable", updated.Title)
	// Untouched fields survive.
	assert.Equal(t, "With speakers", updated.Description)
	assert.Equal(t, "Taipei", updated.Location)
}

func TestUpdateListingOwnerOnly(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store)

	listing, err := svc.CreateListing(context.Background(), uuid.New(), &CreateListingRequest{
		Title:       "Chess set",
		Description: "Wooden",
		Category:    "games",
	})
	require.NoError(t, err)

	title := "Stolen chess set"
	_, err = svc.UpdateListing(context.Background(), listing.ID, uuid.New(), &UpdateListingRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteListingOwnerOnly(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store)
	owner := uuid.New()

	listing, err := svc.CreateListing(context.Background(), owner, &CreateListingRequest{
		Title:       "Lamp",
		Description: "Desk lamp",
		Category:    "furniture",
	})
	require.NoError(t, err)

	err = svc.DeleteListing(context.Background(), listing.ID, uuid.New())
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.DeleteListing(context.Background(), listing.ID, owner))

	_, err = svc.GetListing(context.Background(), listing.ID)
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestSearchListingsNormalizesSort(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store)
	owner := uuid.New()

	for _, title := range []string{"First", "Second"} {
		_, err := svc.CreateListing(context.Background(), owner, &CreateListingRequest{
			Title:       title,
			Description: "d",
			Category:    "misc",
		})
		require.NoError(t, err)
	}

	newest, total, err := svc.SearchListings(context.Background(), ListingFilter{Sort: "bogus"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, newest, 2)
	assert.Equal(t, "Second", newest[0].Title)

	oldest, _, err := svc.SearchListings(context.Background(), ListingFilter{Sort: "oldest"})
	require.NoError(t, err)
	assert.Equal(t, "First", oldest[0].Title)
}

func TestListOwnedAvailableOnly(t *testing.T) {
	store := newFakeListingStore()
	svc := NewListingService(store)
	owner := uuid.New()

	available, err := svc.CreateListing(context.Background(), owner, &CreateListingRequest{
		Title:       "Free",
		Description: "d",
		Category:    "misc",
	})
	require.NoError(t, err)

	_, err = svc.CreateListing(context.Background(), owner, &CreateListingRequest{
		Title:       "Reserved",
		Description: "d",
		Category:    "misc",
		Status:      models.ListingStatusPending,
	})
	require.NoError(t, err)

	listings, err := svc.ListOwned(context.Background(), owner, true)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, available.ID, listings[0].ID)

	all, err := svc.ListOwned(context.Background(), owner, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
