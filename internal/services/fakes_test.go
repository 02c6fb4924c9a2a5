// internal/services/fakes_test.go
package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/the-exchanger/exchanger-backend/internal/models"
)

// In-memory store fakes. They mirror the repository semantics closely
// enough for lifecycle tests: copies in, copies out, sentinel errors on
// missing rows.

type fakeListingStore struct {
	mu       sync.Mutex
	listings map[uuid.UUID]*models.Listing
	seq      int64
}

func newFakeListingStore() *fakeListingStore {
	return &fakeListingStore{listings: make(map[uuid.UUID]*models.Listing)}
}

func (f *fakeListingStore) nextTime() time.Time {
	f.seq++
	return time.Unix(f.seq, 0)
}

func (f *fakeListingStore) Create(_ context.Context, listing *models.Listing) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	listing.CreatedAt = f.nextTime()
	cp := *listing
	f.listings[listing.ID] = &cp
	return nil
}

func (f *fakeListingStore) FindByID(_ context.Context, id uuid.UUID) (*models.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	listing, ok := f.listings[id]
	if !ok {
		return nil, ErrListingNotFound
	}
	cp := *listing
	return &cp, nil
}

func (f *fakeListingStore) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Listing, 0, len(ids))
	for _, id := range ids {
		if listing, ok := f.listings[id]; ok {
			out = append(out, *listing)
		}
	}
	return out, nil
}

func (f *fakeListingStore) Search(_ context.Context, filter ListingFilter) ([]models.Listing, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := make([]models.Listing, 0)
	for _, listing := range f.listings {
		if filter.OwnerID != nil && listing.UserID != *filter.OwnerID {
			continue
		}
		if filter.Status != "" && listing.Status != filter.Status {
			continue
		}
		if filter.Category != "" && listing.Category != filter.Category {
			continue
		}
		if filter.Query != "" {
			q := strings.ToLower(filter.Query)
			if !strings.Contains(strings.ToLower(listing.Title), q) &&
				!strings.Contains(strings.ToLower(listing.Description), q) {
				continue
			}
		}
		matched = append(matched, *listing)
	}

	sort.Slice(matched, func(i, j int) bool {
		if filter.Sort == "oldest" {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if filter.Limit > 0 {
		start := (filter.Page - 1) * filter.Limit
		if start < 0 {
			start = 0
		}
		if start > len(matched) {
			start = len(matched)
		}
		end := start + filter.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (f *fakeListingStore) Save(_ context.Context, listing *models.Listing) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.listings[listing.ID]; !ok {
		return ErrListingNotFound
	}
	cp := *listing
	f.listings[listing.ID] = &cp
	return nil
}

func (f *fakeListingStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.listings[id]; !ok {
		return ErrListingNotFound
	}
	delete(f.listings, id)
	return nil
}

func (f *fakeListingStore) SetStatus(_ context.Context, ids []uuid.UUID, status models.ListingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, id := range ids {
		if listing, ok := f.listings[id]; ok {
			listing.Status = status
		}
	}
	return nil
}

func (f *fakeListingStore) FilterOwnedAvailable(_ context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		listing, ok := f.listings[id]
		if !ok || listing.UserID != ownerID || listing.Status != models.ListingStatusAvailable {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

func (f *fakeListingStore) status(id uuid.UUID) models.ListingStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listings[id].Status
}

type fakeOfferStore struct {
	mu     sync.Mutex
	offers map[uuid.UUID]*models.TradeOffer
	seq    int64
}

func newFakeOfferStore() *fakeOfferStore {
	return &fakeOfferStore{offers: make(map[uuid.UUID]*models.TradeOffer)}
}

func (f *fakeOfferStore) nextTime() time.Time {
	f.seq++
	return time.Unix(f.seq, 0)
}

func copyOffer(o *models.TradeOffer) *models.TradeOffer {
	cp := *o
	cp.OfferedItems = append(models.UUIDList(nil), o.OfferedItems...)
	cp.Messages = append([]models.OfferMessage(nil), o.Messages...)
	return &cp
}

func (f *fakeOfferStore) Create(_ context.Context, offer *models.TradeOffer) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	offer.CreatedAt = f.nextTime()
	for i := range offer.Messages {
		if offer.Messages[i].ID == uuid.Nil {
			offer.Messages[i].ID = uuid.New()
		}
		offer.Messages[i].OfferID = offer.ID
		offer.Messages[i].CreatedAt = offer.CreatedAt
	}
	f.offers[offer.ID] = copyOffer(offer)
	return nil
}

func (f *fakeOfferStore) FindByID(_ context.Context, id uuid.UUID) (*models.TradeOffer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	offer, ok := f.offers[id]
	if !ok {
		return nil, ErrOfferNotFound
	}
	return copyOffer(offer), nil
}

func (f *fakeOfferStore) FindByListing(_ context.Context, listingID uuid.UUID) ([]models.TradeOffer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.TradeOffer, 0)
	for _, offer := range f.offers {
		if offer.ListingID == listingID {
			out = append(out, *copyOffer(offer))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeOfferStore) FindByProposer(_ context.Context, proposerID uuid.UUID, listingID *uuid.UUID) ([]models.TradeOffer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.TradeOffer, 0)
	for _, offer := range f.offers {
		if offer.FromUserID != proposerID {
			continue
		}
		if listingID != nil && offer.ListingID != *listingID {
			continue
		}
		out = append(out, *copyOffer(offer))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeOfferStore) UpdateOfferedItems(_ context.Context, id uuid.UUID, items models.UUIDList) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	offer, ok := f.offers[id]
	if !ok {
		return ErrOfferNotFound
	}
	offer.OfferedItems = append(models.UUIDList(nil), items...)
	return nil
}

func (f *fakeOfferStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.OfferStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	offer, ok := f.offers[id]
	if !ok {
		return ErrOfferNotFound
	}
	offer.Status = status
	return nil
}

func (f *fakeOfferStore) UpdateStatusIf(_ context.Context, id uuid.UUID, from, to models.OfferStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	offer, ok := f.offers[id]
	if !ok {
		return false, ErrOfferNotFound
	}
	if offer.Status != from {
		return false, nil
	}
	offer.Status = to
	return true, nil
}

func (f *fakeOfferStore) DeclinePendingSiblings(_ context.Context, listingID, exclude uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var declined int64
	for _, offer := range f.offers {
		if offer.ListingID == listingID && offer.ID != exclude && offer.Status == models.OfferStatusPending {
			offer.Status = models.OfferStatusDeclined
			declined++
		}
	}
	return declined, nil
}

func (f *fakeOfferStore) AppendMessage(_ context.Context, msg *models.OfferMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	offer, ok := f.offers[msg.OfferID]
	if !ok {
		return ErrOfferNotFound
	}
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	msg.CreatedAt = f.nextTime()
	offer.Messages = append(offer.Messages, *msg)
	return nil
}

func (f *fakeOfferStore) status(id uuid.UUID) models.OfferStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.offers[id].Status
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeUserStore) DeleteCascade(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}
