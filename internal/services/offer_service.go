// internal/services/offer_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/the-exchanger/exchanger-backend/internal/models"
	"github.com/the-exchanger/exchanger-backend/internal/utils"
)

// OfferService drives the trade-offer lifecycle and the listing-status
// cascades it triggers.
//
// State machine: pending -> accepted | declined, accepted -> completed via
// mark. Declined offers can only be reopened through mark(pending), and a
// mark(available) closes the offer as declined while releasing the
// listings. Accepting an offer auto-declines every other pending offer on
// the same listing, so at most one offer per listing is ever accepted.
type OfferService struct {
	listings      ListingStore
	offers        OfferStore
	notifications *NotificationService
}

type CreateOfferRequest struct {
	ListingID    uuid.UUID   `json:"listing_id" validate:"required"`
	OfferedItems []uuid.UUID `json:"offered_items,omitempty"`
	Message      string      `json:"message,omitempty"`
}

type UpdateOfferedItemsRequest struct {
	OfferedItems []uuid.UUID `json:"offered_items"`
}

type MarkOfferRequest struct {
	Status models.TradeOutcome `json:"status" validate:"required"`
}

func NewOfferService(listings ListingStore, offers OfferStore, notifications *NotificationService) *OfferService {
	return &OfferService{
		listings:      listings,
		offers:        offers,
		notifications: notifications,
	}
}

// CreateOffer opens a pending offer on a listing. The recipient is the
// listing's current owner, snapshotted now; offered items that don't belong
// to the proposer or aren't available are dropped, not rejected.
func (s *OfferService) CreateOffer(ctx context.Context, proposerID uuid.UUID, req *CreateOfferRequest) (*models.TradeOffer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	listing, err := s.listings.FindByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}

	if listing.IsOwnedBy(proposerID) {
		return nil, ErrSelfOffer
	}

	offered, err := s.filterOfferedItems(ctx, proposerID, req.OfferedItems)
	if err != nil {
		return nil, err
	}

	offer := &models.TradeOffer{
		ListingID:    listing.ID,
		FromUserID:   proposerID,
		ToUserID:     listing.UserID,
		OfferedItems: offered,
		Status:       models.OfferStatusPending,
	}

	if text := strings.TrimSpace(req.Message); text != "" {
		offer.Messages = []models.OfferMessage{{SenderID: proposerID, Text: text}}
	}

	if err := s.offers.Create(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	s.notify(func(n *NotificationService) error {
		return n.SendOfferReceived(ctx, offer, listing)
	})

	return offer, nil
}

// GetOffer returns the offer with its offered items resolved. Items whose
// listing has since vanished are simply omitted.
func (s *OfferService) GetOffer(ctx context.Context, offerID, actorID uuid.UUID) (*models.TradeOffer, error) {
	offer, err := s.offers.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if !offer.IsParticipant(actorID) {
		return nil, fmt.Errorf("%w: not a participant of this offer", ErrForbidden)
	}

	if len(offer.OfferedItems) > 0 {
		resolved, err := s.listings.FindByIDs(ctx, offer.OfferedItems)
		if err != nil {
			return nil, err
		}
		offer.Resolved = resolved
	}

	return offer, nil
}

// ListForListing returns every offer made on a listing, newest first. Only
// the listing owner may see them.
func (s *OfferService) ListForListing(ctx context.Context, listingID, actorID uuid.UUID) ([]models.TradeOffer, error) {
	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if !listing.IsOwnedBy(actorID) {
		return nil, fmt.Errorf("%w: only the owner can view offers for this listing", ErrForbidden)
	}

	return s.offers.FindByListing(ctx, listingID)
}

// ListMine returns the offers the actor proposed, optionally narrowed to
// one listing thread.
func (s *OfferService) ListMine(ctx context.Context, actorID uuid.UUID, listingID *uuid.UUID) ([]models.TradeOffer, error) {
	return s.offers.FindByProposer(ctx, actorID, listingID)
}

// UpdateOfferedItems replaces the offered-item list wholesale. Proposer
// only, and only while the offer is still pending. The same
// ownership+availability filter as creation applies.
func (s *OfferService) UpdateOfferedItems(ctx context.Context, offerID, actorID uuid.UUID, req *UpdateOfferedItemsRequest) (*models.TradeOffer, error) {
	offer, err := s.offers.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if !offer.IsProposedBy(actorID) {
		return nil, fmt.Errorf("%w: only proposer can update offered items", ErrForbidden)
	}

	if offer.Status != models.OfferStatusPending {
		return nil, &ConflictError{
			Current: offer.Status,
			Reason:  "cannot update after offer is accepted or closed",
		}
	}

	offered, err := s.filterOfferedItems(ctx, actorID, req.OfferedItems)
	if err != nil {
		return nil, err
	}

	if err := s.offers.UpdateOfferedItems(ctx, offer.ID, offered); err != nil {
		return nil, fmt.Errorf("failed to update offered items: %w", err)
	}

	offer.OfferedItems = offered
	return offer, nil
}

// PostMessage appends to the offer's negotiation thread. Participants only;
// the thread is append-only.
func (s *OfferService) PostMessage(ctx context.Context, offerID, actorID uuid.UUID, text string) (*models.TradeOffer, error) {
	offer, err := s.offers.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if !offer.IsParticipant(actorID) {
		return nil, fmt.Errorf("%w: not authorized to post in this thread", ErrForbidden)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	msg := &models.OfferMessage{
		OfferID:  offer.ID,
		SenderID: actorID,
		Text:     text,
	}

	if err := s.offers.AppendMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to post message: %w", err)
	}

	offer.Messages = append(offer.Messages, *msg)
	return offer, nil
}

// Accept moves a pending offer to accepted, parks the target listing and
// every offered item as pending, and auto-declines all sibling pending
// offers on the same listing.
//
// The pending->accepted transition is a single conditional write, so of two
// concurrent accepts only one performs the cascade; the loser gets a
// conflict echoing the state it lost to.
func (s *OfferService) Accept(ctx context.Context, offerID, actorID uuid.UUID) (*models.TradeOffer, error) {
	offer, err := s.offers.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if !offer.IsOwnedBy(actorID) {
		return nil, fmt.Errorf("%w: only listing owner can accept the offer", ErrForbidden)
	}

	won, err := s.offers.UpdateStatusIf(ctx, offer.ID, models.OfferStatusPending, models.OfferStatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("failed to accept offer: %w", err)
	}
	if !won {
		return nil, s.conflictWithCurrent(ctx, offer)
	}
	offer.Status = models.OfferStatusAccepted

	if err := s.listings.SetStatus(ctx, s.involvedListings(offer), models.ListingStatusPending); err != nil {
		return nil, fmt.Errorf("failed to update listing status: %w", err)
	}

	declined, err := s.offers.DeclinePendingSiblings(ctx, offer.ListingID, offer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to decline competing offers: %w", err)
	}
	if declined > 0 {
		logrus.WithFields(logrus.Fields{
			"offer_id":   offer.ID,
			"listing_id": offer.ListingID,
			"declined":   declined,
		}).Info("Auto-declined competing offers")
	}

	s.notify(func(n *NotificationService) error {
		return n.SendOfferAccepted(ctx, offer)
	})

	return offer, nil
}

// Decline closes a pending or accepted offer. Listing statuses are left
// untouched; the owner releases them with mark(available).
func (s *OfferService) Decline(ctx context.Context, offerID, actorID uuid.UUID) (*models.TradeOffer, error) {
	offer, err := s.offers.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if !offer.IsOwnedBy(actorID) {
		return nil, fmt.Errorf("%w: only listing owner can decline the offer", ErrForbidden)
	}

	if offer.Closed() {
		return nil, &ConflictError{Current: offer.Status}
	}

	if err := s.offers.UpdateStatus(ctx, offer.ID, models.OfferStatusDeclined); err != nil {
		return nil, fmt.Errorf("failed to decline offer: %w", err)
	}
	offer.Status = models.OfferStatusDeclined

	s.notify(func(n *NotificationService) error {
		return n.SendOfferDeclined(ctx, offer)
	})

	return offer, nil
}

// Mark records the trade outcome chosen by the listing owner:
//
//	completed: involved listings become traded, offer becomes completed.
//	pending:   involved listings become pending; a declined offer is
//	           reopened as pending, any other status is kept.
//	available: involved listings are released, offer becomes declined.
func (s *OfferService) Mark(ctx context.Context, offerID, actorID uuid.UUID, req *MarkOfferRequest) (*models.TradeOffer, error) {
	offer, err := s.offers.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if !offer.IsOwnedBy(actorID) {
		return nil, fmt.Errorf("%w: only listing owner can mark trade outcome", ErrForbidden)
	}

	outcome := models.TradeOutcome(strings.TrimSpace(string(req.Status)))
	if !outcome.Valid() {
		return nil, ErrInvalidOutcome
	}

	involved := s.involvedListings(offer)

	switch outcome {
	case models.OutcomeCompleted:
		if err := s.listings.SetStatus(ctx, involved, models.ListingStatusTraded); err != nil {
			return nil, fmt.Errorf("failed to update listing status: %w", err)
		}
		if err := s.offers.UpdateStatus(ctx, offer.ID, models.OfferStatusCompleted); err != nil {
			return nil, fmt.Errorf("failed to complete offer: %w", err)
		}
		offer.Status = models.OfferStatusCompleted

		s.notify(func(n *NotificationService) error {
			return n.SendTradeCompleted(ctx, offer)
		})

	case models.OutcomePending:
		if err := s.listings.SetStatus(ctx, involved, models.ListingStatusPending); err != nil {
			return nil, fmt.Errorf("failed to update listing status: %w", err)
		}
		// Reopen only a declined offer; an accepted or completed one
		// keeps its status.
		if offer.Status == models.OfferStatusDeclined {
			if err := s.offers.UpdateStatus(ctx, offer.ID, models.OfferStatusPending); err != nil {
				return nil, fmt.Errorf("failed to reopen offer: %w", err)
			}
			offer.Status = models.OfferStatusPending
		}

	case models.OutcomeAvailable:
		if err := s.listings.SetStatus(ctx, involved, models.ListingStatusAvailable); err != nil {
			return nil, fmt.Errorf("failed to update listing status: %w", err)
		}
		if err := s.offers.UpdateStatus(ctx, offer.ID, models.OfferStatusDeclined); err != nil {
			return nil, fmt.Errorf("failed to close offer: %w", err)
		}
		offer.Status = models.OfferStatusDeclined
	}

	return offer, nil
}

// filterOfferedItems applies the ownership+availability filter. Invalid ids
// are silently dropped; the caller never sees an error for them.
func (s *OfferService) filterOfferedItems(ctx context.Context, proposerID uuid.UUID, candidates []uuid.UUID) (models.UUIDList, error) {
	if len(candidates) == 0 {
		return models.UUIDList{}, nil
	}

	valid, err := s.listings.FilterOwnedAvailable(ctx, proposerID, candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to validate offered items: %w", err)
	}

	if dropped := len(candidates) - len(valid); dropped > 0 {
		logrus.WithFields(logrus.Fields{
			"proposer_id": proposerID,
			"dropped":     dropped,
		}).Debug("Dropped invalid offered items")
	}

	return models.UUIDList(valid), nil
}

// involvedListings is the target listing plus every offered item.
func (s *OfferService) involvedListings(offer *models.TradeOffer) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(offer.OfferedItems)+1)
	ids = append(ids, offer.ListingID)
	ids = append(ids, offer.OfferedItems...)
	return ids
}

func (s *OfferService) conflictWithCurrent(ctx context.Context, offer *models.TradeOffer) error {
	current, err := s.offers.FindByID(ctx, offer.ID)
	if err != nil {
		return &ConflictError{Current: offer.Status}
	}
	return &ConflictError{Current: current.Status}
}

// notify fires a notification best effort; lifecycle transitions never fail
// because mail did.
func (s *OfferService) notify(fn func(*NotificationService) error) {
	if s.notifications == nil {
		return
	}
	if err := fn(s.notifications); err != nil {
		logrus.WithError(err).Warn("Failed to send offer notification")
	}
}
