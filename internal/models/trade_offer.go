// internal/models/trade_offer.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type TradeOffer struct {
	BaseModel
	ListingID  uuid.UUID `json:"listing_id" gorm:"type:uuid;not null;index"`
	FromUserID uuid.UUID `json:"from_user_id" gorm:"type:uuid;not null;index"` // proposer
	ToUserID   uuid.UUID `json:"to_user_id" gorm:"type:uuid;not null;index"`   // listing owner at creation time

	// Listings the proposer bundles into the trade. References may dangle
	// once unrelated flows delete a listing; readers must tolerate that.
	OfferedItems UUIDList `json:"offered_items" gorm:"type:text[]"`

	Messages []OfferMessage `json:"messages" gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
	Status   OfferStatus    `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	// Relationships
	Listing  *Listing  `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
	FromUser *User     `json:"from_user,omitempty" gorm:"foreignKey:FromUserID"`
	ToUser   *User     `json:"to_user,omitempty" gorm:"foreignKey:ToUserID"`
	Resolved []Listing `json:"resolved_items,omitempty" gorm:"-"`
}

// OfferMessage is an append-only negotiation message owned by its offer.
type OfferMessage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OfferID   uuid.UUID `json:"offer_id" gorm:"type:uuid;not null;index"`
	SenderID  uuid.UUID `json:"sender_id" gorm:"type:uuid;not null"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// IsParticipant reports whether the actor is the proposer or the recipient.
func (o *TradeOffer) IsParticipant(actorID uuid.UUID) bool {
	return o.FromUserID == actorID || o.ToUserID == actorID
}

// IsOwnedBy reports whether the actor is the listing owner the offer was
// made to.
func (o *TradeOffer) IsOwnedBy(actorID uuid.UUID) bool {
	return o.ToUserID == actorID
}

// IsProposedBy reports whether the actor created the offer.
func (o *TradeOffer) IsProposedBy(actorID uuid.UUID) bool {
	return o.FromUserID == actorID
}

// Closed reports whether the offer reached a state that direct
// accept/decline calls may no longer leave.
func (o *TradeOffer) Closed() bool {
	return o.Status == OfferStatusDeclined || o.Status == OfferStatusCompleted
}
