// internal/models/trade_offer_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTradeOfferRoles(t *testing.T) {
	from, to, stranger := uuid.New(), uuid.New(), uuid.New()
	offer := TradeOffer{FromUserID: from, ToUserID: to}

	assert.True(t, offer.IsParticipant(from))
	assert.True(t, offer.IsParticipant(to))
	assert.False(t, offer.IsParticipant(stranger))

	assert.True(t, offer.IsOwnedBy(to))
	assert.False(t, offer.IsOwnedBy(from))

	assert.True(t, offer.IsProposedBy(from))
	assert.False(t, offer.IsProposedBy(to))
}

func TestTradeOfferClosed(t *testing.T) {
	assert.False(t, (&TradeOffer{Status: OfferStatusPending}).Closed())
	assert.False(t, (&TradeOffer{Status: OfferStatusAccepted}).Closed())
	assert.True(t, (&TradeOffer{Status: OfferStatusDeclined}).Closed())
	assert.True(t, (&TradeOffer{Status: OfferStatusCompleted}).Closed())
}
