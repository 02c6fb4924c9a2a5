// internal/models/common.go
package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UUIDList is an ordered set of references stored as a PostgreSQL text[].
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	arr := make(pq.StringArray, len(l))
	for i, id := range l {
		arr[i] = id.String()
	}
	return arr.Value()
}

func (l *UUIDList) Scan(value interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(value); err != nil {
		return err
	}

	out := make(UUIDList, 0, len(arr))
	for _, s := range arr {
		id, err := uuid.Parse(s)
		if err != nil {
			return fmt.Errorf("invalid uuid in array: %w", err)
		}
		out = append(out, id)
	}
	*l = out
	return nil
}

func (l UUIDList) Strings() []string {
	out := make([]string, len(l))
	for i, id := range l {
		out[i] = id.String()
	}
	return out
}

func (l UUIDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Enums
type ListingStatus string

const (
	ListingStatusAvailable ListingStatus = "available"
	ListingStatusPending   ListingStatus = "pending"
	ListingStatusTraded    ListingStatus = "traded"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case ListingStatusAvailable, ListingStatusPending, ListingStatusTraded:
		return true
	}
	return false
}

type OfferStatus string

const (
	OfferStatusPending   OfferStatus = "pending"
	OfferStatusAccepted  OfferStatus = "accepted"
	OfferStatusDeclined  OfferStatus = "declined"
	OfferStatusCompleted OfferStatus = "completed"
)

// TradeOutcome is the target state the listing owner marks an accepted
// trade with.
type TradeOutcome string

const (
	OutcomeCompleted TradeOutcome = "completed"
	OutcomePending   TradeOutcome = "pending"
	OutcomeAvailable TradeOutcome = "available"
)

func (o TradeOutcome) Valid() bool {
	switch o {
	case OutcomeCompleted, OutcomePending, OutcomeAvailable:
		return true
	}
	return false
}

type AuthProvider string

const (
	AuthProviderLocal AuthProvider = "local"
)
