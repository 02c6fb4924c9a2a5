// internal/models/common_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDListValueScan(t *testing.T) {
	list := UUIDList{uuid.New(), uuid.New(), uuid.New()}

	value, err := list.Value()
	require.NoError(t, err)

	var scanned UUIDList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, list, scanned)
}

func TestUUIDListScanRejectsGarbage(t *testing.T) {
	var scanned UUIDList
	err := scanned.Scan([]byte(`{not-a-uuid}`))
	assert.Error(t, err)
}

func TestUUIDListContains(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	list := UUIDList{a}

	assert.True(t, list.Contains(a))
	assert.False(t, list.Contains(b))
}

func TestListingStatusValid(t *testing.T) {
	assert.True(t, ListingStatusAvailable.Valid())
	assert.True(t, ListingStatusPending.Valid())
	assert.True(t, ListingStatusTraded.Valid())
	assert.False(t, ListingStatus("bogus").Valid())
	assert.False(t, ListingStatus("").Valid())
}

func TestTradeOutcomeValid(t *testing.T) {
	assert.True(t, OutcomeCompleted.Valid())
	assert.True(t, OutcomePending.Valid())
	assert.True(t, OutcomeAvailable.Valid())
	assert.False(t, TradeOutcome("traded").Valid())
	assert.False(t, TradeOutcome("").Valid())
}
