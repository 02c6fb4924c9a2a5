// internal/models/listing_test.go
package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageJSONRoundTrip(t *testing.T) {
	// A mixed array: legacy bare URL plus a rich upload record.
	raw := `["https://cdn.example.com/a.jpg",{"url":"https://cdn.example.com/b.jpg","filename":"b.jpg","mimetype":"image/jpeg","size":1234}]`

	var images ImageList
	require.NoError(t, json.Unmarshal([]byte(raw), &images))
	require.Len(t, images, 2)

	assert.Equal(t, ImageKindPlain, images[0].Kind)
	assert.Equal(t, "https://cdn.example.com/a.jpg", images[0].URL)

	assert.Equal(t, ImageKindRich, images[1].Kind)
	assert.Equal(t, "b.jpg", images[1].Filename)
	assert.EqualValues(t, 1234, images[1].Size)

	// Round trip keeps each entry in its original shape.
	out, err := json.Marshal(images)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestImageMarshalPlainIsString(t *testing.T) {
	out, err := json.Marshal(PlainImage("https://cdn.example.com/x.png"))
	require.NoError(t, err)
	assert.Equal(t, `"https://cdn.example.com/x.png"`, string(out))
}

func TestImageMarshalRichIsObject(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	img := Image{
		Kind:       ImageKindRich,
		URL:        "https://cdn.example.com/y.png",
		Filename:   "y.png",
		Mimetype:   "image/png",
		Size:       42,
		UploadedAt: &now,
	}

	out, err := json.Marshal(img)
	require.NoError(t, err)

	var back Image
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, ImageKindRich, back.Kind)
	assert.Equal(t, img.URL, back.URL)
	assert.Equal(t, img.Filename, back.Filename)
	require.NotNil(t, back.UploadedAt)
	assert.True(t, now.Equal(*back.UploadedAt))
}

func TestImageListValueScan(t *testing.T) {
	images := ImageList{
		PlainImage("https://cdn.example.com/a.jpg"),
		{Kind: ImageKindRich, URL: "https://cdn.example.com/b.jpg", Filename: "b.jpg"},
	}

	value, err := images.Value()
	require.NoError(t, err)

	var scanned ImageList
	require.NoError(t, scanned.Scan(value))
	require.Len(t, scanned, 2)
	assert.Equal(t, ImageKindPlain, scanned[0].Kind)
	assert.Equal(t, ImageKindRich, scanned[1].Kind)
	assert.Equal(t, "b.jpg", scanned[1].Filename)
}

func TestImageListNilValueIsEmptyArray(t *testing.T) {
	var images ImageList
	value, err := images.Value()
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(value.([]byte)))
}

func TestListingImageURLs(t *testing.T) {
	listing := Listing{
		Images: ImageList{
			PlainImage("https://cdn.example.com/a.jpg"),
			{Kind: ImageKindRich, URL: "https://cdn.example.com/b.jpg"},
			{Kind: ImageKindRich}, // no URL, skipped
		},
	}

	assert.Equal(t, []string{
		"https://cdn.example.com/a.jpg",
		"https://cdn.example.com/b.jpg",
	}, listing.ImageURLs())
}

func TestListingIsOwnedBy(t *testing.T) {
	owner := uuid.New()
	listing := Listing{UserID: owner}

	assert.True(t, listing.IsOwnedBy(owner))
	assert.False(t, listing.IsOwnedBy(uuid.New()))
}
