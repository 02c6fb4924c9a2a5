// internal/models/listing.go
package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type ImageKind string

const (
	ImageKindPlain ImageKind = "plain"
	ImageKindRich  ImageKind = "rich"
)

// Image is either a bare URL string (legacy listings) or a rich upload
// record. The wire shape is the discriminant: plain images marshal back to
// a JSON string, rich ones to an object, so old documents survive a
// read-modify-write cycle unchanged.
type Image struct {
	Kind       ImageKind  `json:"-"`
	URL        string     `json:"url"`
	Filename   string     `json:"filename,omitempty"`
	Mimetype   string     `json:"mimetype,omitempty"`
	Size       int64      `json:"size,omitempty"`
	UploadedAt *time.Time `json:"uploadedAt,omitempty"`
}

func PlainImage(url string) Image {
	return Image{Kind: ImageKindPlain, URL: url}
}

func (img Image) MarshalJSON() ([]byte, error) {
	if img.Kind != ImageKindRich {
		return json.Marshal(img.URL)
	}
	type rich Image
	return json.Marshal(rich(img))
}

func (img *Image) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var url string
		if err := json.Unmarshal(data, &url); err != nil {
			return err
		}
		*img = Image{Kind: ImageKindPlain, URL: url}
		return nil
	}

	type rich Image
	var r rich
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*img = Image(r)
	img.Kind = ImageKindRich
	return nil
}

// ImageList is stored as a JSONB array mixing strings and objects.
type ImageList []Image

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]Image{})
	}
	return json.Marshal(l)
}

func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported image list source type")
	}

	return json.Unmarshal(data, l)
}

type Listing struct {
	BaseModel
	UserID      uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	Title       string        `json:"title" gorm:"size:255;not null"`
	Description string        `json:"description" gorm:"type:text;not null"`
	Category    string        `json:"category" gorm:"size:100;not null;index"`
	Condition   string        `json:"condition,omitempty" gorm:"size:100"`
	Location    string        `json:"location,omitempty" gorm:"size:255"`
	Images      ImageList     `json:"images" gorm:"type:jsonb"`
	Status      ListingStatus `json:"status" gorm:"type:varchar(20);default:'available';index"`

	// Relationships
	Owner User `json:"owner,omitempty" gorm:"foreignKey:UserID"`
}

func (l *Listing) IsOwnedBy(actorID uuid.UUID) bool {
	return l.UserID == actorID
}

// ImageURLs returns the normalized URL sequence regardless of which image
// form each entry uses.
func (l *Listing) ImageURLs() []string {
	urls := make([]string, 0, len(l.Images))
	for _, img := range l.Images {
		if img.URL != "" {
			urls = append(urls, img.URL)
		}
	}
	return urls
}
