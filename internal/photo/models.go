package photo

import (
	"fmt"
	"time"
)

// Photo is an uploaded image record. It is created atomically with its
// blob write and never mutated afterwards.
type Photo struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	StorageKey  string    `bson:"storageKey" json:"storageKey"`
	URL         string    `bson:"url" json:"url"`
	Caption     string    `bson:"caption,omitempty" json:"caption,omitempty"`
	ContentType string    `bson:"contentType" json:"contentType"`
	SizeBytes   int64     `bson:"sizeBytes" json:"sizeBytes"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// StorageKey derives the blob key for a photo. The key is unique per
// photo and never reused: photoID is freshly generated per upload.
func StorageKey(userID, photoID string) string {
	return fmt.Sprintf("photos/%s/%s", userID, photoID)
}
