package models

import "time"

// Image is an uploaded cover image, stored on local disk and addressed by
// content hash. The same bytes uploaded twice resolve to one record.
type Image struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Hash       string    `gorm:"size:64;uniqueIndex;not null" json:"hash"`
	UploaderID uint      `gorm:"not null;index" json:"uploader_id"`
	MimeType   string    `gorm:"size:64" json:"mime_type"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	SizeBytes  int64     `json:"size_bytes"`
	Path       string    `json:"-"`
	WebPPath   string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
