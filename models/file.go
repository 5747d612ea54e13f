package models

import "time"

// StoredFile describes a blob uploaded by a user.
type StoredFile struct {
	// Name is the file name inside the owner's namespace.
	Name string `json:"name"`

	// URL is a time-limited signed URL for reading the blob.
	URL string `json:"url"`

	// Size is the blob size in bytes, when known.
	Size int64 `json:"size,omitempty"`

	// UploadedAt is the blob's last-modified time, when known.
	UploadedAt *time.Time `json:"uploaded_at,omitempty"`
}
