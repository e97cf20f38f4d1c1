package model

import (
	"time"

	"github.com/google/uuid"
)

// Attachment references an externally addressable blob; binary content is
// never stored inline.
type Attachment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	MessageID   uuid.UUID `db:"message_id" json:"message_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	ByteSize    int64     `db:"byte_size" json:"byte_size"`
	MimeType    string    `db:"mime_type" json:"mime_type"`
	URL         string    `db:"url" json:"url"`
	StoragePath string    `db:"storage_path" json:"storage_path"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// FileUpload is the caller-supplied descriptor for an upload; the blob
// itself is written by the (out-of-scope) storage layer.
type FileUpload struct {
	FileName    string `json:"file_name"`
	ByteSize    int64  `json:"byte_size"`
	MimeType    string `json:"mime_type"`
	URL         string `json:"url"`
	StoragePath string `json:"storage_path"`
}
