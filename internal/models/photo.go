package models

import "time"

// PhotoSide tells which part of the proposal flow a photo belongs to:
// "before" photos are shown alongside the sentences, "after" photos in
// the gallery once the proposal is accepted.
type PhotoSide string

const (
	SideBefore PhotoSide = "before"
	SideAfter  PhotoSide = "after"
)

// Valid reports whether s is one of the two known sides.
func (s PhotoSide) Valid() bool {
	return s == SideBefore || s == SideAfter
}

// Photo is an uploaded image that has gone through the ingestion
// pipeline. FileURL is never mutated after creation; replacing a photo
// means delete + re-upload.
type Photo struct {
	ID                string    `json:"id"`
	CategoryID        string    `json:"category_id"`
	Side              PhotoSide `json:"side"`
	FileURL           string    `json:"file_url"`
	TelegramFileID    string    `json:"telegram_file_id,omitempty"`
	TelegramMessageID int64     `json:"telegram_message_id,omitempty"`
	FileSize          int64     `json:"file_size"`
	MimeType          string    `json:"mime_type"`
	UploadedAt        time.Time `json:"uploaded_at"`
}

// UploadAttempt carries one incoming file through a single ingestion
// call. It is never persisted.
type UploadAttempt struct {
	Content  []byte
	Filename string
	MimeType string
}

// UploadResponse is returned by the photo upload endpoint.
type UploadResponse struct {
	Success bool   `json:"success"`
	Photo   *Photo `json:"photo,omitempty"`
	Message string `json:"message"`
}
