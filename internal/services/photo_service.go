package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"proposal-backend/internal/models"
	"proposal-backend/internal/repository"
	"proposal-backend/internal/telegram"
	"proposal-backend/internal/upload"
)

var ErrInvalidSide = errors.New("side must be 'before' or 'after'")

// ObjectStore is the durable photo storage boundary, implemented by
// the telegram client.
type ObjectStore interface {
	Store(ctx context.Context, content []byte, mimeType string) (*telegram.StoredPhoto, error)
	Delete(ctx context.Context, messageID int64) error
}

// PhotoService runs the ingestion pipeline: validate, normalize, store
// in the channel, persist metadata.
type PhotoService struct {
	store repository.Store
	cdn   ObjectStore
}

func NewPhotoService(store repository.Store, cdn ObjectStore) *PhotoService {
	return &PhotoService{store: store, cdn: cdn}
}

// Ingest turns one upload attempt into a persisted Photo. Validation
// rejections return before any network call. A store failure aborts
// before the metadata write; a metadata failure after a successful
// store leaves an orphaned blob, which is logged and accepted.
func (s *PhotoService) Ingest(ctx context.Context, categoryID string, side models.PhotoSide, attempt models.UploadAttempt) (*models.Photo, error) {
	if !side.Valid() {
		return nil, ErrInvalidSide
	}
	if err := upload.Validate(attempt.Content, attempt.MimeType); err != nil {
		return nil, err
	}

	content, err := normalizePNG(attempt.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", upload.ErrCorrupt, err)
	}

	stored, err := s.cdn.Store(ctx, content, upload.AcceptedMimeType)
	if err != nil {
		return nil, err
	}

	photo := &models.Photo{
		ID:                uuid.New().String(),
		CategoryID:        categoryID,
		Side:              side,
		FileURL:           stored.FileURL,
		TelegramFileID:    stored.FileID,
		TelegramMessageID: stored.MessageID,
		FileSize:          stored.FileSize,
		MimeType:          stored.MimeType,
		UploadedAt:        time.Now().UTC(),
	}

	if err := s.store.AddPhoto(ctx, photo); err != nil {
		if stored.Mode == telegram.ModeExternal {
			log.Printf("metadata write for photo %s failed, blob orphaned in channel (message %d): %v",
				photo.ID, stored.MessageID, err)
		}
		return nil, err
	}
	return photo, nil
}

// RemovePhoto deletes the metadata record and, best-effort, the
// channel message behind it. A failed channel delete never blocks the
// metadata removal; an orphaned blob is acceptable, a metadata record
// pointing at nothing is not.
func (s *PhotoService) RemovePhoto(ctx context.Context, photoID string) error {
	photo, err := s.store.GetPhoto(ctx, photoID)
	if err != nil {
		return err
	}

	if err := s.cdn.Delete(ctx, photo.TelegramMessageID); err != nil {
		log.Printf("channel delete for photo %s failed, blob orphaned: %v", photoID, err)
	}

	return s.store.DeletePhoto(ctx, photoID)
}

// normalizePNG decodes and re-encodes the image so only well-formed
// PNG bytes ever reach storage.
func normalizePNG(content []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
