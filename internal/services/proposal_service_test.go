package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proposal-backend/internal/models"
	"proposal-backend/internal/repository"
)

func ingestPhoto(t *testing.T, store repository.Store, cdn ObjectStore, categoryID string, side models.PhotoSide) *models.Photo {
	t.Helper()
	photo, err := NewPhotoService(store, cdn).Ingest(context.Background(), categoryID, side, models.UploadAttempt{
		Content: validPNG(t), MimeType: "image/png",
	})
	require.NoError(t, err)
	return photo
}

func TestPickRandomReturnsTheOnlyCompleteCategory(t *testing.T) {
	store := repository.NewMemory()
	cdn := &fakeCDN{}

	seedCategory(t, store, "a sentence") // no photos at all
	blank := seedCategory(t, store, "   ", "\t")
	ingestPhoto(t, store, cdn, blank.ID, models.SideBefore)
	afterOnly := seedCategory(t, store, "a sentence")
	ingestPhoto(t, store, cdn, afterOnly.ID, models.SideAfter)
	complete := seedCategory(t, store, "a sentence")
	ingestPhoto(t, store, cdn, complete.ID, models.SideBefore)

	svc := NewProposalService(store)
	for i := 0; i < 10; i++ {
		res, err := svc.PickRandom(context.Background())
		require.NoError(t, err)
		assert.Equal(t, complete.ID, res.Category.ID)
		require.Len(t, res.Category.PhotosBefore, 1)
	}
}

func TestPickRandomEmptyPool(t *testing.T) {
	svc := NewProposalService(repository.NewMemory())

	_, err := svc.PickRandom(context.Background())
	assert.ErrorIs(t, err, ErrNoCompleteCategories)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}

func TestPickRandomIncludesMusicSettings(t *testing.T) {
	store := repository.NewMemory()
	cdn := &fakeCDN{}
	cat := seedCategory(t, store, "a sentence")
	ingestPhoto(t, store, cdn, cat.ID, models.SideBefore)

	before := "https://youtube.com/watch?v=before"
	_, err := NewSettingsService(store).Update(context.Background(), models.UpdateSettingsRequest{
		BeforeAcceptMusic: &before,
	})
	require.NoError(t, err)

	res, err := NewProposalService(store).PickRandom(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, res.MusicBefore)
	assert.Empty(t, res.MusicAfter)
}

func TestDeletedPhotoLeavesSelectionPool(t *testing.T) {
	store := repository.NewMemory()
	cdn := &fakeCDN{deleteErr: errors.New("channel down")}
	cat := seedCategory(t, store, "a sentence")
	photo := ingestPhoto(t, store, cdn, cat.ID, models.SideBefore)

	svc := NewProposalService(store)
	_, err := svc.PickRandom(context.Background())
	require.NoError(t, err)

	// store delete fails, photo must still disappear from serving
	require.NoError(t, NewPhotoService(store, cdn).RemovePhoto(context.Background(), photo.ID))

	_, err = svc.PickRandom(context.Background())
	assert.ErrorIs(t, err, ErrNoCompleteCategories)
}
