package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proposal-backend/internal/models"
	"proposal-backend/internal/repository"
)

func TestCreateCategoryRequiresName(t *testing.T) {
	svc := NewCategoryService(repository.NewMemory(), &fakeCDN{})

	_, err := svc.Create(context.Background(), models.CreateCategoryRequest{Name: "  "})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestUpdateCategoryPartialFields(t *testing.T) {
	store := repository.NewMemory()
	svc := NewCategoryService(store, &fakeCDN{})
	cat := seedCategory(t, store, "first", "second")

	name := "renamed"
	updated, err := svc.Update(context.Background(), cat.ID, models.UpdateCategoryRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, []string{"first", "second"}, updated.Sentences, "sentences untouched")
}

func TestUpdateCategoryNoFields(t *testing.T) {
	store := repository.NewMemory()
	svc := NewCategoryService(store, &fakeCDN{})
	cat := seedCategory(t, store, "first")

	_, err := svc.Update(context.Background(), cat.ID, models.UpdateCategoryRequest{})
	assert.ErrorIs(t, err, ErrNoFields)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	svc := NewCategoryService(repository.NewMemory(), &fakeCDN{})
	name := "x"
	_, err := svc.Update(context.Background(), "missing", models.UpdateCategoryRequest{Name: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteCategoryCleansUpChannel(t *testing.T) {
	store := repository.NewMemory()
	cdn := &fakeCDN{}
	svc := NewCategoryService(store, cdn)
	cat := seedCategory(t, store, "a sentence")
	ingestPhoto(t, store, cdn, cat.ID, models.SideBefore)
	ingestPhoto(t, store, cdn, cat.ID, models.SideAfter)

	require.NoError(t, svc.Delete(context.Background(), cat.ID))

	assert.Equal(t, 2, cdn.deleteCalls)
	_, err := store.GetCategory(context.Background(), cat.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteCategorySurvivesChannelFailure(t *testing.T) {
	store := repository.NewMemory()
	seedCDN := &fakeCDN{}
	cat := seedCategory(t, store, "a sentence")
	ingestPhoto(t, store, seedCDN, cat.ID, models.SideBefore)

	failing := &fakeCDN{deleteErr: assert.AnError}
	svc := NewCategoryService(store, failing)
	require.NoError(t, svc.Delete(context.Background(), cat.ID))

	_, err := store.GetCategory(context.Background(), cat.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
