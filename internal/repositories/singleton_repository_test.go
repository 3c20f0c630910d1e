package repositories

import (
	"testing"

	"paperdesk_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyUpsertKeepsSingleRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewSingletonRepository(db)

	_, err := repo.GetCompany()
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	first, err := repo.UpsertCompany(&models.Company{Name: "PaperDesk", Email: "hello@paperdesk.local"})
	require.NoError(t, err)

	second, err := repo.UpsertCompany(&models.Company{Name: "PaperDesk Rebranded", Email: "new@paperdesk.local"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Company{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	current, err := repo.GetCompany()
	require.NoError(t, err)
	assert.Equal(t, "PaperDesk Rebranded", current.Name)
}

func TestDirectCreateRejectedOnceRowExists(t *testing.T) {
	db := newTestDB(t)
	repo := NewSingletonRepository(db)

	_, err := repo.UpsertCompany(&models.Company{Name: "PaperDesk", Email: "hello@paperdesk.local"})
	require.NoError(t, err)

	// The model hook holds the single-row invariant even for callers
	// that bypass the upsert path.
	err = db.Create(&models.Company{Name: "Imposter", Email: "dup@paperdesk.local"}).Error
	assert.ErrorIs(t, err, models.ErrSingletonExists)

	_, err = repo.UpsertAchievement(&models.Achievement{OrdersCompleted: 5})
	require.NoError(t, err)

	err = db.Create(&models.Achievement{OrdersCompleted: 99}).Error
	assert.ErrorIs(t, err, models.ErrSingletonExists)

	var count int64
	require.NoError(t, db.Model(&models.Company{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAchievementUpsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewSingletonRepository(db)

	_, err := repo.GetAchievement()
	assert.ErrorIs(t, err, ErrAchievementNotFound)

	first, err := repo.UpsertAchievement(&models.Achievement{OrdersCompleted: 10})
	require.NoError(t, err)

	updated, err := repo.UpsertAchievement(&models.Achievement{OrdersCompleted: 25, SatisfiedClients: 12})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)

	current, err := repo.GetAchievement()
	require.NoError(t, err)
	assert.Equal(t, 25, current.OrdersCompleted)
	assert.Equal(t, 12, current.SatisfiedClients)
}

func TestContentRepositoryCRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewContentRepository[models.Page](db)

	page := models.Page{Name: "About Us", Description: "Who we are"}
	require.NoError(t, repo.Create(&page))
	assert.Equal(t, "about-us", page.Link)

	found, err := repo.FindByID(page.ID)
	require.NoError(t, err)
	assert.Equal(t, "About Us", found.Name)

	found.Description = "Updated"
	require.NoError(t, repo.Save(found))

	q := NewListQuery()
	q.Search = "About"
	pages, total, err := repo.List(q)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, pages, 1)

	require.NoError(t, repo.Delete(page.ID))
	_, err = repo.FindByID(page.ID)
	assert.ErrorIs(t, err, ErrContentNotFound)
}
