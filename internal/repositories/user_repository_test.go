package repositories

import (
	"testing"
	"time"

	"paperdesk_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	existing := createTestUser(t, db, nil)

	err := repo.Create(&models.User{
		FirstName:    "Copy",
		LastName:     "Cat",
		Email:        existing.Email,
		MobileNumber: "5559990001",
		Password:     "x",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	err = repo.Create(&models.User{
		FirstName:    "Copy",
		LastName:     "Cat",
		Email:        "fresh@test.local",
		MobileNumber: existing.MobileNumber,
		Password:     "x",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestFindByEmailIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	created := createTestUser(t, db, func(u *models.User) { u.Email = "Mixed.Case@Test.Local" })

	found, err := repo.FindByEmail("mixed.case@test.local")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestUpdateFieldsUnknownUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	err := repo.UpdateFields(999, map[string]interface{}{"is_active": true})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFindByActivationTokenHonorsExpiry(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	digest := "abc123digest"
	past := time.Now().Add(-1 * time.Hour)
	future := time.Now().Add(1 * time.Hour)

	expired := createTestUser(t, db, func(u *models.User) {
		u.ActivationToken = &digest
		u.ActivationExpire = &past
	})
	_ = expired

	_, err := repo.FindByActivationToken(digest)
	assert.ErrorIs(t, err, ErrUserNotFound)

	fresh := createTestUser(t, db, func(u *models.User) {
		freshDigest := "fresh-digest"
		u.ActivationToken = &freshDigest
		u.ActivationExpire = &future
	})

	found, err := repo.FindByActivationToken("fresh-digest")
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, found.ID)
}

func TestListFiltersAndSearch(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	createTestUser(t, db, func(u *models.User) {
		u.FirstName = "Alice"
		u.IsWriter = true
	})
	createTestUser(t, db, func(u *models.User) {
		u.FirstName = "Bob"
		u.IsActive = false
	})
	createTestUser(t, db, func(u *models.User) { u.FirstName = "Alicia" })

	q := NewListQuery()
	q.Filters = map[string]interface{}{"iswriter": true}
	users, total, err := repo.List(q)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0].FirstName)

	q = NewListQuery()
	q.Search = "Ali"
	_, total, err = repo.List(q)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	// Unknown filter keys are logged and ignored rather than failing
	// the query.
	records := captureLogs(t)
	q = NewListQuery()
	q.Filters = map[string]interface{}{"not_a_column": "boom"}
	_, total, err = repo.List(q)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.True(t, loggedFilterKey(records, "not_a_column"))
}

func TestFindWritersExcludesInactiveAndLocked(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	createTestUser(t, db, func(u *models.User) {
		u.FirstName = "Zoe"
		u.IsWriter = true
	})
	createTestUser(t, db, func(u *models.User) {
		u.FirstName = "Amy"
		u.IsWriter = true
	})
	createTestUser(t, db, func(u *models.User) {
		u.FirstName = "Dormant"
		u.IsWriter = true
		u.IsActive = false
	})
	createTestUser(t, db, func(u *models.User) {
		u.FirstName = "Banned"
		u.IsWriter = true
		u.IsLocked = true
	})
	createTestUser(t, db, func(u *models.User) { u.FirstName = "Customer" })

	writers, err := repo.FindWriters()
	require.NoError(t, err)
	require.Len(t, writers, 2)
	assert.Equal(t, "Amy", writers[0].FirstName)
	assert.Equal(t, "Zoe", writers[1].FirstName)
}
