package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"paperdesk_backend/internal/auth"
	"paperdesk_backend/internal/config"
	"paperdesk_backend/internal/models"
	"paperdesk_backend/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newAuthTestRepo(t *testing.T) repositories.UserRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}))
	return repositories.NewUserRepository(db)
}

func installAuthTestConfig() {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "middleware-access-secret"
	cfg.JWT.RefreshSecret = "middleware-refresh-secret"
	cfg.JWT.AccessTTLMin = 5
	cfg.JWT.RefreshTTLHours = 1
	config.AppConfig = cfg
}

func seedGuardUser(t *testing.T, repo repositories.UserRepository, mutate func(*models.User)) *models.User {
	t.Helper()

	user := &models.User{
		FirstName:    "Guard",
		LastName:     "Case",
		Email:        "guard@test.local",
		MobileNumber: "5557770001",
		Password:     "hashed",
		IsActive:     true,
		IsCustomer:   true,
	}
	if mutate != nil {
		mutate(user)
	}
	require.NoError(t, repo.Create(user))
	return user
}

func accessTokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := auth.GenerateAccessToken(user.ID, user.Email, user.Capabilities())
	require.NoError(t, err)
	return token
}

func guardedRequest(t *testing.T, guard gin.HandlerFunc, token string) (int, *models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen *models.User
	router := gin.New()
	router.GET("/protected", guard, func(c *gin.Context) {
		seen = CurrentUser(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)

	return w.Code, seen
}

func TestRequireUserAcceptsValidToken(t *testing.T) {
	installAuthTestConfig()
	repo := newAuthTestRepo(t)
	user := seedGuardUser(t, repo, nil)

	status, seen := guardedRequest(t, RequireUser(repo), accessTokenFor(t, user))
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, seen)
	assert.Equal(t, user.ID, seen.ID)
}

func TestRequireUserRejectsMissingToken(t *testing.T) {
	installAuthTestConfig()
	repo := newAuthTestRepo(t)

	status, _ := guardedRequest(t, RequireUser(repo), "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRequireUserRejectsGarbageToken(t *testing.T) {
	installAuthTestConfig()
	repo := newAuthTestRepo(t)

	status, _ := guardedRequest(t, RequireUser(repo), "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRequireUserReloadsAccountState(t *testing.T) {
	installAuthTestConfig()
	repo := newAuthTestRepo(t)
	user := seedGuardUser(t, repo, nil)
	token := accessTokenFor(t, user)

	// Deactivating after issuing the token must still shut the door.
	require.NoError(t, repo.UpdateFields(user.ID, map[string]interface{}{"is_active": false}))

	status, _ := guardedRequest(t, RequireUser(repo), token)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRequireAdminRejectsRegularUser(t *testing.T) {
	installAuthTestConfig()
	repo := newAuthTestRepo(t)
	user := seedGuardUser(t, repo, nil)

	status, _ := guardedRequest(t, RequireAdmin(repo), accessTokenFor(t, user))
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRequireWriterAdmitsWriter(t *testing.T) {
	installAuthTestConfig()
	repo := newAuthTestRepo(t)
	writer := seedGuardUser(t, repo, func(u *models.User) { u.IsWriter = true })

	status, seen := guardedRequest(t, RequireWriter(repo), accessTokenFor(t, writer))
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, seen)
	assert.True(t, seen.IsWriter)
}
