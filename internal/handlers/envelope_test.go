package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"paperdesk_backend/internal/models"
	"paperdesk_backend/internal/repositories"
	"paperdesk_backend/internal/services"
	"paperdesk_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newCatalogRouter wires a real catalog handler over an in-memory
// database, enough surface to exercise the response envelope end to end.
func newCatalogRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Level{}, &models.Paper{}, &models.PaperType{},
	))

	base := NewBaseHandler(validator.New())
	handler := NewCatalogHandler(
		base,
		services.NewCatalogService(repositories.NewCatalogRepository(db)),
		repositories.NewUserRepository(db),
	)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router, db
}

func getJSON(t *testing.T, router *gin.Engine, url string) (int, map[string]interface{}) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestSuccessResponsesUseEnvelope(t *testing.T) {
	router, db := newCatalogRouter(t)

	level := models.Level{Name: "Undergraduate", Description: "Bachelor level", PricePerPage: 10}
	require.NoError(t, db.Create(&level).Error)

	status, body := getJSON(t, router, "/api/v1/levels/1")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "data must carry the entity, got %v", body)
	assert.Equal(t, "Undergraduate", data["levelname"])
}

func TestListResponsesUseEnvelope(t *testing.T) {
	router, db := newCatalogRouter(t)

	require.NoError(t, db.Create(&models.Level{Name: "Masters", Description: "Graduate level", PricePerPage: 15}).Error)

	status, body := getJSON(t, router, "/api/v1/levels")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 1, data["totalCount"])
}

func TestErrorResponsesKeepEnvelope(t *testing.T) {
	router, _ := newCatalogRouter(t)

	status, body := getJSON(t, router, "/api/v1/levels/999")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
	assert.NotNil(t, body["error"])
	assert.Nil(t, body["data"])
}
