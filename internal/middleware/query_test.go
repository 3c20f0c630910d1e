package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"paperdesk_backend/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shapedRequest runs the list-shaping chain against a URL and returns
// the status plus whatever query the terminal handler assembled.
func shapedRequest(t *testing.T, url string) (int, repositories.ListQuery, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var (
		captured repositories.ListQuery
		reached  bool
	)

	router := gin.New()
	handlers := append(ListShapingMiddleware(), func(c *gin.Context) {
		captured = ListQueryFromContext(c)
		reached = true
		c.Status(http.StatusOK)
	})
	router.GET("/items", handlers...)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(w, req)

	return w.Code, captured, reached
}

func TestListShapingDefaults(t *testing.T) {
	status, q, reached := shapedRequest(t, "/items")
	require.True(t, reached)
	assert.Equal(t, http.StatusOK, status)

	assert.Equal(t, repositories.DefaultPage, q.Page)
	assert.Equal(t, repositories.DefaultLimit, q.Limit)
	assert.Equal(t, "ASC", q.SortOrder)
	assert.Empty(t, q.Search)
	assert.Empty(t, q.Filters)
}

func TestSortOrderDescending(t *testing.T) {
	_, q, _ := shapedRequest(t, "/items?sortOrder=DESC")
	assert.Equal(t, "DESC", q.SortOrder)

	_, q, _ = shapedRequest(t, "/items?sortOrder=desc")
	assert.Equal(t, "DESC", q.SortOrder)

	// Anything else falls back to ascending.
	_, q, _ = shapedRequest(t, "/items?sortOrder=sideways")
	assert.Equal(t, "ASC", q.SortOrder)
}

func TestPaginationParsed(t *testing.T) {
	_, q, _ := shapedRequest(t, "/items?page=3&limit=25")
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 25, q.Limit)
}

func TestPaginationRejectsUnusableValues(t *testing.T) {
	for _, url := range []string{
		"/items?page=abc",
		"/items?limit=abc",
		"/items?page=0",
		"/items?limit=-5",
	} {
		status, _, reached := shapedRequest(t, url)
		assert.Equal(t, http.StatusBadRequest, status, url)
		assert.False(t, reached, url)
	}
}

func TestSearchIgnoresShortTerms(t *testing.T) {
	_, q, _ := shapedRequest(t, "/items?search=ab")
	assert.Empty(t, q.Search)

	_, q, _ = shapedRequest(t, "/items?search=abc")
	assert.Equal(t, "abc", q.Search)
}

func TestFiltersMustBeJSONObject(t *testing.T) {
	status, q, _ := shapedRequest(t, `/items?filters={"ispaid":true}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, q.Filters["ispaid"])

	status, _, reached := shapedRequest(t, "/items?filters=not-json")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, reached)
}
