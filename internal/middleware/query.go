package middleware

import (
	"encoding/json"
	"strconv"
	"strings"

	"paperdesk_backend/internal/repositories"
	"paperdesk_backend/pkg/apperrors"
	"paperdesk_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// MinSearchLength is the shortest search term acted upon; anything
// shorter is silently ignored.
const MinSearchLength = 3

// SortOrderMiddleware resolves ?sortOrder= to ASC or DESC, defaulting
// to ascending.
func SortOrderMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sortOrder := "ASC"
		if strings.EqualFold(c.Query("sortOrder"), "desc") {
			sortOrder = "DESC"
		}

		c.Set(string(contextkeys.SortOrderKey), sortOrder)
		c.Next()
	}
}

type pagination struct {
	Page  int
	Limit int
}

// PaginationMiddleware parses ?page= and ?limit=. Absent parameters get
// the defaults; present but unusable ones are a client error.
func PaginationMiddleware(defaultPage, defaultLimit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, ok := intQuery(c, "page", defaultPage)
		if !ok {
			apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid pagination parameters"))
			c.Abort()
			return
		}

		limit, ok := intQuery(c, "limit", defaultLimit)
		if !ok {
			apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid pagination parameters"))
			c.Abort()
			return
		}

		if page < 1 || limit < 1 {
			apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid pagination parameters"))
			c.Abort()
			return
		}

		c.Set(string(contextkeys.PaginationKey), pagination{Page: page, Limit: limit})
		c.Next()
	}
}

func intQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

// SearchMiddleware captures ?search= terms of at least MinSearchLength
// characters.
func SearchMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if search := c.Query("search"); len(search) >= MinSearchLength {
			c.Set(string(contextkeys.SearchKey), search)
		}
		c.Next()
	}
}

// FilterMiddleware parses ?filters= as a JSON object. Malformed JSON or
// a non-object value is a client error; unknown keys are left for the
// repository layer to ignore.
func FilterMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("filters")
		if raw == "" {
			c.Next()
			return
		}

		var criteria map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &criteria); err != nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError("Filter criteria must be a JSON object"))
			c.Abort()
			return
		}

		c.Set(string(contextkeys.FiltersKey), criteria)
		c.Next()
	}
}

// ListShapingMiddleware is the standard chain for paginated list
// endpoints.
func ListShapingMiddleware() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		SortOrderMiddleware(),
		PaginationMiddleware(repositories.DefaultPage, repositories.DefaultLimit),
		SearchMiddleware(),
		FilterMiddleware(),
	}
}

// ListQueryFromContext assembles the repository query from whatever the
// shaping middleware stored on the request.
func ListQueryFromContext(c *gin.Context) repositories.ListQuery {
	q := repositories.NewListQuery()

	if value, exists := c.Get(string(contextkeys.SortOrderKey)); exists {
		if sortOrder, ok := value.(string); ok {
			q.SortOrder = sortOrder
		}
	}
	if value, exists := c.Get(string(contextkeys.PaginationKey)); exists {
		if p, ok := value.(pagination); ok {
			q.Page = p.Page
			q.Limit = p.Limit
		}
	}
	if value, exists := c.Get(string(contextkeys.SearchKey)); exists {
		if search, ok := value.(string); ok {
			q.Search = search
		}
	}
	if value, exists := c.Get(string(contextkeys.FiltersKey)); exists {
		if filters, ok := value.(map[string]interface{}); ok {
			q.Filters = filters
		}
	}

	return q
}
