package contextkeys

// Custom key type avoids collisions with other packages storing values
// on the same context.
type contextKey string

// DBContextKey is the key under which the request-scoped *gorm.DB handle
// (the pool, or a transaction in tests) is stored.
const DBContextKey = contextKey("db")

// Query-shaping keys set by the middleware in internal/middleware and
// read by handlers.
const (
	SortOrderKey  = contextKey("sort_order")
	PaginationKey = contextKey("pagination")
	SearchKey     = contextKey("search")
	FiltersKey    = contextKey("filters")
)
