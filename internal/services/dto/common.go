package dto

// PaginatedResult is the envelope all paginated list endpoints return.
type PaginatedResult struct {
	TotalCount int64       `json:"totalCount"`
	Count      int         `json:"count"`
	Items      interface{} `json:"items"`
}
