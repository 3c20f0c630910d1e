package dto

// ContentRequest is the shared create/update payload for the flat
// editorial records (pages, posts, essays, phases, points).
type ContentRequest struct {
	Name        string `json:"name" validate:"required,min=3"`
	Description string `json:"description" validate:"required"`
}
