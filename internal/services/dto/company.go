package dto

import "paperdesk_backend/internal/models"

type CompanyRequest struct {
	Name         string `json:"companyname" validate:"required"`
	Email        string `json:"companyemail" validate:"required,email"`
	Phone        string `json:"companyphone" validate:"required"`
	TwitterLink  string `json:"companytwitterlink"`
	FacebookLink string `json:"companyfacebooklink"`

	Logo   models.StoredFile   `json:"logo"`
	Images []models.StoredFile `json:"images"`
}

type AchievementRequest struct {
	OrdersCompleted   int `json:"orderscompleted" validate:"gte=0"`
	SatisfiedClients  int `json:"satisfiedclients" validate:"gte=0"`
	PositiveFeedbacks int `json:"positivefeedbacks" validate:"gte=0"`
	FreebiesReleased  int `json:"freebiesreleased" validate:"gte=0"`
}
