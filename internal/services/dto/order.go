package dto

import "paperdesk_backend/internal/models"

type CreateOrderRequest struct {
	LevelID     uint   `json:"levelId" validate:"required"`
	PaperID     uint   `json:"paperId" validate:"required"`
	PaperTypeID uint   `json:"typeId" validate:"required"`
	Title       string `json:"ordertitle" validate:"required,min=3"`
	Description string `json:"orderdescription" validate:"required"`

	SpacingID  int `json:"orderspace" validate:"required"`
	DeadlineID int `json:"orderdeadline" validate:"required"`
	LanguageID int `json:"orderlanguage" validate:"required"`
	FormatID   int `json:"orderformat" validate:"required"`

	Pages   int `json:"orderpages" validate:"required,gt=0"`
	Sources int `json:"ordersources" validate:"gte=0"`

	DefaultDocument models.StoredFile   `json:"orderdefaultdocument"`
	Documents       []models.StoredFile `json:"orderdocuments"`
}

// UpdateOrderRequest covers the customer-editable fields after creation.
type UpdateOrderRequest struct {
	Description     string              `json:"orderdescription" validate:"required"`
	DefaultDocument models.StoredFile   `json:"orderdefaultdocument"`
	Documents       []models.StoredFile `json:"orderdocuments"`
}

// SubmitOrderRequest carries the writer's deliverables.
type SubmitOrderRequest struct {
	DefaultDocument models.StoredFile   `json:"orderdefaultuploaddocument"`
	Documents       []models.StoredFile `json:"orderuploaddocuments"`
}

type PayOrderRequest struct {
	OrderID   uint   `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
}

type AssignOrderRequest struct {
	OrderID  uint `json:"orderId" validate:"required"`
	WriterID uint `json:"userId" validate:"required"`
}

// OrderOptions lists the fixed order attribute catalogs for form
// rendering.
type OrderOptions struct {
	Spacing   []models.Choice       `json:"spacing"`
	Deadlines []models.PricedChoice `json:"deadlines"`
	Languages []models.Choice       `json:"languages"`
	Formats   []models.Choice       `json:"formats"`
	Statuses  []models.Choice       `json:"statuses"`
	Payments  []models.Choice       `json:"payments"`
}
