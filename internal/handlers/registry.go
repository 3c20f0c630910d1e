package handlers

import "paperdesk_backend/internal/models"

// AppHandlers bundles every handler the router registers.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	UserHandler    *UserHandler
	OrderHandler   *OrderHandler
	CatalogHandler *CatalogHandler
	CompanyHandler *CompanyHandler
	UploadHandler  *UploadHandler

	PageHandler  *ContentHandler[models.Page]
	PostHandler  *ContentHandler[models.Post]
	EssayHandler *ContentHandler[models.Essay]
	PhaseHandler *ContentHandler[models.Phase]
	PointHandler *ContentHandler[models.Point]
}
