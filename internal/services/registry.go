package services

import (
	"paperdesk_backend/internal/models"
)

// ServiceContainer bundles every service the handlers depend on.
type ServiceContainer struct {
	AuthService      AuthService
	UserService      UserService
	CatalogService   CatalogService
	OrderService     OrderService
	BundleService    BundleService
	UploadService    UploadService
	SingletonService SingletonService

	PageService  ContentService[models.Page]
	PostService  ContentService[models.Post]
	EssayService ContentService[models.Essay]
	PhaseService ContentService[models.Phase]
	PointService ContentService[models.Point]
}
