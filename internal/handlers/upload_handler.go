package handlers

import (
	"paperdesk_backend/internal/middleware"
	"paperdesk_backend/internal/repositories"
	"paperdesk_backend/internal/services"
	"paperdesk_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
	userRepo      repositories.UserRepository
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService, userRepo repositories.UserRepository) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
		userRepo:      userRepo,
	}
}

func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup) {
	uploads := r.Group("/uploads")
	uploads.Use(middleware.RequireUser(h.userRepo))
	{
		uploads.POST("/documents", h.Upload)
		uploads.POST("/media", h.UploadMedia)
		uploads.DELETE("/documents", h.Delete)
	}
}

// Upload accepts one multipart file under the "document" field and an
// optional "folder" field, and returns the stored file descriptor the
// client embeds in a subsequent order request.
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("document")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("A file is required under the 'document' field"))
		return
	}

	folder := c.PostForm("folder")
	if folder == "" {
		folder = "documents"
	}

	stored, err := h.uploadService.UploadDocument(c.Request.Context(), folder, header)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, stored)
}

// UploadMedia stores site imagery (content pages, company branding)
// under the media folder.
func (h *UploadHandler) UploadMedia(c *gin.Context) {
	header, err := c.FormFile("media")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("A file is required under the 'media' field"))
		return
	}

	stored, err := h.uploadService.UploadDocument(c.Request.Context(), "media", header)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, stored)
}

func (h *UploadHandler) Delete(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("A document key is required"))
		return
	}

	if err := h.uploadService.DeleteDocument(c.Request.Context(), key); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OKMessage(c, "Document deleted")
}
