package handlers

import (
	"paperdesk_backend/internal/middleware"
	"paperdesk_backend/internal/repositories"
	"paperdesk_backend/internal/services"
	"paperdesk_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ContentHandler is the shared HTTP surface for the flat editorial
// records. One generic handler serves pages, posts, essays, phases and
// points under their own route prefix. Reads are public, mutations are
// admin only.
type ContentHandler[T repositories.ContentEntity] struct {
	*BaseHandler
	service  services.ContentService[T]
	userRepo repositories.UserRepository
	prefix   string
}

func NewContentHandler[T repositories.ContentEntity](
	base *BaseHandler,
	service services.ContentService[T],
	userRepo repositories.UserRepository,
	prefix string,
) *ContentHandler[T] {
	return &ContentHandler[T]{
		BaseHandler: base,
		service:     service,
		userRepo:    userRepo,
		prefix:      prefix,
	}
}

func (h *ContentHandler[T]) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/"+h.prefix, append(middleware.ListShapingMiddleware(), h.List)...)
	r.GET("/"+h.prefix+"/all", h.All)
	r.GET("/"+h.prefix+"/:id", h.Get)

	admin := r.Group("/" + h.prefix)
	admin.Use(middleware.RequireAdmin(h.userRepo))
	{
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}

func (h *ContentHandler[T]) List(c *gin.Context) {
	result, err := h.service.List(middleware.ListQueryFromContext(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *ContentHandler[T]) All(c *gin.Context) {
	records, err := h.service.All()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"items": records})
}

func (h *ContentHandler[T]) Get(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	record, err := h.service.Get(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, record)
}

func (h *ContentHandler[T]) Create(c *gin.Context) {
	var req dto.ContentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	record, err := h.service.Create(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, record)
}

func (h *ContentHandler[T]) Update(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.ContentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	record, err := h.service.Update(id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, record)
}

func (h *ContentHandler[T]) Delete(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.service.Delete(id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OKMessage(c, "Record deleted")
}
