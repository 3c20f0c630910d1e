package handlers

import (
	"paperdesk_backend/internal/middleware"
	"paperdesk_backend/internal/repositories"
	"paperdesk_backend/internal/services"
	"paperdesk_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
	userRepo    repositories.UserRepository
}

func NewUserHandler(base *BaseHandler, userService services.UserService, userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		userRepo:    userRepo,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	users.Use(middleware.RequireAdmin(h.userRepo))
	{
		users.GET("", append(middleware.ListShapingMiddleware(), h.List)...)
		users.GET("/writers", h.Writers)
		users.GET("/:id", h.Get)
		users.PATCH("/:id", h.UpdateFlags)
		users.DELETE("/:id", h.Delete)
	}
}

func (h *UserHandler) List(c *gin.Context) {
	result, err := h.userService.List(middleware.ListQueryFromContext(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, result)
}

func (h *UserHandler) Writers(c *gin.Context) {
	writers, err := h.userService.ListWriters()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"writers": writers})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	user, err := h.userService.GetByID(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, user)
}

func (h *UserHandler) UpdateFlags(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateUserFlagsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateFlags(id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.userService.Delete(id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OKMessage(c, "User deleted")
}
