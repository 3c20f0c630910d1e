package handlers

import (
	"net/http"

	"paperdesk_backend/internal/services"
	"paperdesk_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/activate/:activationToken/:id", h.Activate)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.PUT("/reset-password/:resetToken/:id", h.ResetPassword)
		auth.POST("/refresh", h.Refresh)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.authService.Register(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "Account registered. Check your email for the activation link.",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tokens, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, dto.LoginResponse{User: *tokens})
}

func (h *AuthHandler) Activate(c *gin.Context) {
	userID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.authService.ActivateAccount(c.Param("activationToken"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OKMessage(c, "Account activated successfully")
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OKMessage(c, "Password reset email sent")
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	userID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.ResetPasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(c.Param("resetToken"), userID, req.Password); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OKMessage(c, "Password has been reset")
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tokens, err := h.authService.RefreshToken(req.Refresh, req.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, dto.LoginResponse{User: *tokens})
}
