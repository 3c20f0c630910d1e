package handlers

import (
	"paperdesk_backend/internal/middleware"
	"paperdesk_backend/internal/repositories"
	"paperdesk_backend/internal/services"
	"paperdesk_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// CompanyHandler exposes the single-row company profile and public
// achievements counters.
type CompanyHandler struct {
	*BaseHandler
	singletonService services.SingletonService
	userRepo         repositories.UserRepository
}

func NewCompanyHandler(base *BaseHandler, singletonService services.SingletonService, userRepo repositories.UserRepository) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:      base,
		singletonService: singletonService,
		userRepo:         userRepo,
	}
}

func (h *CompanyHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/company", h.GetCompany)
	r.GET("/achievements", h.GetAchievement)

	admin := r.Group("")
	admin.Use(middleware.RequireAdmin(h.userRepo))
	{
		admin.PUT("/company", h.SaveCompany)
		admin.PUT("/achievements", h.SaveAchievement)
	}
}

func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.singletonService.GetCompany()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, company)
}

func (h *CompanyHandler) SaveCompany(c *gin.Context) {
	var req dto.CompanyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	company, err := h.singletonService.SaveCompany(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, company)
}

func (h *CompanyHandler) GetAchievement(c *gin.Context) {
	achievement, err := h.singletonService.GetAchievement()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, achievement)
}

func (h *CompanyHandler) SaveAchievement(c *gin.Context) {
	var req dto.AchievementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	achievement, err := h.singletonService.SaveAchievement(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, achievement)
}
