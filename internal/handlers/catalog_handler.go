package handlers

import (
	"paperdesk_backend/internal/middleware"
	"paperdesk_backend/internal/repositories"
	"paperdesk_backend/internal/services"
	"paperdesk_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the pricing reference entities: education
// levels, paper categories and paper types. Reads are public so the
// order form can be rendered without a session; mutations are admin
// only.
type CatalogHandler struct {
	*BaseHandler
	catalogService services.CatalogService
	userRepo       repositories.UserRepository
}

func NewCatalogHandler(base *BaseHandler, catalogService services.CatalogService, userRepo repositories.UserRepository) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    base,
		catalogService: catalogService,
		userRepo:       userRepo,
	}
}

func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/levels", append(middleware.ListShapingMiddleware(), h.ListLevels)...)
	r.GET("/levels/all", h.AllLevels)
	r.GET("/levels/:id", h.GetLevel)

	r.GET("/papers", append(middleware.ListShapingMiddleware(), h.ListPapers)...)
	r.GET("/papers/all", h.AllPapers)
	r.GET("/papers/:id", h.GetPaper)

	r.GET("/papertypes", append(middleware.ListShapingMiddleware(), h.ListPaperTypes)...)
	r.GET("/papertypes/all", h.AllPaperTypes)
	r.GET("/papertypes/:id", h.GetPaperType)

	admin := r.Group("")
	admin.Use(middleware.RequireAdmin(h.userRepo))
	{
		admin.POST("/levels", h.CreateLevel)
		admin.PUT("/levels/:id", h.UpdateLevel)
		admin.DELETE("/levels/:id", h.DeleteLevel)

		admin.POST("/papers", h.CreatePaper)
		admin.PUT("/papers/:id", h.UpdatePaper)
		admin.DELETE("/papers/:id", h.DeletePaper)

		admin.POST("/papertypes", h.CreatePaperType)
		admin.PUT("/papertypes/:id", h.UpdatePaperType)
		admin.DELETE("/papertypes/:id", h.DeletePaperType)
	}
}

// --- Levels ---

func (h *CatalogHandler) ListLevels(c *gin.Context) {
	result, err := h.catalogService.ListLevels(middleware.ListQueryFromContext(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *CatalogHandler) AllLevels(c *gin.Context) {
	levels, err := h.catalogService.AllLevels()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"levels": levels})
}

func (h *CatalogHandler) GetLevel(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	level, err := h.catalogService.GetLevel(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, level)
}

func (h *CatalogHandler) CreateLevel(c *gin.Context) {
	var req dto.LevelRequest
	if !h.BindJSON(c, &req) {
		return
	}

	level, err := h.catalogService.CreateLevel(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, level)
}

func (h *CatalogHandler) UpdateLevel(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.LevelRequest
	if !h.BindJSON(c, &req) {
		return
	}

	level, err := h.catalogService.UpdateLevel(id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, level)
}

func (h *CatalogHandler) DeleteLevel(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.catalogService.DeleteLevel(id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OKMessage(c, "Level deleted")
}

// --- Papers ---

func (h *CatalogHandler) ListPapers(c *gin.Context) {
	result, err := h.catalogService.ListPapers(middleware.ListQueryFromContext(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *CatalogHandler) AllPapers(c *gin.Context) {
	papers, err := h.catalogService.AllPapers()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"papers": papers})
}

func (h *CatalogHandler) GetPaper(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	paper, err := h.catalogService.GetPaper(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, paper)
}

func (h *CatalogHandler) CreatePaper(c *gin.Context) {
	var req dto.PaperRequest
	if !h.BindJSON(c, &req) {
		return
	}

	paper, err := h.catalogService.CreatePaper(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, paper)
}

func (h *CatalogHandler) UpdatePaper(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.PaperRequest
	if !h.BindJSON(c, &req) {
		return
	}

	paper, err := h.catalogService.UpdatePaper(id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, paper)
}

func (h *CatalogHandler) DeletePaper(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.catalogService.DeletePaper(id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OKMessage(c, "Paper deleted")
}

// --- Paper types ---

func (h *CatalogHandler) ListPaperTypes(c *gin.Context) {
	result, err := h.catalogService.ListPaperTypes(middleware.ListQueryFromContext(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *CatalogHandler) AllPaperTypes(c *gin.Context) {
	types, err := h.catalogService.AllPaperTypes()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"papertypes": types})
}

func (h *CatalogHandler) GetPaperType(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	pt, err := h.catalogService.GetPaperType(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, pt)
}

func (h *CatalogHandler) CreatePaperType(c *gin.Context) {
	var req dto.PaperTypeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	pt, err := h.catalogService.CreatePaperType(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, pt)
}

func (h *CatalogHandler) UpdatePaperType(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.PaperTypeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	pt, err := h.catalogService.UpdatePaperType(id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, pt)
}

func (h *CatalogHandler) DeletePaperType(c *gin.Context) {
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.catalogService.DeletePaperType(id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OKMessage(c, "Paper type deleted")
}
