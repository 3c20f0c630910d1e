package handlers

import (
	"paperdesk_backend/internal/middleware"
	"paperdesk_backend/internal/repositories"
	"paperdesk_backend/internal/services"
	"paperdesk_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	*BaseHandler
	orderService  services.OrderService
	bundleService services.BundleService
	userRepo      repositories.UserRepository
}

func NewOrderHandler(
	base *BaseHandler,
	orderService services.OrderService,
	bundleService services.BundleService,
	userRepo repositories.UserRepository,
) *OrderHandler {
	return &OrderHandler{
		BaseHandler:   base,
		orderService:  orderService,
		bundleService: bundleService,
		userRepo:      userRepo,
	}
}

func (h *OrderHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/orders/options", h.Options)

	// Customer routes
	orders := r.Group("/orders")
	orders.Use(middleware.RequireUser(h.userRepo))
	{
		orders.POST("", h.Create)
		orders.GET("", append(middleware.ListShapingMiddleware(), h.List)...)
		orders.GET("/stats", h.CustomerStats)
		orders.POST("/pay", h.Pay)
		orders.GET("/:orderId", h.Get)
		orders.PUT("/:orderId", h.Update)
		orders.GET("/:orderId/download", h.DownloadDeliverables)
	}

	// Writer routes
	writer := r.Group("/writer/orders")
	writer.Use(middleware.RequireWriter(h.userRepo))
	{
		writer.GET("", append(middleware.ListShapingMiddleware(), h.ListForWriter)...)
		writer.GET("/stats", h.WriterStats)
		writer.GET("/:orderId", h.GetForWriter)
		writer.PUT("/:orderId/submit", h.Submit)
		writer.GET("/:orderId/download", h.DownloadBrief)
	}

	// Admin routes
	admin := r.Group("/admin/orders")
	admin.Use(middleware.RequireAdmin(h.userRepo))
	{
		admin.GET("", append(middleware.ListShapingMiddleware(), h.ListAll)...)
		admin.POST("/assign", h.Assign)
	}
}

func (h *OrderHandler) Options(c *gin.Context) {
	h.OK(c, h.orderService.Options())
}

// --- Customer handlers ---

func (h *OrderHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req dto.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Create(user, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	result, err := h.orderService.ListForUser(user.ID, middleware.ListQueryFromContext(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, result)
}

func (h *OrderHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orderID, err := ParseParamUint(c, "orderId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	order, err := h.orderService.GetForUser(orderID, user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, order)
}

func (h *OrderHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orderID, err := ParseParamUint(c, "orderId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Update(orderID, user.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, order)
}

func (h *OrderHandler) Pay(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req dto.PayOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Pay(user, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, order)
}

func (h *OrderHandler) CustomerStats(c *gin.Context) {
	user := middleware.CurrentUser(c)

	stats, err := h.orderService.CustomerStats(user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, stats)
}

// DownloadDeliverables streams the writer's submitted work back to the
// customer as a zip archive.
func (h *OrderHandler) DownloadDeliverables(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orderID, err := ParseParamUint(c, "orderId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	bundle, err := h.bundleService.BundleDeliverables(c.Request.Context(), orderID, user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer bundle.Cleanup()

	c.FileAttachment(bundle.Path, bundle.FileName)
}

// --- Writer handlers ---

func (h *OrderHandler) ListForWriter(c *gin.Context) {
	writer := middleware.CurrentUser(c)

	result, err := h.orderService.ListForWriter(writer.ID, middleware.ListQueryFromContext(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, result)
}

func (h *OrderHandler) GetForWriter(c *gin.Context) {
	writer := middleware.CurrentUser(c)

	orderID, err := ParseParamUint(c, "orderId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	order, err := h.orderService.GetForWriter(orderID, writer.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, order)
}

func (h *OrderHandler) Submit(c *gin.Context) {
	writer := middleware.CurrentUser(c)

	orderID, err := ParseParamUint(c, "orderId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.SubmitOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Submit(writer.ID, orderID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, order)
}

func (h *OrderHandler) WriterStats(c *gin.Context) {
	writer := middleware.CurrentUser(c)

	stats, err := h.orderService.WriterStats(writer.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, stats)
}

// DownloadBrief streams the customer's assignment material to the
// assigned writer as a zip archive.
func (h *OrderHandler) DownloadBrief(c *gin.Context) {
	writer := middleware.CurrentUser(c)

	orderID, err := ParseParamUint(c, "orderId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	bundle, err := h.bundleService.BundleBrief(c.Request.Context(), orderID, writer.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer bundle.Cleanup()

	c.FileAttachment(bundle.Path, bundle.FileName)
}

// --- Admin handlers ---

func (h *OrderHandler) ListAll(c *gin.Context) {
	result, err := h.orderService.ListAll(middleware.ListQueryFromContext(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, result)
}

func (h *OrderHandler) Assign(c *gin.Context) {
	var req dto.AssignOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Assign(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, order)
}
