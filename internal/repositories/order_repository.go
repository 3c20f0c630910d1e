package repositories

import (
	"errors"

	"paperdesk_backend/internal/logger"
	"paperdesk_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrOrderStateStale = errors.New("order state changed concurrently")
)

// OrderListItem is the trimmed row shape used by paginated order lists.
type OrderListItem struct {
	ID            uint          `json:"id"`
	Title         string        `json:"title"`
	Price         float64       `json:"price"`
	Status        models.Choice `json:"status"`
	PaymentStatus models.Choice `json:"payment"`
}

// CustomerStats summarizes a customer's order book.
type CustomerStats struct {
	TotalOrders     int64   `json:"total_orders"`
	PendingOrders   int64   `json:"pending_orders"`
	ActiveOrders    int64   `json:"active_orders"`
	CompletedOrders int64   `json:"completed_orders"`
	TotalSpent      float64 `json:"total_spent"`
}

// WriterStats summarizes a writer's workload.
type WriterStats struct {
	AssignedOrders  int64 `json:"assigned_orders"`
	ActiveOrders    int64 `json:"active_orders"`
	CompletedOrders int64 `json:"completed_orders"`
}

type OrderRepository interface {
	Create(tx *gorm.DB, order *models.Order) error
	FindByID(id uint) (*models.Order, error)
	FindByIDForUser(id, userID uint) (*models.Order, error)
	FindByIDForWriter(id, writerID uint) (*models.Order, error)
	FindByIDWithRelations(id uint) (*models.Order, error)
	Save(order *models.Order) error
	Delete(id uint) error

	ListForUser(userID uint, q ListQuery) ([]OrderListItem, int64, error)
	ListForWriter(writerID uint, q ListQuery) ([]OrderListItem, int64, error)
	ListAll(q ListQuery) ([]OrderListItem, int64, error)

	// MarkPaid flips payment state only when the row is still unpaid, so
	// two concurrent payment attempts cannot both succeed.
	MarkPaid(orderID, userID uint) error
	AssignWriter(orderID, writerID uint) error
	SubmitDocuments(orderID, writerID uint, deliverable models.StoredFile, supporting []models.StoredFile) error

	GetCustomerStats(userID uint) (*CustomerStats, error)
	GetWriterStats(writerID uint) (*WriterStats, error)

	Transaction(fn func(tx *gorm.DB) error) error
}

type OrderRepositoryImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

func (r *OrderRepositoryImpl) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

func (r *OrderRepositoryImpl) Create(tx *gorm.DB, order *models.Order) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.Create(order).Error
}

func (r *OrderRepositoryImpl) FindByID(id uint) (*models.Order, error) {
	return r.findOne("id = ?", id)
}

func (r *OrderRepositoryImpl) FindByIDForUser(id, userID uint) (*models.Order, error) {
	return r.findOne("id = ? AND user_id = ?", id, userID)
}

func (r *OrderRepositoryImpl) FindByIDForWriter(id, writerID uint) (*models.Order, error) {
	return r.findOne("id = ? AND writer_id = ?", id, writerID)
}

func (r *OrderRepositoryImpl) findOne(cond string, args ...interface{}) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, append([]interface{}{cond}, args...)...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepositoryImpl) FindByIDWithRelations(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Level").Preload("Paper").Preload("PaperType").
		Preload("User").Preload("Writer").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepositoryImpl) Save(order *models.Order) error {
	return r.db.Save(order).Error
}

func (r *OrderRepositoryImpl) Delete(id uint) error {
	result := r.db.Delete(&models.Order{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

var orderFilterColumns = map[string]string{
	"status":  "status",
	"payment": "payment_status",
}

// AllowedOrderFilter maps an external filter key to its column, reporting
// whether the key is recognized.
func AllowedOrderFilter(key string) (string, bool) {
	col, ok := orderFilterColumns[key]
	return col, ok
}

func (r *OrderRepositoryImpl) ListForUser(userID uint, q ListQuery) ([]OrderListItem, int64, error) {
	return r.list(r.db.Model(&models.Order{}).Where("user_id = ?", userID), q)
}

func (r *OrderRepositoryImpl) ListForWriter(writerID uint, q ListQuery) ([]OrderListItem, int64, error) {
	return r.list(r.db.Model(&models.Order{}).Where("writer_id = ?", writerID), q)
}

func (r *OrderRepositoryImpl) ListAll(q ListQuery) ([]OrderListItem, int64, error) {
	return r.list(r.db.Model(&models.Order{}), q)
}

func (r *OrderRepositoryImpl) list(query *gorm.DB, q ListQuery) ([]OrderListItem, int64, error) {
	for key, value := range q.Filters {
		col, ok := orderFilterColumns[key]
		if !ok {
			logger.GetLogger().Debug("ignoring unknown order filter key", "key", key)
			continue
		}
		if choice, err := filterChoice(col, value); err == nil {
			query = query.Where(col+" = ?", choice)
		}
	}

	if q.Search != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", searchPattern(q.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := applyPagination(query.Order(q.orderClause("title")), q).Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	items := make([]OrderListItem, 0, len(orders))
	for _, o := range orders {
		items = append(items, OrderListItem{
			ID:            o.ID,
			Title:         o.Title,
			Price:         o.Price,
			Status:        o.Status,
			PaymentStatus: o.PaymentStatus,
		})
	}
	return items, total, nil
}

// filterChoice resolves a filter value (a numeric option ID) to its full
// serialized choice, since choice columns store the whole JSON object.
func filterChoice(column string, value interface{}) (models.Choice, error) {
	id, ok := value.(float64)
	if !ok {
		return models.Choice{}, errors.New("filter value must be a number")
	}

	options := models.StatusOptions
	if column == "payment_status" {
		options = models.PaymentOptions
	}

	choice, ok := models.FindChoice(options, int(id))
	if !ok {
		return models.Choice{}, errors.New("unknown option id")
	}
	return choice, nil
}

func (r *OrderRepositoryImpl) MarkPaid(orderID, userID uint) error {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND user_id = ? AND payment_status = ?", orderID, userID, models.PaymentUnpaid).
		Update("payment_status", models.PaymentPaid)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderStateStale
	}
	return nil
}

func (r *OrderRepositoryImpl) AssignWriter(orderID, writerID uint) error {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND payment_status = ?", orderID, models.PaymentPaid).
		Updates(map[string]interface{}{
			"writer_id": writerID,
			"status":    models.StatusInProgress,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderStateStale
	}
	return nil
}

func (r *OrderRepositoryImpl) SubmitDocuments(orderID, writerID uint, deliverable models.StoredFile, supporting []models.StoredFile) error {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND writer_id = ?", orderID, writerID).
		Updates(map[string]interface{}{
			"submitted_document":  datatypes.NewJSONType(deliverable),
			"submitted_documents": datatypes.NewJSONSlice(supporting),
			"status":              models.StatusCompleted,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepositoryImpl) GetCustomerStats(userID uint) (*CustomerStats, error) {
	var stats CustomerStats
	base := func() *gorm.DB { return r.db.Model(&models.Order{}).Where("user_id = ?", userID) }

	if err := base().Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", models.StatusPending).Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", models.StatusInProgress).Count(&stats.ActiveOrders).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", models.StatusCompleted).Count(&stats.CompletedOrders).Error; err != nil {
		return nil, err
	}

	err := base().Where("payment_status = ?", models.PaymentPaid).
		Select("COALESCE(SUM(price), 0)").Scan(&stats.TotalSpent).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *OrderRepositoryImpl) GetWriterStats(writerID uint) (*WriterStats, error) {
	var stats WriterStats
	base := func() *gorm.DB { return r.db.Model(&models.Order{}).Where("writer_id = ?", writerID) }

	if err := base().Count(&stats.AssignedOrders).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", models.StatusInProgress).Count(&stats.ActiveOrders).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", models.StatusCompleted).Count(&stats.CompletedOrders).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
