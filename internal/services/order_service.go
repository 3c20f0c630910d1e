package services

import (
	"fmt"
	"math"

	"paperdesk_backend/internal/email"
	"paperdesk_backend/internal/logger"
	"paperdesk_backend/internal/models"
	"paperdesk_backend/internal/repositories"
	"paperdesk_backend/internal/services/dto"
	"paperdesk_backend/internal/services/payment"
	"paperdesk_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderService interface {
	Options() *dto.OrderOptions
	Create(user *models.User, req *dto.CreateOrderRequest) (*models.Order, error)
	GetForUser(orderID, userID uint) (*models.Order, error)
	GetForWriter(orderID, writerID uint) (*models.Order, error)
	Update(orderID, userID uint, req *dto.UpdateOrderRequest) (*models.Order, error)

	ListForUser(userID uint, q repositories.ListQuery) (*dto.PaginatedResult, error)
	ListForWriter(writerID uint, q repositories.ListQuery) (*dto.PaginatedResult, error)
	ListAll(q repositories.ListQuery) (*dto.PaginatedResult, error)

	Pay(user *models.User, req *dto.PayOrderRequest) (*models.Order, error)
	Assign(req *dto.AssignOrderRequest) (*models.Order, error)
	Submit(writerID, orderID uint, req *dto.SubmitOrderRequest) (*models.Order, error)

	CustomerStats(userID uint) (*repositories.CustomerStats, error)
	WriterStats(writerID uint) (*repositories.WriterStats, error)
}

type OrderServiceImpl struct {
	orderRepo   repositories.OrderRepository
	catalogRepo repositories.CatalogRepository
	userRepo    repositories.UserRepository
	payments    payment.Provider
	notifier    *email.Notifier
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	catalogRepo repositories.CatalogRepository,
	userRepo repositories.UserRepository,
	payments payment.Provider,
	notifier *email.Notifier,
) OrderService {
	return &OrderServiceImpl{
		orderRepo:   orderRepo,
		catalogRepo: catalogRepo,
		userRepo:    userRepo,
		payments:    payments,
		notifier:    notifier,
	}
}

func (s *OrderServiceImpl) Options() *dto.OrderOptions {
	return &dto.OrderOptions{
		Spacing:   models.SpacingOptions,
		Deadlines: models.DeadlineOptions,
		Languages: models.LanguageOptions,
		Formats:   models.FormatOptions,
		Statuses:  models.StatusOptions,
		Payments:  models.PaymentOptions,
	}
}

// ComputePrice derives the order total: per-page rate of the chosen
// paper type times page count, plus the deadline urgency premium,
// rounded to cents.
func ComputePrice(pricePerPage float64, pages int, deadline models.PricedChoice) float64 {
	return math.Round((pricePerPage*float64(pages)+deadline.Price)*100) / 100
}

func (s *OrderServiceImpl) Create(user *models.User, req *dto.CreateOrderRequest) (*models.Order, error) {
	spacing, ok := models.FindChoice(models.SpacingOptions, req.SpacingID)
	if !ok {
		return nil, apperrors.NewBadRequestError("Invalid order spacing option")
	}
	deadline, ok := models.FindDeadline(req.DeadlineID)
	if !ok {
		return nil, apperrors.NewBadRequestError("Invalid order deadline option")
	}
	language, ok := models.FindChoice(models.LanguageOptions, req.LanguageID)
	if !ok {
		return nil, apperrors.NewBadRequestError("Invalid order language option")
	}
	format, ok := models.FindChoice(models.FormatOptions, req.FormatID)
	if !ok {
		return nil, apperrors.NewBadRequestError("Invalid order format option")
	}

	if _, err := s.catalogRepo.FindLevelByID(req.LevelID); err != nil {
		return nil, catalogLookupError(err)
	}
	if _, err := s.catalogRepo.FindPaperByID(req.PaperID); err != nil {
		return nil, catalogLookupError(err)
	}
	paperType, err := s.catalogRepo.FindPaperTypeByID(req.PaperTypeID)
	if err != nil {
		return nil, catalogLookupError(err)
	}

	order := &models.Order{
		Title:           req.Title,
		Description:     req.Description,
		Spacing:         spacing,
		Deadline:        deadline,
		Language:        language,
		Format:          format,
		Pages:           req.Pages,
		Sources:         req.Sources,
		Status:          models.StatusPending,
		PaymentStatus:   models.PaymentUnpaid,
		Price:           ComputePrice(paperType.PricePerPage, req.Pages, deadline),
		UserID:          user.ID,
		LevelID:         req.LevelID,
		PaperID:         req.PaperID,
		PaperTypeID:     req.PaperTypeID,
		DefaultDocument: datatypes.NewJSONType(req.DefaultDocument),
		Documents:       datatypes.NewJSONSlice(req.Documents),
	}

	// Confirmation mail is part of the transaction: a customer must not
	// hold an order they were never told about.
	var mailErr error
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(tx, order); err != nil {
			return err
		}
		if err := s.notifier.SendOrderCreated(user.Email, user.FullName(), order.Title, order.Price); err != nil {
			mailErr = err
			return err
		}
		return nil
	})
	if err != nil {
		if mailErr != nil {
			return nil, apperrors.UpstreamError("email", mailErr)
		}
		return nil, apperrors.InternalError(err)
	}

	return order, nil
}

func (s *OrderServiceImpl) GetForUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.FindByIDForUser(orderID, userID)
	if err != nil {
		return nil, orderLookupError(orderID, err)
	}
	return order, nil
}

func (s *OrderServiceImpl) GetForWriter(orderID, writerID uint) (*models.Order, error) {
	order, err := s.orderRepo.FindByIDForWriter(orderID, writerID)
	if err != nil {
		return nil, orderLookupError(orderID, err)
	}
	return order, nil
}

func (s *OrderServiceImpl) Update(orderID, userID uint, req *dto.UpdateOrderRequest) (*models.Order, error) {
	order, err := s.GetForUser(orderID, userID)
	if err != nil {
		return nil, err
	}

	order.Description = req.Description
	order.DefaultDocument = datatypes.NewJSONType(req.DefaultDocument)
	order.Documents = datatypes.NewJSONSlice(req.Documents)

	if err := s.orderRepo.Save(order); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return order, nil
}

func (s *OrderServiceImpl) ListForUser(userID uint, q repositories.ListQuery) (*dto.PaginatedResult, error) {
	items, total, err := s.orderRepo.ListForUser(userID, q)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.PaginatedResult{TotalCount: total, Count: len(items), Items: items}, nil
}

func (s *OrderServiceImpl) ListForWriter(writerID uint, q repositories.ListQuery) (*dto.PaginatedResult, error) {
	items, total, err := s.orderRepo.ListForWriter(writerID, q)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.PaginatedResult{TotalCount: total, Count: len(items), Items: items}, nil
}

func (s *OrderServiceImpl) ListAll(q repositories.ListQuery) (*dto.PaginatedResult, error) {
	items, total, err := s.orderRepo.ListAll(q)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.PaginatedResult{TotalCount: total, Count: len(items), Items: items}, nil
}

func (s *OrderServiceImpl) Pay(user *models.User, req *dto.PayOrderRequest) (*models.Order, error) {
	order, err := s.GetForUser(req.OrderID, user.ID)
	if err != nil {
		return nil, err
	}

	// Reject before charging; the processor is only contacted for orders
	// that can still transition.
	if order.IsPaid() {
		return nil, apperrors.NewBadRequestError("Order is already paid for")
	}

	charge := payment.Charge{
		AmountCents:    int64(math.Round(order.Price * 100)),
		Description:    order.Title,
		PaymentMethod:  req.PaymentID,
		IdempotencyKey: fmt.Sprintf("%d-%s", order.ID, req.PaymentID),
	}
	if err := s.payments.Confirm(charge); err != nil {
		return nil, apperrors.UpstreamError("payment", err)
	}

	if err := s.orderRepo.MarkPaid(order.ID, user.ID); err != nil {
		if apperrors.Is(err, repositories.ErrOrderStateStale) {
			// Either the row vanished or another request won the race.
			if _, findErr := s.orderRepo.FindByIDForUser(order.ID, user.ID); findErr != nil {
				return nil, orderLookupError(order.ID, findErr)
			}
			return nil, apperrors.NewBadRequestError("Order is already paid for")
		}
		return nil, apperrors.InternalError(err)
	}

	return s.GetForUser(order.ID, user.ID)
}

func (s *OrderServiceImpl) Assign(req *dto.AssignOrderRequest) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(req.OrderID)
	if err != nil {
		return nil, orderLookupError(req.OrderID, err)
	}

	writer, err := s.userRepo.FindByID(req.WriterID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("users", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if !writer.IsWriter {
		return nil, apperrors.NewBadRequestError("User is not a writer")
	}

	if err := s.orderRepo.AssignWriter(order.ID, writer.ID); err != nil {
		if apperrors.Is(err, repositories.ErrOrderStateStale) {
			return nil, apperrors.NewBadRequestError("Order has to be paid for before it can be assigned")
		}
		return nil, apperrors.InternalError(err)
	}

	return s.orderRepo.FindByID(order.ID)
}

func (s *OrderServiceImpl) Submit(writerID, orderID uint, req *dto.SubmitOrderRequest) (*models.Order, error) {
	if req.DefaultDocument.IsZero() || len(req.Documents) == 0 {
		return nil, apperrors.NewBadRequestError("Default and additional documents are required")
	}

	order, err := s.GetForWriter(orderID, writerID)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.SubmitDocuments(order.ID, writerID, req.DefaultDocument, req.Documents); err != nil {
		return nil, apperrors.InternalError(err)
	}

	updated, err := s.orderRepo.FindByIDWithRelations(order.ID)
	if err != nil {
		return nil, orderLookupError(order.ID, err)
	}

	if updated.User != nil {
		if err := s.notifier.SendOrderCompleted(updated.User.Email, updated.User.FullName(), updated.Title); err != nil {
			logger.GetLogger().Warn("order completed email failed", "order_id", updated.ID, "error", err.Error())
		}
	}

	return updated, nil
}

func (s *OrderServiceImpl) CustomerStats(userID uint) (*repositories.CustomerStats, error) {
	stats, err := s.orderRepo.GetCustomerStats(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

func (s *OrderServiceImpl) WriterStats(writerID uint) (*repositories.WriterStats, error) {
	stats, err := s.orderRepo.GetWriterStats(writerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

func orderLookupError(orderID uint, err error) error {
	if apperrors.Is(err, repositories.ErrOrderNotFound) {
		return apperrors.NewNotFoundError("orders", fmt.Sprintf("Order not found with ID %d", orderID))
	}
	return apperrors.InternalError(err)
}

func catalogLookupError(err error) error {
	switch {
	case apperrors.Is(err, repositories.ErrLevelNotFound):
		return apperrors.NewNotFoundError("catalog", "Level not found")
	case apperrors.Is(err, repositories.ErrPaperNotFound):
		return apperrors.NewNotFoundError("catalog", "Paper not found")
	case apperrors.Is(err, repositories.ErrPaperTypeNotFound):
		return apperrors.NewNotFoundError("catalog", "Paper type not found")
	default:
		return apperrors.InternalError(err)
	}
}
