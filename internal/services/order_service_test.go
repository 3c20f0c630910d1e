package services

import (
	"fmt"
	"net/http"
	"testing"

	"paperdesk_backend/internal/models"
	"paperdesk_backend/internal/repositories"
	"paperdesk_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderServiceEnv struct {
	db       *gorm.DB
	service  OrderService
	payments *fakePaymentProvider
	mail     *recordingMailProvider
}

func newOrderServiceEnv(t *testing.T) *orderServiceEnv {
	t.Helper()

	cfg := installTestConfig()
	db := newTestDB(t)
	notifier, mail := newTestNotifier(t, cfg)
	payments := &fakePaymentProvider{}

	service := NewOrderService(
		repositories.NewOrderRepository(db),
		repositories.NewCatalogRepository(db),
		repositories.NewUserRepository(db),
		payments,
		notifier,
	)

	return &orderServiceEnv{db: db, service: service, payments: payments, mail: mail}
}

func validCreateRequest(catalog seededCatalog) *dto.CreateOrderRequest {
	return &dto.CreateOrderRequest{
		LevelID:     catalog.Level.ID,
		PaperID:     catalog.Paper.ID,
		PaperTypeID: catalog.PaperType.ID,
		Title:       "Market analysis case study",
		Description: "Analyse the given market data",
		SpacingID:   1,
		DeadlineID:  5,
		LanguageID:  1,
		FormatID:    1,
		Pages:       4,
		Sources:     3,
	}
}

func TestComputePrice(t *testing.T) {
	deadline, ok := models.FindDeadline(5)
	require.True(t, ok)

	// 12 per page * 4 pages + 12 urgency premium
	assert.Equal(t, 60.0, ComputePrice(12, 4, deadline))

	rush, ok := models.FindDeadline(1)
	require.True(t, ok)
	assert.Equal(t, 49.97, ComputePrice(9.99, 3, rush))
}

func TestCreateOrderComputesPriceAndNotifies(t *testing.T) {
	env := newOrderServiceEnv(t)
	user := seedUser(t, env.db, nil)
	catalog := seedCatalog(t, env.db)

	order, err := env.service.Create(user, validCreateRequest(catalog))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PaymentUnpaid, order.PaymentStatus)
	// PaperType rate drives the price, not the level rate.
	assert.Equal(t, 60.0, order.Price)
	assert.Equal(t, "2 days", order.Deadline.Title)

	require.Len(t, env.mail.sent, 1)
	assert.Equal(t, "Order Received", env.mail.sent[0].Subject)
	assert.Contains(t, env.mail.sent[0].HTMLBody, "60.00")
}

func TestCreateOrderRejectsUnknownOption(t *testing.T) {
	env := newOrderServiceEnv(t)
	user := seedUser(t, env.db, nil)
	catalog := seedCatalog(t, env.db)

	req := validCreateRequest(catalog)
	req.DeadlineID = 99

	_, err := env.service.Create(user, req)
	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Contains(t, appErr.Message, "deadline")
}

func TestCreateOrderRejectsUnknownCatalogEntity(t *testing.T) {
	env := newOrderServiceEnv(t)
	user := seedUser(t, env.db, nil)
	catalog := seedCatalog(t, env.db)

	req := validCreateRequest(catalog)
	req.PaperTypeID = 999

	_, err := env.service.Create(user, req)
	requireAppError(t, err, http.StatusNotFound)
}

func TestCreateOrderFailedMailAbortsOrder(t *testing.T) {
	env := newOrderServiceEnv(t)
	env.mail.fail = true
	user := seedUser(t, env.db, nil)
	catalog := seedCatalog(t, env.db)

	_, err := env.service.Create(user, validCreateRequest(catalog))
	require.Error(t, err)

	var count int64
	require.NoError(t, env.db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "order must not survive a failed confirmation mail")
}

func TestPayChargesAndMarksPaid(t *testing.T) {
	env := newOrderServiceEnv(t)
	user := seedUser(t, env.db, nil)
	catalog := seedCatalog(t, env.db)

	order, err := env.service.Create(user, validCreateRequest(catalog))
	require.NoError(t, err)

	paid, err := env.service.Pay(user, &dto.PayOrderRequest{OrderID: order.ID, PaymentID: "pm_123"})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, paid.PaymentStatus)

	require.Len(t, env.payments.charges, 1)
	charge := env.payments.charges[0]
	assert.EqualValues(t, 6000, charge.AmountCents)
	assert.Equal(t, fmt.Sprintf("%d-pm_123", order.ID), charge.IdempotencyKey)
}

func TestPayRejectsAlreadyPaidWithoutCharging(t *testing.T) {
	env := newOrderServiceEnv(t)
	user := seedUser(t, env.db, nil)
	catalog := seedCatalog(t, env.db)

	order, err := env.service.Create(user, validCreateRequest(catalog))
	require.NoError(t, err)

	_, err = env.service.Pay(user, &dto.PayOrderRequest{OrderID: order.ID, PaymentID: "pm_123"})
	require.NoError(t, err)

	_, err = env.service.Pay(user, &dto.PayOrderRequest{OrderID: order.ID, PaymentID: "pm_456"})
	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Contains(t, appErr.Message, "already paid")

	// The processor saw exactly one charge.
	assert.Len(t, env.payments.charges, 1)
}

func TestPayDeclinedLeavesOrderUnpaid(t *testing.T) {
	env := newOrderServiceEnv(t)
	user := seedUser(t, env.db, nil)
	catalog := seedCatalog(t, env.db)

	order, err := env.service.Create(user, validCreateRequest(catalog))
	require.NoError(t, err)

	env.payments.fail = true
	_, err = env.service.Pay(user, &dto.PayOrderRequest{OrderID: order.ID, PaymentID: "pm_bad"})
	require.Error(t, err)

	reloaded, err := env.service.GetForUser(order.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentUnpaid, reloaded.PaymentStatus)
}

func TestAssignRequiresPaidOrder(t *testing.T) {
	env := newOrderServiceEnv(t)
	user := seedUser(t, env.db, nil)
	writer := seedUser(t, env.db, func(u *models.User) { u.IsWriter = true })
	catalog := seedCatalog(t, env.db)

	order, err := env.service.Create(user, validCreateRequest(catalog))
	require.NoError(t, err)

	_, err = env.service.Assign(&dto.AssignOrderRequest{OrderID: order.ID, WriterID: writer.ID})
	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Contains(t, appErr.Message, "paid for before")

	_, err = env.service.Pay(user, &dto.PayOrderRequest{OrderID: order.ID, PaymentID: "pm_1"})
	require.NoError(t, err)

	assigned, err := env.service.Assign(&dto.AssignOrderRequest{OrderID: order.ID, WriterID: writer.ID})
	require.NoError(t, err)
	require.NotNil(t, assigned.WriterID)
	assert.Equal(t, writer.ID, *assigned.WriterID)
	assert.Equal(t, models.StatusInProgress, assigned.Status)
}

func TestAssignRejectsNonWriter(t *testing.T) {
	env := newOrderServiceEnv(t)
	user := seedUser(t, env.db, nil)
	notWriter := seedUser(t, env.db, nil)
	catalog := seedCatalog(t, env.db)

	order, err := env.service.Create(user, validCreateRequest(catalog))
	require.NoError(t, err)
	_, err = env.service.Pay(user, &dto.PayOrderRequest{OrderID: order.ID, PaymentID: "pm_1"})
	require.NoError(t, err)

	_, err = env.service.Assign(&dto.AssignOrderRequest{OrderID: order.ID, WriterID: notWriter.ID})
	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Contains(t, appErr.Message, "not a writer")
}

func TestSubmitRequiresDocuments(t *testing.T) {
	env := newOrderServiceEnv(t)
	writer := seedUser(t, env.db, func(u *models.User) { u.IsWriter = true })

	_, err := env.service.Submit(writer.ID, 1, &dto.SubmitOrderRequest{})
	requireAppError(t, err, http.StatusBadRequest)
}

func TestSubmitCompletesOrderAndNotifiesCustomer(t *testing.T) {
	env := newOrderServiceEnv(t)
	user := seedUser(t, env.db, nil)
	writer := seedUser(t, env.db, func(u *models.User) { u.IsWriter = true })
	catalog := seedCatalog(t, env.db)

	order, err := env.service.Create(user, validCreateRequest(catalog))
	require.NoError(t, err)
	_, err = env.service.Pay(user, &dto.PayOrderRequest{OrderID: order.ID, PaymentID: "pm_1"})
	require.NoError(t, err)
	_, err = env.service.Assign(&dto.AssignOrderRequest{OrderID: order.ID, WriterID: writer.ID})
	require.NoError(t, err)

	req := &dto.SubmitOrderRequest{
		DefaultDocument: models.StoredFile{Key: "paperdesk/final.docx", Name: "final.docx"},
		Documents:       []models.StoredFile{{Key: "paperdesk/notes.pdf", Name: "notes.pdf"}},
	}
	submitted, err := env.service.Submit(writer.ID, order.ID, req)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, submitted.Status)

	last := env.mail.sent[len(env.mail.sent)-1]
	assert.Equal(t, "Order Completed", last.Subject)
	assert.Equal(t, []string{user.Email}, last.To)
}

func TestListForUserReturnsTrimmedRows(t *testing.T) {
	env := newOrderServiceEnv(t)
	user := seedUser(t, env.db, nil)
	catalog := seedCatalog(t, env.db)

	_, err := env.service.Create(user, validCreateRequest(catalog))
	require.NoError(t, err)

	result, err := env.service.ListForUser(user.ID, repositories.NewListQuery())
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.TotalCount)
	assert.Equal(t, 1, result.Count)

	items, ok := result.Items.([]repositories.OrderListItem)
	require.True(t, ok)
	assert.Equal(t, "Market analysis case study", items[0].Title)
}

func TestOrderOptions(t *testing.T) {
	env := newOrderServiceEnv(t)

	options := env.service.Options()
	assert.Len(t, options.Deadlines, 11)
	assert.Len(t, options.Formats, 9)
	assert.Len(t, options.Statuses, 3)
	assert.Len(t, options.Payments, 2)
}
