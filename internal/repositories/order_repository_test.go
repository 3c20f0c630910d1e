package repositories

import (
	"testing"

	"paperdesk_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkPaidTransitionsOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	user := createTestUser(t, db, nil)
	catalog := createTestCatalog(t, db)
	order := createTestOrder(t, db, user.ID, catalog, nil)

	require.NoError(t, repo.MarkPaid(order.ID, user.ID))

	updated, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)

	// Second attempt finds no unpaid row to flip.
	err = repo.MarkPaid(order.ID, user.ID)
	assert.ErrorIs(t, err, ErrOrderStateStale)
}

func TestMarkPaidIgnoresOtherUsersOrders(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	owner := createTestUser(t, db, nil)
	stranger := createTestUser(t, db, nil)
	catalog := createTestCatalog(t, db)
	order := createTestOrder(t, db, owner.ID, catalog, nil)

	err := repo.MarkPaid(order.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrOrderStateStale)

	reloaded, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentUnpaid, reloaded.PaymentStatus)
}

func TestAssignWriterRequiresPayment(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	user := createTestUser(t, db, nil)
	writer := createTestUser(t, db, func(u *models.User) { u.IsWriter = true })
	catalog := createTestCatalog(t, db)
	order := createTestOrder(t, db, user.ID, catalog, nil)

	err := repo.AssignWriter(order.ID, writer.ID)
	assert.ErrorIs(t, err, ErrOrderStateStale)

	require.NoError(t, repo.MarkPaid(order.ID, user.ID))
	require.NoError(t, repo.AssignWriter(order.ID, writer.ID))

	updated, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.WriterID)
	assert.Equal(t, writer.ID, *updated.WriterID)
	assert.Equal(t, models.StatusInProgress, updated.Status)
}

func TestSubmitDocumentsCompletesOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	user := createTestUser(t, db, nil)
	writer := createTestUser(t, db, func(u *models.User) { u.IsWriter = true })
	catalog := createTestCatalog(t, db)
	order := createTestOrder(t, db, user.ID, catalog, nil)

	require.NoError(t, repo.MarkPaid(order.ID, user.ID))
	require.NoError(t, repo.AssignWriter(order.ID, writer.ID))

	deliverable := models.StoredFile{Key: "paperdesk/final.docx", Name: "final.docx"}
	supporting := []models.StoredFile{{Key: "paperdesk/sources.pdf", Name: "sources.pdf"}}

	require.NoError(t, repo.SubmitDocuments(order.ID, writer.ID, deliverable, supporting))

	updated, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, "final.docx", updated.SubmittedDocument.Data().Name)
	require.Len(t, updated.SubmittedDocuments, 1)
	assert.Equal(t, "sources.pdf", updated.SubmittedDocuments[0].Name)
}

func TestSubmitDocumentsRejectsWrongWriter(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	user := createTestUser(t, db, nil)
	writer := createTestUser(t, db, func(u *models.User) { u.IsWriter = true })
	other := createTestUser(t, db, func(u *models.User) { u.IsWriter = true })
	catalog := createTestCatalog(t, db)
	order := createTestOrder(t, db, user.ID, catalog, nil)

	require.NoError(t, repo.MarkPaid(order.ID, user.ID))
	require.NoError(t, repo.AssignWriter(order.ID, writer.ID))

	err := repo.SubmitDocuments(order.ID, other.ID, models.StoredFile{Key: "k", Name: "n"}, nil)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListForUserShapesAndFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	user := createTestUser(t, db, nil)
	other := createTestUser(t, db, nil)
	catalog := createTestCatalog(t, db)

	createTestOrder(t, db, user.ID, catalog, func(o *models.Order) { o.Title = "Alpha essay" })
	paid := createTestOrder(t, db, user.ID, catalog, func(o *models.Order) { o.Title = "Beta review" })
	createTestOrder(t, db, other.ID, catalog, func(o *models.Order) { o.Title = "Gamma essay" })

	require.NoError(t, repo.MarkPaid(paid.ID, user.ID))

	q := NewListQuery()
	items, total, err := repo.ListForUser(user.ID, q)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	// Sorted by title ascending.
	assert.Equal(t, "Alpha essay", items[0].Title)
	assert.Equal(t, "Beta review", items[1].Title)

	// Payment filter values arrive as JSON numbers.
	q.Filters = map[string]interface{}{"payment": float64(models.PaymentPaid.ID)}
	items, total, err = repo.ListForUser(user.ID, q)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Beta review", items[0].Title)
	assert.Equal(t, models.PaymentPaid, items[0].PaymentStatus)

	// Unknown filter keys are logged and ignored.
	records := captureLogs(t)
	q.Filters = map[string]interface{}{"not_a_column": float64(1)}
	_, total, err = repo.ListForUser(user.ID, q)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.True(t, loggedFilterKey(records, "not_a_column"))
}

func TestListAllSearchAndSortOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	user := createTestUser(t, db, nil)
	catalog := createTestCatalog(t, db)

	createTestOrder(t, db, user.ID, catalog, func(o *models.Order) { o.Title = "History of Rome" })
	createTestOrder(t, db, user.ID, catalog, func(o *models.Order) { o.Title = "Modern history survey" })
	createTestOrder(t, db, user.ID, catalog, func(o *models.Order) { o.Title = "Chemistry lab report" })

	q := NewListQuery()
	q.Search = "history"
	q.SortOrder = "DESC"

	items, total, err := repo.ListAll(q)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, "Modern history survey", items[0].Title)
	assert.Equal(t, "History of Rome", items[1].Title)
}

func TestListPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	user := createTestUser(t, db, nil)
	catalog := createTestCatalog(t, db)
	for i := 0; i < 6; i++ {
		createTestOrder(t, db, user.ID, catalog, nil)
	}

	q := NewListQuery()
	q.Limit = 4
	q.Page = 2

	items, total, err := repo.ListForUser(user.ID, q)
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)
	assert.Len(t, items, 2)
}

func TestCustomerStats(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	user := createTestUser(t, db, nil)
	writer := createTestUser(t, db, func(u *models.User) { u.IsWriter = true })
	catalog := createTestCatalog(t, db)

	createTestOrder(t, db, user.ID, catalog, func(o *models.Order) { o.Price = 30 })
	active := createTestOrder(t, db, user.ID, catalog, func(o *models.Order) { o.Price = 50 })
	done := createTestOrder(t, db, user.ID, catalog, func(o *models.Order) { o.Price = 70 })

	require.NoError(t, repo.MarkPaid(active.ID, user.ID))
	require.NoError(t, repo.AssignWriter(active.ID, writer.ID))

	require.NoError(t, repo.MarkPaid(done.ID, user.ID))
	require.NoError(t, repo.AssignWriter(done.ID, writer.ID))
	require.NoError(t, repo.SubmitDocuments(done.ID, writer.ID, models.StoredFile{Key: "k", Name: "n"}, nil))

	stats, err := repo.GetCustomerStats(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalOrders)
	assert.EqualValues(t, 1, stats.PendingOrders)
	assert.EqualValues(t, 1, stats.ActiveOrders)
	assert.EqualValues(t, 1, stats.CompletedOrders)
	assert.Equal(t, 120.0, stats.TotalSpent)

	writerStats, err := repo.GetWriterStats(writer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, writerStats.AssignedOrders)
	assert.EqualValues(t, 1, writerStats.ActiveOrders)
	assert.EqualValues(t, 1, writerStats.CompletedOrders)
}
