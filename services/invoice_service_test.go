package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/repository"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var fixedNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func newInvoiceService(t *testing.T) (*InvoiceService, *repository.Store, *memory.DB) {
	t.Helper()
	store, db := memory.NewStore()
	svc := NewInvoiceService(store)
	svc.now = func() time.Time { return fixedNow }
	return svc, store, db
}

func seedProduct(t *testing.T, store *repository.Store, name string, stock float64) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: 100, Stock: stock, Unit: "pcs"}
	require.NoError(t, store.Products.Create(context.Background(), p))
	return p
}

func stockOf(t *testing.T, store *repository.Store, id primitive.ObjectID) float64 {
	t.Helper()
	p, err := store.Products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func TestCreateInvoice_DecrementsStockAndSeedsHistory(t *testing.T) {
	svc, store, _ := newInvoiceService(t)
	ctx := context.Background()
	p := seedProduct(t, store, "Glass", 10)

	inv, err := svc.Create(ctx, models.InvoiceInput{
		Customer: models.CustomerSnapshot{Name: "Somchai", Mobile: "0812345678"},
		Items:    []models.LineItem{{ProductID: p.ID.Hex(), Name: "Glass", Price: 100, Qty: 3}},
		Payment:  models.PaymentInput{SubTotal: 300, GrandTotal: 300, Paid: 100, Due: 200},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-1001", inv.InvoiceNo)
	assert.Equal(t, 7.0, stockOf(t, store, p.ID))
	assert.Equal(t, 300.0, inv.Items[0].Total)
	require.Len(t, inv.Payment.History, 1)
	entry := inv.Payment.History[0]
	assert.Equal(t, 100.0, entry.Amount)
	assert.Equal(t, models.DefaultPaymentMethod, entry.Method)
	assert.Equal(t, models.InitialPaymentRemark, entry.Remark)
	assert.True(t, fixedNow.Equal(entry.Date))
	assert.True(t, fixedNow.Equal(inv.Date), "missing date defaults to now")

	stored, err := store.Invoices.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.InvoiceNo, stored.InvoiceNo)
	assert.Len(t, stored.Payment.History, 1)
}

func TestCreateInvoice_NoPaymentMeansEmptyHistory(t *testing.T) {
	svc, _, _ := newInvoiceService(t)

	inv, err := svc.Create(context.Background(), models.InvoiceInput{
		Items:   []models.LineItem{{Name: "Labour", Price: 500, Qty: 1}},
		Payment: models.PaymentInput{GrandTotal: 500, Due: 500, Method: "Bank"},
	})
	require.NoError(t, err)
	assert.NotNil(t, inv.Payment.History)
	assert.Empty(t, inv.Payment.History)
}

func TestCreateInvoice_UsesSuppliedMethodForInitialPayment(t *testing.T) {
	svc, _, _ := newInvoiceService(t)

	inv, err := svc.Create(context.Background(), models.InvoiceInput{
		Payment: models.PaymentInput{GrandTotal: 50, Paid: 50, Method: "Bank Transfer"},
	})
	require.NoError(t, err)
	require.Len(t, inv.Payment.History, 1)
	assert.Equal(t, "Bank Transfer", inv.Payment.History[0].Method)
}

func TestCreateInvoice_SequentialNumbers(t *testing.T) {
	svc, _, _ := newInvoiceService(t)

	for i := 1; i <= 5; i++ {
		inv, err := svc.Create(context.Background(), models.InvoiceInput{})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV-%d", 1000+i), inv.InvoiceNo)
	}
}

func TestCreateInvoice_ConcurrentCreationsGetDistinctNumbers(t *testing.T) {
	svc, store, _ := newInvoiceService(t)
	p := seedProduct(t, store, "Glass", 100)

	const n = 20
	var wg sync.WaitGroup
	numbers := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inv, err := svc.Create(context.Background(), models.InvoiceInput{
				Items: []models.LineItem{{ProductID: p.ID.Hex(), Qty: 1}},
			})
			if assert.NoError(t, err) {
				numbers <- inv.InvoiceNo
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[string]bool{}
	for no := range numbers {
		assert.False(t, seen[no], "duplicate number %s", no)
		seen[no] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, 80.0, stockOf(t, store, p.ID))
}

func TestCreateInvoice_FailedDecrementRollsBackEverything(t *testing.T) {
	svc, store, db := newInvoiceService(t)
	ctx := context.Background()
	a := seedProduct(t, store, "A", 10)
	b := seedProduct(t, store, "B", 10)
	db.FailAdjustStock[b.ID] = errors.New("write conflict")

	_, err := svc.Create(ctx, models.InvoiceInput{
		Items: []models.LineItem{
			{ProductID: a.ID.Hex(), Qty: 2},
			{ProductID: b.ID.Hex(), Qty: 3},
		},
	})
	require.Error(t, err)

	assert.Equal(t, 10.0, stockOf(t, store, a.ID))
	assert.Equal(t, 10.0, stockOf(t, store, b.ID))
	n, err := store.Invoices.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	delete(db.FailAdjustStock, b.ID)
	inv, err := svc.Create(ctx, models.InvoiceInput{})
	require.NoError(t, err)
	assert.Equal(t, "INV-1001", inv.InvoiceNo, "the aborted creation must not use up a number")
}

func TestCreateInvoice_UnknownProductIsSkipped(t *testing.T) {
	svc, store, _ := newInvoiceService(t)
	p := seedProduct(t, store, "Glass", 1)

	inv, err := svc.Create(context.Background(), models.InvoiceInput{
		Items: []models.LineItem{
			{ProductID: primitive.NewObjectID().Hex(), Qty: 4},
			{ProductID: p.ID.Hex(), Qty: 3},
		},
	})
	require.NoError(t, err)
	assert.Len(t, inv.Items, 2)
	assert.Equal(t, -2.0, stockOf(t, store, p.ID), "stock may go negative")
}

func TestCreateInvoice_MalformedProductID(t *testing.T) {
	svc, store, _ := newInvoiceService(t)

	_, err := svc.Create(context.Background(), models.InvoiceInput{
		Items: []models.LineItem{{ProductID: "not-an-id", Qty: 1}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	n, _ := store.Invoices.Count(context.Background())
	assert.Zero(t, n)
}

func TestCreateInvoice_BadDate(t *testing.T) {
	svc, _, _ := newInvoiceService(t)
	_, err := svc.Create(context.Background(), models.InvoiceInput{Date: "yesterday"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func createPaidInvoice(t *testing.T, svc *InvoiceService) *models.Invoice {
	t.Helper()
	inv, err := svc.Create(context.Background(), models.InvoiceInput{
		Date:    "2024-05-20",
		Payment: models.PaymentInput{SubTotal: 1000, GrandTotal: 1000, Paid: 400, Due: 600},
	})
	require.NoError(t, err)
	return inv
}

func TestUpdateInvoice_KeepsHistoryWhenAbsent(t *testing.T) {
	svc, _, _ := newInvoiceService(t)
	ctx := context.Background()
	inv := createPaidInvoice(t, svc)

	updated, err := svc.Update(ctx, inv.ID, models.InvoiceInput{
		Customer: models.CustomerSnapshot{Name: "New name"},
		Payment:  models.PaymentInput{SubTotal: 1200, GrandTotal: 1200, Paid: 400, Due: 800},
	})
	require.NoError(t, err)
	assert.Equal(t, "New name", updated.Customer.Name)
	assert.Equal(t, 800.0, updated.Payment.Due)
	assert.Len(t, updated.Payment.History, 1)
	assert.Equal(t, "2024-05-20", updated.Date.Format("2006-01-02"), "omitted date keeps the stored one")
	assert.Equal(t, inv.InvoiceNo, updated.InvoiceNo)
}

func TestInvoiceItemsNeverNull(t *testing.T) {
	svc, store, _ := newInvoiceService(t)
	ctx := context.Background()
	inv := createPaidInvoice(t, svc)
	assert.NotNil(t, inv.Items)

	_, err := svc.Update(ctx, inv.ID, models.InvoiceInput{
		Payment: models.PaymentInput{SubTotal: 1000, GrandTotal: 1000, Paid: 400, Due: 600},
	})
	require.NoError(t, err)

	stored, err := store.Invoices.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	body, err := json.Marshal(stored)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"items":[]`)
}

func TestUpdateInvoice_ReplacesHistoryWhenPresent(t *testing.T) {
	svc, _, _ := newInvoiceService(t)
	ctx := context.Background()
	inv := createPaidInvoice(t, svc)

	history := []models.PaymentEntry{
		{Date: fixedNow, Amount: 400, Method: "Cash", Remark: "Initial Payment"},
		{Date: fixedNow, Amount: 600, Method: "Bank", Remark: "Final"},
	}
	updated, err := svc.Update(ctx, inv.ID, models.InvoiceInput{
		Payment: models.PaymentInput{GrandTotal: 1000, Paid: 1000, Due: 0, History: &history},
	})
	require.NoError(t, err)
	assert.Len(t, updated.Payment.History, 2)

	empty := []models.PaymentEntry{}
	cleared, err := svc.Update(ctx, inv.ID, models.InvoiceInput{
		Payment: models.PaymentInput{GrandTotal: 1000, Due: 1000, History: &empty},
	})
	require.NoError(t, err)
	assert.Empty(t, cleared.Payment.History)
}

func TestUpdateInvoice_UnknownID(t *testing.T) {
	svc, _, _ := newInvoiceService(t)
	_, err := svc.Update(context.Background(), primitive.NewObjectID(), models.InvoiceInput{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateInvoice_DoesNotTouchStock(t *testing.T) {
	svc, store, _ := newInvoiceService(t)
	p := seedProduct(t, store, "Glass", 10)
	inv, err := svc.Create(context.Background(), models.InvoiceInput{
		Items: []models.LineItem{{ProductID: p.ID.Hex(), Qty: 2}},
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), inv.ID, models.InvoiceInput{
		Items: []models.LineItem{{ProductID: p.ID.Hex(), Qty: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, 8.0, stockOf(t, store, p.ID))
}

func TestCollectDue(t *testing.T) {
	svc, _, _ := newInvoiceService(t)
	ctx := context.Background()
	inv := createPaidInvoice(t, svc)

	got, err := svc.CollectDue(ctx, inv.ID, models.DueCollection{Amount: 250.004, Remark: "second visit"})
	require.NoError(t, err)
	assert.Equal(t, 650.0, got.Payment.Paid)
	assert.Equal(t, 350.0, got.Payment.Due)
	require.Len(t, got.Payment.History, 2)
	last := got.Payment.History[1]
	assert.Equal(t, 250.0, last.Amount)
	assert.Equal(t, models.DefaultPaymentMethod, last.Method)
	assert.Equal(t, "second visit", last.Remark)

	got, err = svc.CollectDue(ctx, inv.ID, models.DueCollection{Amount: 350, Method: "Bank", Date: "2024-06-02"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Payment.Due)
	assert.Equal(t, "Bank", got.Payment.Method)
	assert.Equal(t, "2024-06-02", got.Payment.History[2].Date.Format("2006-01-02"))
}

func TestCollectDue_SettledInvoiceLeavesDueList(t *testing.T) {
	svc, store, _ := newInvoiceService(t)
	ctx := context.Background()
	inv, err := svc.Create(ctx, models.InvoiceInput{
		Payment: models.PaymentInput{SubTotal: 0.9, GrandTotal: 0.9, Paid: 0.7, Due: 0.2},
	})
	require.NoError(t, err)

	got, err := svc.CollectDue(ctx, inv.ID, models.DueCollection{Amount: 0.2})
	require.NoError(t, err)
	assert.Equal(t, 0.9, got.Payment.Paid)
	assert.Equal(t, 0.0, got.Payment.Due)

	due, err := store.Invoices.ListDue(ctx)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestCollectDue_Invalid(t *testing.T) {
	svc, _, _ := newInvoiceService(t)
	ctx := context.Background()
	inv := createPaidInvoice(t, svc)

	_, err := svc.CollectDue(ctx, inv.ID, models.DueCollection{Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.CollectDue(ctx, inv.ID, models.DueCollection{Amount: 0.001})
	assert.ErrorIs(t, err, ErrInvalidInput, "rounds to zero")
	_, err = svc.CollectDue(ctx, primitive.NewObjectID(), models.DueCollection{Amount: 10})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestConvertQuotation(t *testing.T) {
	svc, store, _ := newInvoiceService(t)
	ctx := context.Background()
	p := seedProduct(t, store, "Door", 5)

	quotes := NewQuotationService(store)
	q, err := quotes.Create(ctx, models.InvoiceInput{
		Customer: models.CustomerSnapshot{Name: "Niran"},
		Items:    []models.LineItem{{ProductID: p.ID.Hex(), Name: "Door", Price: 2000, Qty: 2}},
		Payment:  models.PaymentInput{SubTotal: 4000, GrandTotal: 4000, Paid: 1000, Due: 3000},
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, stockOf(t, store, p.ID), "quotations never move stock")

	inv, err := svc.ConvertQuotation(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-1001", inv.InvoiceNo)
	assert.Equal(t, "Niran", inv.Customer.Name)
	assert.Equal(t, 3000.0, inv.Payment.Due)
	require.Len(t, inv.Payment.History, 1)
	assert.Equal(t, 1000.0, inv.Payment.History[0].Amount)
	assert.Equal(t, 3.0, stockOf(t, store, p.ID))

	_, err = store.Quotations.FindByID(ctx, q.ID)
	assert.NoError(t, err, "quotation is kept")

	_, err = svc.ConvertQuotation(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
