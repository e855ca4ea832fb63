package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/config"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/repository"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newMongoStore connects to MONGO_TEST_URI, which must point at a replica set
// because invoice creation runs in a transaction.
func newMongoStore(t *testing.T) *repository.Store {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	cfg := &config.Config{MongoURI: uri, MongoDB: "thaiglass_test_" + uuid.NewString()[:8]}
	db, err := config.ConnectDatabase(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Client.Database(cfg.MongoDB).Drop(ctx)
		_ = db.Disconnect(ctx)
	})
	return repository.NewMongoStore(db)
}

// failingProducts fails AdjustStock for one product id.
type failingProducts struct {
	repository.ProductRepository
	failFor primitive.ObjectID
}

func (f failingProducts) AdjustStock(ctx context.Context, id primitive.ObjectID, delta float64) (bool, error) {
	if id == f.failFor {
		return false, errors.New("injected failure")
	}
	return f.ProductRepository.AdjustStock(ctx, id, delta)
}

func TestMongo_InvoiceTransaction(t *testing.T) {
	store := newMongoStore(t)
	ctx := context.Background()

	a := &models.Product{Name: "A", Stock: 10}
	b := &models.Product{Name: "B", Stock: 10}
	require.NoError(t, store.Products.Create(ctx, a))
	require.NoError(t, store.Products.Create(ctx, b))

	input := models.InvoiceInput{
		Items: []models.LineItem{
			{ProductID: a.ID.Hex(), Qty: 2},
			{ProductID: b.ID.Hex(), Qty: 3},
		},
		Payment: models.PaymentInput{GrandTotal: 500, Paid: 200, Due: 300},
	}

	broken := *store
	broken.Products = failingProducts{ProductRepository: store.Products, failFor: b.ID}
	_, err := services.NewInvoiceService(&broken).Create(ctx, input)
	require.Error(t, err)

	got, err := store.Products.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Stock, "decrement of A rolled back")
	n, err := store.Invoices.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	inv, err := services.NewInvoiceService(store).Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "INV-1001", inv.InvoiceNo)
	got, _ = store.Products.FindByID(ctx, b.ID)
	assert.Equal(t, 7.0, got.Stock)

	collected, err := store.Invoices.CollectDue(ctx, inv.ID, models.PaymentEntry{Date: time.Now().UTC(), Amount: 300, Method: "Bank"})
	require.NoError(t, err)
	assert.Equal(t, 500.0, collected.Payment.Paid)
	assert.Equal(t, 0.0, collected.Payment.Due)
	assert.Len(t, collected.Payment.History, 2)

	due, err := store.Invoices.ListDue(ctx)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestMongo_SingletonsAndCounters(t *testing.T) {
	store := newMongoStore(t)
	ctx := context.Background()

	first, err := store.Admins.Ensure(ctx, models.DefaultAdmin())
	require.NoError(t, err)
	second, err := store.Admins.Ensure(ctx, models.DefaultAdmin())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	updated, err := store.Admins.Update(ctx, map[string]interface{}{"name": "Owner"})
	require.NoError(t, err)
	assert.Equal(t, "Owner", updated.Name)
	assert.Equal(t, "Admin", updated.Role)

	created, err := store.Users.EnsureDefault(ctx, models.User{Username: "admin", Pass: "x"})
	require.NoError(t, err)
	assert.True(t, created)
	created, err = store.Users.EnsureDefault(ctx, models.User{Username: "other", Pass: "y"})
	require.NoError(t, err)
	assert.False(t, created)

	require.NoError(t, store.Counters.EnsureAtLeast(ctx, repository.QuotationSequence, 7))
	require.NoError(t, store.Counters.EnsureAtLeast(ctx, repository.QuotationSequence, 3))
	seq, err := store.Counters.Next(ctx, repository.QuotationSequence)
	require.NoError(t, err)
	assert.Equal(t, int64(8), seq)
}

func TestMongo_UpdateKeepsHistoryAndDeleteIsIdempotent(t *testing.T) {
	store := newMongoStore(t)
	ctx := context.Background()

	inv := &models.Invoice{
		InvoiceNo: "INV-1001",
		Date:      time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Payment: models.Payment{GrandTotal: 100, Paid: 40, Due: 60, History: []models.PaymentEntry{
			{Date: time.Now().UTC(), Amount: 40, Method: "Cash", Remark: "Initial Payment"},
		}},
	}
	require.NoError(t, store.Invoices.Create(ctx, inv))

	updated, err := store.Invoices.Update(ctx, inv.ID, &models.Invoice{
		Customer: models.CustomerSnapshot{Name: "X"},
		Payment:  models.Payment{GrandTotal: 120, Paid: 40, Due: 80},
	}, false)
	require.NoError(t, err)
	assert.Len(t, updated.Payment.History, 1)
	assert.Equal(t, 80.0, updated.Payment.Due)
	assert.True(t, inv.Date.Equal(updated.Date))

	_, err = store.Invoices.Update(ctx, primitive.NewObjectID(), &models.Invoice{}, false)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.Invoices.Delete(ctx, inv.ID))
	require.NoError(t, store.Invoices.Delete(ctx, inv.ID))
	_, err = store.Invoices.FindByID(ctx, inv.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
