// Package memory is an in-process implementation of the repository contracts.
// It backs STORE_DRIVER=memory and the package tests.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DB holds every collection behind one lock. Transactions are serialised and roll
// back by restoring a snapshot, so writes made outside RunInTx while a transaction
// is open are lost if it fails.
type DB struct {
	mu   sync.Mutex
	txMu sync.Mutex

	products   *table[models.Product]
	customers  *table[models.Customer]
	invoices   *table[models.Invoice]
	quotations *table[models.Quotation]
	counters   map[string]int64
	admin      *models.Admin
	user       *models.User
	sessions   []models.Session

	// FailAdjustStock, when set, is returned by AdjustStock for that product id.
	FailAdjustStock map[primitive.ObjectID]error
}

func NewDB() *DB {
	return &DB{
		products:        newTable[models.Product](),
		customers:       newTable[models.Customer](),
		invoices:        newTable[models.Invoice](),
		quotations:      newTable[models.Quotation](),
		counters:        make(map[string]int64),
		FailAdjustStock: make(map[primitive.ObjectID]error),
	}
}

// NewStore returns a Store backed by a fresh DB.
func NewStore() (*repository.Store, *DB) {
	db := NewDB()
	return db.Store(), db
}

func (db *DB) Store() *repository.Store {
	return &repository.Store{
		Products:   &productRepo{db},
		Customers:  &customerRepo{db},
		Invoices:   &invoiceRepo{db},
		Quotations: &quotationRepo{db},
		Counters:   &counterRepo{db},
		Admins:     &adminRepo{db},
		Users:      &userRepo{db},
		Sessions:   &sessionRepo{db},
		Tx:         &txManager{db},
		Health:     &pinger{},
	}
}

// Sessions returns the recorded logins.
func (db *DB) Sessions() []models.Session {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]models.Session(nil), db.sessions...)
}

// SetUser stores u as the singleton credential record, bypassing provisioning.
func (db *DB) SetUser(u models.User) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.Key = models.SingletonKey
	db.user = &u
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

type snapshot struct {
	products   *table[models.Product]
	customers  *table[models.Customer]
	invoices   *table[models.Invoice]
	quotations *table[models.Quotation]
	counters   map[string]int64
}

func (db *DB) snapshot() snapshot {
	db.mu.Lock()
	defer db.mu.Unlock()
	counters := make(map[string]int64, len(db.counters))
	for k, v := range db.counters {
		counters[k] = v
	}
	return snapshot{
		products:   db.products.clone(),
		customers:  db.customers.clone(),
		invoices:   db.invoices.clone(),
		quotations: db.quotations.clone(),
		counters:   counters,
	}
}

func (db *DB) restore(s snapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.products = s.products
	db.customers = s.customers
	db.invoices = s.invoices
	db.quotations = s.quotations
	db.counters = s.counters
}

type txManager struct{ db *DB }

func (t *txManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	t.db.txMu.Lock()
	defer t.db.txMu.Unlock()

	snap := t.db.snapshot()
	if err := fn(ctx); err != nil {
		t.db.restore(snap)
		return err
	}
	return nil
}

type pinger struct{}

func (pinger) Ping(context.Context) error { return nil }

var errClosed = errors.New("memory: context done")

func checkCtx(ctx context.Context) error {
	if ctx.Err() != nil {
		return errors.Join(errClosed, ctx.Err())
	}
	return nil
}
