// Package repository holds the persistence contracts and their MongoDB
// implementations. Every method takes the caller's context; inside RunInTx that
// context carries the MongoDB session.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("document not found")

// Sequence names used with CounterRepository.
const (
	InvoiceSequence   = "invoice"
	QuotationSequence = "quotation"
)

type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// AdjustStock adds delta to the stock counter and reports whether the product exists.
	AdjustStock(ctx context.Context, id primitive.ObjectID, delta float64) (bool, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *models.Customer) error
	List(ctx context.Context) ([]models.Customer, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Customer, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type InvoiceRepository interface {
	Create(ctx context.Context, inv *models.Invoice) error
	List(ctx context.Context) ([]models.Invoice, error)
	ListDue(ctx context.Context) ([]models.Invoice, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error)
	// Update replaces date, customer, items and payment figures. The stored payment
	// history is only overwritten when replaceHistory is set.
	Update(ctx context.Context, id primitive.ObjectID, inv *models.Invoice, replaceHistory bool) (*models.Invoice, error)
	// CollectDue appends entry to the history, adds its amount to paid and recomputes
	// due in a single atomic write.
	CollectDue(ctx context.Context, id primitive.ObjectID, entry models.PaymentEntry) (*models.Invoice, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type QuotationRepository interface {
	Create(ctx context.Context, q *models.Quotation) error
	List(ctx context.Context) ([]models.Quotation, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Quotation, error)
	Update(ctx context.Context, id primitive.ObjectID, q *models.Quotation) (*models.Quotation, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type CounterRepository interface {
	// Next increments the named sequence and returns the new value (1 for a fresh sequence).
	Next(ctx context.Context, name string) (int64, error)
	// EnsureAtLeast raises the sequence to floor if it is lower.
	EnsureAtLeast(ctx context.Context, name string, floor int64) error
}

type AdminRepository interface {
	// Ensure returns the singleton profile, inserting defaults atomically when absent.
	Ensure(ctx context.Context, defaults models.Admin) (*models.Admin, error)
	Update(ctx context.Context, fields map[string]interface{}) (*models.Admin, error)
}

type UserRepository interface {
	FindDefault(ctx context.Context) (*models.User, error)
	// EnsureDefault inserts u under the singleton key unless a record already exists.
	EnsureDefault(ctx context.Context, u models.User) (bool, error)
	SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error
}

type SessionRepository interface {
	Create(ctx context.Context, s *models.Session) error
}

// TransactionManager runs fn inside a multi-document transaction. Repositories
// called with txCtx take part in it; any error from fn rolls everything back.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

// Pinger reports store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store groups every repository the application needs.
type Store struct {
	Products   ProductRepository
	Customers  CustomerRepository
	Invoices   InvoiceRepository
	Quotations QuotationRepository
	Counters   CounterRepository
	Admins     AdminRepository
	Users      UserRepository
	Sessions   SessionRepository
	Tx         TransactionManager
	Health     Pinger
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
