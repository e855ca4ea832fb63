package repository

import (
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/config"
)

// NewMongoStore wires every repository to its collection.
func NewMongoStore(db *config.Database) *Store {
	return &Store{
		Products:   NewProductRepository(db.ProductCollection),
		Customers:  NewCustomerRepository(db.CustomerCollection),
		Invoices:   NewInvoiceRepository(db.InvoiceCollection),
		Quotations: NewQuotationRepository(db.QuotationCollection),
		Counters:   NewCounterRepository(db.CounterCollection),
		Admins:     NewAdminRepository(db.AdminCollection),
		Users:      NewUserRepository(db.UserCollection),
		Sessions:   NewSessionRepository(db.SessionCollection),
		Tx:         NewTransactionManager(db.Client),
		Health:     NewPinger(db.Client),
	}
}
