// Package controllers holds the gin handlers. Handlers bind and validate input,
// call a repository or a service and shape the JSON envelope.
package controllers

import (
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/repository"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/services"
)

type Services struct {
	Invoices   *services.InvoiceService
	Quotations *services.QuotationService
	Auth       *services.AuthService
	Profile    *services.ProfileService
	Reports    *services.ReportService
}

type Controller struct {
	store *repository.Store
	svc   Services

	// SecureCookie marks the login cookie Secure (production behind TLS).
	SecureCookie bool
}

func New(store *repository.Store, svc Services) *Controller {
	return &Controller{store: store, svc: svc}
}

// NewDefault wires every service against store.
func NewDefault(store *repository.Store, jwtSecret string, reports *services.ReportService) *Controller {
	if reports == nil {
		reports = services.NewReportService(store, nil, "")
	}
	return New(store, Services{
		Invoices:   services.NewInvoiceService(store),
		Quotations: services.NewQuotationService(store),
		Auth:       services.NewAuthService(store, jwtSecret),
		Profile:    services.NewProfileService(store),
		Reports:    reports,
	})
}
