package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/repository"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/utils"

	"github.com/rs/zerolog/log"
)

// Notifier delivers plain text messages. utils.Mailer satisfies it.
type Notifier interface {
	Send(to, subject, body string) error
}

type ReportService struct {
	store    *repository.Store
	notifier Notifier
	to       string
}

// NewReportService returns a report service. With a nil notifier the daily alert
// is only logged.
func NewReportService(store *repository.Store, notifier Notifier, to string) *ReportService {
	return &ReportService{store: store, notifier: notifier, to: to}
}

// alertThreshold parses the free-text alert quantity. Blank or non-numeric values
// disable the alert for that product.
func alertThreshold(p models.Product) (float64, bool) {
	s := strings.TrimSpace(p.AlertQty)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// LowStock lists products whose stock is at or below their alert quantity.
func (s *ReportService) LowStock(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	low := []models.Product{}
	for _, p := range products {
		if limit, ok := alertThreshold(p); ok && p.Stock <= limit {
			low = append(low, p)
		}
	}
	return low, nil
}

type Summary struct {
	LowStock  []models.Product
	DueCount  int
	DueAmount float64
}

func (s *ReportService) DailySummary(ctx context.Context) (*Summary, error) {
	low, err := s.LowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	due, err := s.store.Invoices.ListDue(ctx)
	if err != nil {
		return nil, fmt.Errorf("due invoices: %w", err)
	}
	sum := &Summary{LowStock: low, DueCount: len(due)}
	amounts := make([]float64, 0, len(due))
	for _, inv := range due {
		amounts = append(amounts, inv.Payment.Due)
	}
	sum.DueAmount = utils.Sum(amounts...)
	return sum, nil
}

func (sum *Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Outstanding invoices: %d (total due %.2f)\n\n", sum.DueCount, sum.DueAmount)
	if len(sum.LowStock) == 0 {
		b.WriteString("No products below their alert quantity.\n")
		return b.String()
	}
	b.WriteString("Products at or below alert quantity:\n")
	for _, p := range sum.LowStock {
		fmt.Fprintf(&b, "- %s: %g %s (alert at %s)\n", p.Name, p.Stock, p.Unit, strings.TrimSpace(p.AlertQty))
	}
	return b.String()
}

// SendDailyAlert builds the summary and mails it when there is something to report.
func (s *ReportService) SendDailyAlert(ctx context.Context) error {
	sum, err := s.DailySummary(ctx)
	if err != nil {
		return err
	}
	log.Info().Int("lowStock", len(sum.LowStock)).Int("dueInvoices", sum.DueCount).
		Float64("dueAmount", sum.DueAmount).Msg("daily stock summary")

	if s.notifier == nil || s.to == "" {
		return nil
	}
	if len(sum.LowStock) == 0 && sum.DueCount == 0 {
		return nil
	}
	if err := s.notifier.Send(s.to, "Daily stock and due summary", sum.Text()); err != nil {
		return fmt.Errorf("send daily alert: %w", err)
	}
	return nil
}
