package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/repository"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuotationService struct {
	store *repository.Store
	now   func() time.Time
}

func NewQuotationService(store *repository.Store) *QuotationService {
	return &QuotationService{store: store, now: time.Now}
}

func quotationFromInput(in models.InvoiceInput, date time.Time) *models.Quotation {
	utils.FillLineTotals(in.Items)
	return &models.Quotation{
		Date:     date,
		Customer: in.Customer,
		Items:    lineItems(in.Items),
		Payment: models.QuotationPayment{
			SubTotal:   in.Payment.SubTotal,
			Discount:   in.Payment.Discount,
			GrandTotal: in.Payment.GrandTotal,
			Paid:       in.Payment.Paid,
			Due:        in.Payment.Due,
			Method:     in.Payment.Method,
		},
	}
}

// Create stores a quotation under the next QT- number. Quotations never move stock.
func (s *QuotationService) Create(ctx context.Context, in models.InvoiceInput) (*models.Quotation, error) {
	date, err := utils.ParseDate(in.Date, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := stockMoves(in.Items); err != nil {
		return nil, err
	}
	q := quotationFromInput(in, date)

	seq, err := s.store.Counters.Next(ctx, repository.QuotationSequence)
	if err != nil {
		return nil, fmt.Errorf("create quotation: %w", err)
	}
	q.QuotationNo = QuotationNumber(seq)
	if err := s.store.Quotations.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create quotation: %w", err)
	}
	QuotationsCreated.Inc()
	return q, nil
}

func (s *QuotationService) Update(ctx context.Context, id primitive.ObjectID, in models.InvoiceInput) (*models.Quotation, error) {
	date, err := utils.ParseDate(in.Date, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := stockMoves(in.Items); err != nil {
		return nil, err
	}
	return s.store.Quotations.Update(ctx, id, quotationFromInput(in, date))
}
