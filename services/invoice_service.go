package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/repository"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/utils"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const numberOffset = 1000

func InvoiceNumber(seq int64) string {
	return fmt.Sprintf("INV-%d", numberOffset+seq)
}

func QuotationNumber(seq int64) string {
	return fmt.Sprintf("QT-%d", numberOffset+seq)
}

type InvoiceService struct {
	store *repository.Store
	now   func() time.Time
}

func NewInvoiceService(store *repository.Store) *InvoiceService {
	return &InvoiceService{store: store, now: time.Now}
}

type stockMove struct {
	productID primitive.ObjectID
	qty       float64
}

// stockMoves collects the product references of items. Items without a product
// id are free-text lines and do not touch stock.
func stockMoves(items []models.LineItem) ([]stockMove, error) {
	var moves []stockMove
	for i, item := range items {
		if item.ProductID == "" {
			continue
		}
		id, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d has malformed productId %q", ErrInvalidInput, i+1, item.ProductID)
		}
		moves = append(moves, stockMove{productID: id, qty: item.Qty})
	}
	return moves, nil
}

// seedHistory starts the payment history with the amount paid at creation.
func seedHistory(p *models.Payment, at time.Time) {
	p.History = []models.PaymentEntry{}
	if p.Paid <= 0 {
		return
	}
	method := p.Method
	if method == "" {
		method = models.DefaultPaymentMethod
	}
	p.History = append(p.History, models.PaymentEntry{
		Date:   at.UTC(),
		Amount: p.Paid,
		Method: method,
		Remark: models.InitialPaymentRemark,
	})
}

// lineItems keeps an omitted item list stored as [] rather than null.
func lineItems(items []models.LineItem) []models.LineItem {
	if items == nil {
		return []models.LineItem{}
	}
	return items
}

func paymentFromInput(in models.PaymentInput) models.Payment {
	return models.Payment{
		SubTotal:   in.SubTotal,
		Discount:   in.Discount,
		GrandTotal: in.GrandTotal,
		Paid:       in.Paid,
		Due:        in.Due,
		Method:     in.Method,
	}
}

// Create numbers and stores a new invoice and takes its items out of stock, all in
// one transaction.
func (s *InvoiceService) Create(ctx context.Context, in models.InvoiceInput) (*models.Invoice, error) {
	now := s.now()
	date, err := utils.ParseDate(in.Date, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	moves, err := stockMoves(in.Items)
	if err != nil {
		return nil, err
	}
	utils.FillLineTotals(in.Items)

	inv := &models.Invoice{
		Date:     date,
		Customer: in.Customer,
		Items:    lineItems(in.Items),
		Payment:  paymentFromInput(in.Payment),
	}
	seedHistory(&inv.Payment, now)
	return s.create(ctx, inv, moves)
}

func (s *InvoiceService) create(ctx context.Context, inv *models.Invoice, moves []stockMove) (*models.Invoice, error) {
	var decremented float64
	err := s.store.Tx.RunInTx(ctx, func(txCtx context.Context) error {
		// The callback may be retried, so start from a clean id and tally.
		inv.ID = primitive.NilObjectID
		decremented = 0

		seq, err := s.store.Counters.Next(txCtx, repository.InvoiceSequence)
		if err != nil {
			return err
		}
		inv.InvoiceNo = InvoiceNumber(seq)

		if err := s.store.Invoices.Create(txCtx, inv); err != nil {
			return err
		}
		for _, m := range moves {
			found, err := s.store.Products.AdjustStock(txCtx, m.productID, -m.qty)
			if err != nil {
				return err
			}
			if !found {
				log.Warn().Str("invoice", inv.InvoiceNo).Str("product", m.productID.Hex()).
					Msg("line item references a missing product, stock not changed")
				continue
			}
			decremented += m.qty
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	InvoicesCreated.Inc()
	if decremented > 0 {
		StockUnitsDecremented.Add(decremented)
	}
	log.Info().Str("invoice", inv.InvoiceNo).Int("items", len(inv.Items)).
		Float64("grandTotal", inv.Payment.GrandTotal).Msg("invoice created")
	return inv, nil
}

// Update replaces the editable parts of an invoice. The stored payment history
// survives unless the input carries one.
func (s *InvoiceService) Update(ctx context.Context, id primitive.ObjectID, in models.InvoiceInput) (*models.Invoice, error) {
	date, err := utils.ParseDate(in.Date, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := stockMoves(in.Items); err != nil {
		return nil, err
	}
	utils.FillLineTotals(in.Items)

	inv := &models.Invoice{
		Date:     date,
		Customer: in.Customer,
		Items:    lineItems(in.Items),
		Payment:  paymentFromInput(in.Payment),
	}
	replaceHistory := in.Payment.History != nil
	if replaceHistory {
		inv.Payment.History = *in.Payment.History
	}
	return s.store.Invoices.Update(ctx, id, inv, replaceHistory)
}

// CollectDue records a payment against an invoice as one atomic store update.
func (s *InvoiceService) CollectDue(ctx context.Context, id primitive.ObjectID, in models.DueCollection) (*models.Invoice, error) {
	amount := utils.Round2(in.Amount)
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	date, err := utils.ParseDate(in.Date, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	method := in.Method
	if method == "" {
		method = models.DefaultPaymentMethod
	}

	inv, err := s.store.Invoices.CollectDue(ctx, id, models.PaymentEntry{
		Date:   date.UTC(),
		Amount: amount,
		Method: method,
		Remark: in.Remark,
	})
	if err != nil {
		return nil, err
	}
	DueCollected.Add(amount)
	log.Info().Str("invoice", inv.InvoiceNo).Float64("amount", amount).
		Float64("due", inv.Payment.Due).Msg("due collected")
	return inv, nil
}

// ConvertQuotation issues an invoice with the quotation's customer, items and
// payment figures. The quotation itself is kept.
func (s *InvoiceService) ConvertQuotation(ctx context.Context, quotationID primitive.ObjectID) (*models.Invoice, error) {
	q, err := s.store.Quotations.FindByID(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	moves, err := stockMoves(q.Items)
	if err != nil {
		return nil, err
	}

	now := s.now()
	inv := &models.Invoice{
		Date:     now.UTC(),
		Customer: q.Customer,
		Items:    lineItems(q.Items),
		Payment: models.Payment{
			SubTotal:   q.Payment.SubTotal,
			Discount:   q.Payment.Discount,
			GrandTotal: q.Payment.GrandTotal,
			Paid:       q.Payment.Paid,
			Due:        q.Payment.Due,
			Method:     q.Payment.Method,
		},
	}
	seedHistory(&inv.Payment, now)
	created, err := s.create(ctx, inv, moves)
	if err != nil {
		return nil, err
	}
	log.Info().Str("quotation", q.QuotationNo).Str("invoice", created.InvoiceNo).Msg("quotation converted")
	return created, nil
}
