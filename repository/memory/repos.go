package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/repository"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type productRepo struct{ db *DB }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Date.IsZero() {
		p.Date = now()
	}
	r.db.products.put(p.ID, *p)
	return nil
}

func (r *productRepo) List(ctx context.Context) ([]models.Product, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.products.list(nil, func(p models.Product) time.Time { return p.Date }), nil
}

func (r *productRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.products.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *productRepo) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Product, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.products.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	updated, err := applySet(p, fields)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	r.db.products.put(id, updated)
	return &updated, nil
}

func (r *productRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.products.del(id)
	return nil
}

func (r *productRepo) AdjustStock(ctx context.Context, id primitive.ObjectID, delta float64) (bool, error) {
	if err := checkCtx(ctx); err != nil {
		return false, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err, ok := r.db.FailAdjustStock[id]; ok {
		return false, err
	}
	p, ok := r.db.products.get(id)
	if !ok {
		return false, nil
	}
	p.Stock += delta
	r.db.products.put(id, p)
	return true, nil
}

type customerRepo struct{ db *DB }

func (r *customerRepo) Create(ctx context.Context, c *models.Customer) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.CreatedAt = now()
	r.db.customers.put(c.ID, *c)
	return nil
}

func (r *customerRepo) List(ctx context.Context) ([]models.Customer, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.customers.list(nil, func(c models.Customer) time.Time { return c.CreatedAt }), nil
}

func (r *customerRepo) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Customer, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.customers.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	updated, err := applySet(c, fields)
	if err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	r.db.customers.put(id, updated)
	return &updated, nil
}

func (r *customerRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.customers.del(id)
	return nil
}

type invoiceRepo struct{ db *DB }

func (r *invoiceRepo) Create(ctx context.Context, inv *models.Invoice) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if inv.ID.IsZero() {
		inv.ID = primitive.NewObjectID()
	}
	inv.CreatedAt = now()
	inv.UpdatedAt = inv.CreatedAt
	if inv.Payment.History == nil {
		inv.Payment.History = []models.PaymentEntry{}
	}
	r.db.invoices.put(inv.ID, *inv)
	return nil
}

func (r *invoiceRepo) List(ctx context.Context) ([]models.Invoice, error) {
	return r.list(ctx, nil)
}

func (r *invoiceRepo) ListDue(ctx context.Context) ([]models.Invoice, error) {
	return r.list(ctx, func(inv models.Invoice) bool { return inv.Payment.Due > 0 })
}

func (r *invoiceRepo) list(ctx context.Context, keep func(models.Invoice) bool) ([]models.Invoice, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.invoices.list(keep, func(inv models.Invoice) time.Time { return inv.CreatedAt }), nil
}

func (r *invoiceRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	inv, ok := r.db.invoices.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &inv, nil
}

func (r *invoiceRepo) Update(ctx context.Context, id primitive.ObjectID, in *models.Invoice, replaceHistory bool) (*models.Invoice, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	inv, ok := r.db.invoices.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	history := inv.Payment.History
	if replaceHistory {
		history = in.Payment.History
		if history == nil {
			history = []models.PaymentEntry{}
		}
	}
	if !in.Date.IsZero() {
		inv.Date = in.Date
	}
	inv.Customer = in.Customer
	inv.Items = in.Items
	inv.Payment = in.Payment
	inv.Payment.History = history
	inv.UpdatedAt = now()
	r.db.invoices.put(id, inv)
	return &inv, nil
}

func (r *invoiceRepo) CollectDue(ctx context.Context, id primitive.ObjectID, entry models.PaymentEntry) (*models.Invoice, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	inv, ok := r.db.invoices.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	inv.Payment.Paid = utils.Sum(inv.Payment.Paid, entry.Amount)
	inv.Payment.Due = utils.Sum(inv.Payment.GrandTotal, -inv.Payment.Paid)
	inv.Payment.Method = entry.Method
	inv.Payment.History = append(inv.Payment.History, entry)
	inv.UpdatedAt = now()
	r.db.invoices.put(id, inv)
	stored, _ := r.db.invoices.get(id)
	return &stored, nil
}

func (r *invoiceRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.invoices.del(id)
	return nil
}

func (r *invoiceRepo) Count(ctx context.Context) (int64, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(len(r.db.invoices.rows)), nil
}

type quotationRepo struct{ db *DB }

func (r *quotationRepo) Create(ctx context.Context, q *models.Quotation) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	q.CreatedAt = now()
	q.UpdatedAt = q.CreatedAt
	r.db.quotations.put(q.ID, *q)
	return nil
}

func (r *quotationRepo) List(ctx context.Context) ([]models.Quotation, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.quotations.list(nil, func(q models.Quotation) time.Time { return q.CreatedAt }), nil
}

func (r *quotationRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Quotation, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	q, ok := r.db.quotations.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &q, nil
}

func (r *quotationRepo) Update(ctx context.Context, id primitive.ObjectID, in *models.Quotation) (*models.Quotation, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	q, ok := r.db.quotations.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !in.Date.IsZero() {
		q.Date = in.Date
	}
	q.Customer = in.Customer
	q.Items = in.Items
	q.Payment = in.Payment
	q.UpdatedAt = now()
	r.db.quotations.put(id, q)
	return &q, nil
}

func (r *quotationRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.quotations.del(id)
	return nil
}

func (r *quotationRepo) Count(ctx context.Context) (int64, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(len(r.db.quotations.rows)), nil
}

type counterRepo struct{ db *DB }

func (r *counterRepo) Next(ctx context.Context, name string) (int64, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.counters[name]++
	return r.db.counters[name], nil
}

func (r *counterRepo) EnsureAtLeast(ctx context.Context, name string, floor int64) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.counters[name] < floor {
		r.db.counters[name] = floor
	}
	return nil
}

type adminRepo struct{ db *DB }

func (r *adminRepo) Ensure(ctx context.Context, defaults models.Admin) (*models.Admin, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.admin == nil {
		a := defaults
		a.ID = primitive.NewObjectID()
		a.Key = models.SingletonKey
		a.CreatedAt = now()
		a.UpdatedAt = a.CreatedAt
		r.db.admin = &a
	}
	a := copyDoc(*r.db.admin)
	return &a, nil
}

func (r *adminRepo) Update(ctx context.Context, fields map[string]interface{}) (*models.Admin, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.admin == nil {
		return nil, repository.ErrNotFound
	}
	updated, err := applySet(*r.db.admin, fields)
	if err != nil {
		return nil, fmt.Errorf("update admin: %w", err)
	}
	updated.UpdatedAt = now()
	r.db.admin = &updated
	a := copyDoc(updated)
	return &a, nil
}

type userRepo struct{ db *DB }

func (r *userRepo) FindDefault(ctx context.Context) (*models.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.user == nil {
		return nil, repository.ErrNotFound
	}
	u := *r.db.user
	return &u, nil
}

func (r *userRepo) EnsureDefault(ctx context.Context, u models.User) (bool, error) {
	if err := checkCtx(ctx); err != nil {
		return false, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.user != nil {
		return false, nil
	}
	u.ID = primitive.NewObjectID()
	u.Key = models.SingletonKey
	r.db.user = &u
	return true, nil
}

func (r *userRepo) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.user == nil || r.db.user.ID != id {
		return repository.ErrNotFound
	}
	r.db.user.Pass = hash
	return nil
}

type sessionRepo struct{ db *DB }

func (r *sessionRepo) Create(ctx context.Context, s *models.Session) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	r.db.sessions = append(r.db.sessions, *s)
	return nil
}
