package services

import "github.com/prometheus/client_golang/prometheus"

var (
	InvoicesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "invoices_created_total",
		Help: "Invoices committed, including quotation conversions",
	})
	QuotationsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quotations_created_total",
		Help: "Quotations created",
	})
	StockUnitsDecremented = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stock_units_decremented_total",
		Help: "Product stock units removed by committed invoices",
	})
	DueCollected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "due_collected_amount_total",
		Help: "Sum of amounts collected against outstanding invoices",
	})
)

func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(InvoicesCreated, QuotationsCreated, StockUnitsDecremented, DueCollected)
}
