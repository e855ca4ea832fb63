package services

import (
	"fmt"
	"io"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/utils"

	"github.com/xuri/excelize/v2"
)

const invoiceSheet = "Invoices"

var invoiceHeader = []interface{}{
	"Invoice No", "Date", "Customer", "Mobile", "Items", "Sub Total", "Discount",
	"Grand Total", "Paid", "Due", "Method",
}

// WriteInvoiceWorkbook writes invoices as a single-sheet xlsx workbook.
func WriteInvoiceWorkbook(w io.Writer, invoices []models.Invoice) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", invoiceSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(invoiceSheet, "A1", &invoiceHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(invoiceSheet, 1, 1, bold); err != nil {
		return err
	}

	var grand, paid, due []float64
	for i, inv := range invoices {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			inv.InvoiceNo,
			inv.Date.Format("2006-01-02"),
			inv.Customer.Name,
			inv.Customer.Mobile,
			len(inv.Items),
			inv.Payment.SubTotal,
			inv.Payment.Discount,
			inv.Payment.GrandTotal,
			inv.Payment.Paid,
			inv.Payment.Due,
			inv.Payment.Method,
		}
		if err := f.SetSheetRow(invoiceSheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		grand = append(grand, inv.Payment.GrandTotal)
		paid = append(paid, inv.Payment.Paid)
		due = append(due, inv.Payment.Due)
	}

	totalRow := len(invoices) + 2
	totals := []interface{}{"Total", nil, nil, nil, nil, nil, nil,
		utils.Sum(grand...), utils.Sum(paid...), utils.Sum(due...)}
	if err := f.SetSheetRow(invoiceSheet, fmt.Sprintf("A%d", totalRow), &totals); err != nil {
		return err
	}
	if err := f.SetRowStyle(invoiceSheet, totalRow, totalRow, bold); err != nil {
		return err
	}
	if err := f.SetColWidth(invoiceSheet, "A", "D", 18); err != nil {
		return err
	}
	return f.Write(w)
}
