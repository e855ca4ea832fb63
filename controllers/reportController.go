package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportInvoices streams every invoice as an xlsx workbook.
func (ctl *Controller) ExportInvoices(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()
	invoices, err := ctl.store.Invoices.List(ctx)
	if err != nil {
		storeError(c, err, "export invoices")
		return
	}

	filename := fmt.Sprintf("invoices-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := services.WriteInvoiceWorkbook(c.Writer, invoices); err != nil {
		// Headers are already out; all that is left is to log.
		log.Error().Err(err).Msg("write invoice workbook")
	}
}

// Health pings the store.
func (ctl *Controller) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	db := "connected"
	if err := ctl.store.Health.Ping(ctx); err != nil {
		status = http.StatusServiceUnavailable
		db = "error"
	}
	c.JSON(status, gin.H{"ok": status == http.StatusOK, "db": db})
}
