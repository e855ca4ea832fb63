package controllers

import (
	"net/http"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"

	"github.com/gin-gonic/gin"
)

// CreateInvoice numbers the invoice and decrements product stock in one transaction.
func (ctl *Controller) CreateInvoice(c *gin.Context) {
	var in models.InvoiceInput
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	inv, err := ctl.svc.Invoices.Create(ctx, in)
	if err != nil {
		storeError(c, err, "create invoice")
		return
	}
	success(c, http.StatusCreated, inv)
}

func (ctl *Controller) UpdateInvoice(c *gin.Context) {
	id, ok := objectID(c)
	if !ok {
		return
	}
	var in models.InvoiceInput
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	inv, err := ctl.svc.Invoices.Update(ctx, id, in)
	if err != nil {
		storeError(c, err, "update invoice")
		return
	}
	success(c, http.StatusOK, inv)
}

func (ctl *Controller) GetInvoices(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()
	invoices, err := ctl.store.Invoices.List(ctx)
	if err != nil {
		storeError(c, err, "list invoices")
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (ctl *Controller) GetInvoice(c *gin.Context) {
	id, ok := objectID(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	inv, err := ctl.store.Invoices.FindByID(ctx, id)
	if err != nil {
		storeError(c, err, "get invoice")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// GetDueInvoices lists invoices with an outstanding balance.
func (ctl *Controller) GetDueInvoices(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()
	invoices, err := ctl.store.Invoices.ListDue(ctx)
	if err != nil {
		storeError(c, err, "list due invoices")
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (ctl *Controller) CollectDue(c *gin.Context) {
	id, ok := objectID(c)
	if !ok {
		return
	}
	var in models.DueCollection
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	inv, err := ctl.svc.Invoices.CollectDue(ctx, id, in)
	if err != nil {
		storeError(c, err, "collect due")
		return
	}
	success(c, http.StatusOK, inv)
}

func (ctl *Controller) DeleteInvoice(c *gin.Context) {
	id, ok := objectID(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := ctl.store.Invoices.Delete(ctx, id); err != nil {
		storeError(c, err, "delete invoice")
		return
	}
	success(c, http.StatusOK, nil)
}
