package controllers

import (
	"net/http"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) CreateQuotation(c *gin.Context) {
	var in models.InvoiceInput
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	q, err := ctl.svc.Quotations.Create(ctx, in)
	if err != nil {
		storeError(c, err, "create quotation")
		return
	}
	success(c, http.StatusCreated, q)
}

func (ctl *Controller) UpdateQuotation(c *gin.Context) {
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
	q, err := ctl.svc.Quotations.Update(ctx, id, in)
	if err != nil {
		storeError(c, err, "update quotation")
		return
	}
	success(c, http.StatusOK, q)
}

func (ctl *Controller) GetQuotations(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()
	quotations, err := ctl.store.Quotations.List(ctx)
	if err != nil {
		storeError(c, err, "list quotations")
		return
	}
	c.JSON(http.StatusOK, quotations)
}

func (ctl *Controller) GetQuotation(c *gin.Context) {
	id, ok := objectID(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	q, err := ctl.store.Quotations.FindByID(ctx, id)
	if err != nil {
		storeError(c, err, "get quotation")
		return
	}
	c.JSON(http.StatusOK, q)
}

// ConvertQuotation issues an invoice from a stored quotation.
func (ctl *Controller) ConvertQuotation(c *gin.Context) {
	id, ok := objectID(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	inv, err := ctl.svc.Invoices.ConvertQuotation(ctx, id)
	if err != nil {
		storeError(c, err, "convert quotation")
		return
	}
	success(c, http.StatusCreated, inv)
}

func (ctl *Controller) DeleteQuotation(c *gin.Context) {
	id, ok := objectID(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := ctl.store.Quotations.Delete(ctx, id); err != nil {
		storeError(c, err, "delete quotation")
		return
	}
	success(c, http.StatusOK, nil)
}
