package controllers

import (
	"net/http"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (ctl *Controller) AddCustomer(c *gin.Context) {
	var customer models.Customer
	if !bindJSON(c, &customer) {
		return
	}
	customer.ID = primitive.NilObjectID

	ctx, cancel := requestContext(c)
	defer cancel()
	if err := ctl.store.Customers.Create(ctx, &customer); err != nil {
		storeError(c, err, "create customer")
		return
	}
	success(c, http.StatusCreated, customer)
}

func (ctl *Controller) GetCustomers(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()
	customers, err := ctl.store.Customers.List(ctx)
	if err != nil {
		storeError(c, err, "list customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (ctl *Controller) UpdateCustomer(c *gin.Context) {
	id, ok := objectID(c)
	if !ok {
		return
	}
	var in models.UpdateCustomer
	if !bindJSON(c, &in) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	customer, err := ctl.store.Customers.Update(ctx, id, in.Fields())
	if err != nil {
		storeError(c, err, "update customer")
		return
	}
	success(c, http.StatusOK, customer)
}

func (ctl *Controller) DeleteCustomer(c *gin.Context) {
	id, ok := objectID(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := ctl.store.Customers.Delete(ctx, id); err != nil {
		storeError(c, err, "delete customer")
		return
	}
	success(c, http.StatusOK, nil)
}
