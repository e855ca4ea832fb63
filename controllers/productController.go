package controllers

import (
	"net/http"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (ctl *Controller) AddProduct(c *gin.Context) {
	var product models.Product
	if !bindJSON(c, &product) {
		return
	}
	product.ID = primitive.NilObjectID

	ctx, cancel := requestContext(c)
	defer cancel()
	if err := ctl.store.Products.Create(ctx, &product); err != nil {
		storeError(c, err, "create product")
		return
	}
	success(c, http.StatusCreated, product)
}

func (ctl *Controller) GetProducts(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()
	products, err := ctl.store.Products.List(ctx)
	if err != nil {
		storeError(c, err, "list products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (ctl *Controller) UpdateProduct(c *gin.Context) {
	id, ok := objectID(c)
	if !ok {
		return
	}
	var in models.UpdateProduct
	if !bindJSON(c, &in) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	product, err := ctl.store.Products.Update(ctx, id, in.Fields())
	if err != nil {
		storeError(c, err, "update product")
		return
	}
	success(c, http.StatusOK, product)
}

func (ctl *Controller) DeleteProduct(c *gin.Context) {
	id, ok := objectID(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := ctl.store.Products.Delete(ctx, id); err != nil {
		storeError(c, err, "delete product")
		return
	}
	success(c, http.StatusOK, nil)
}

// LowStock lists products at or below their alert quantity.
func (ctl *Controller) LowStock(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()
	products, err := ctl.svc.Reports.LowStock(ctx)
	if err != nil {
		storeError(c, err, "low stock")
		return
	}
	c.JSON(http.StatusOK, products)
}
