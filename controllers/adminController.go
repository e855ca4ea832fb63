package controllers

import (
	"net/http"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"

	"github.com/gin-gonic/gin"
)

// GetAdminProfile returns the profile document, creating the default on first use.
func (ctl *Controller) GetAdminProfile(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()
	admin, err := ctl.svc.Profile.Get(ctx)
	if err != nil {
		storeError(c, err, "get admin profile")
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (ctl *Controller) UpdateAdminProfile(c *gin.Context) {
	var in models.UpdateAdmin
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	admin, err := ctl.svc.Profile.Update(ctx, in)
	if err != nil {
		storeError(c, err, "update admin profile")
		return
	}
	success(c, http.StatusOK, admin)
}
