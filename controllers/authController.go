package controllers

import (
	"errors"
	"net/http"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/middleware"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/services"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/utils"

	"github.com/gin-gonic/gin"
)

// Login answers with the bare strings "Success" or "Wrong password". The token
// travels in an httpOnly cookie.
func (ctl *Controller) Login(c *gin.Context) {
	var in models.LoginInput
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	token, err := ctl.svc.Auth.Login(ctx, in, services.Client{IP: c.ClientIP(), Device: c.Request.UserAgent()})
	if errors.Is(err, services.ErrWrongPassword) {
		c.JSON(http.StatusOK, models.LoginWrongPassword)
		return
	}
	if err != nil {
		storeError(c, err, "login")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(utils.TokenTTL.Seconds()), "/", "", ctl.SecureCookie, true)
	c.JSON(http.StatusOK, models.LoginSuccess)
}

func (ctl *Controller) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", ctl.SecureCookie, true)
	success(c, http.StatusOK, nil)
}

func (ctl *Controller) ChangePassword(c *gin.Context) {
	var in models.ChangePasswordInput
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	err := ctl.svc.Auth.ChangePassword(ctx, in)
	if errors.Is(err, services.ErrWrongPassword) {
		fail(c, http.StatusBadRequest, models.LoginWrongPassword)
		return
	}
	if err != nil {
		storeError(c, err, "change password")
		return
	}
	success(c, http.StatusOK, nil)
}
