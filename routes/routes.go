package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/controllers"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/middleware"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/services"

	"github.com/gin-gonic/gin"
)

type Options struct {
	APIPrefix    string
	StaticDir    string
	AuthRequired bool
	JWTSecret    []byte
	LoginLimiter *middleware.IPRateLimiter

	Metrics    http.Handler
	MetricsIPs []string
}

func InitializeRoutes(router *gin.Engine, ctl *controllers.Controller, opts Options) {
	router.GET("/healthz", ctl.Health)
	if opts.Metrics != nil {
		router.GET("/metrics", middleware.MetricsHandler(opts.MetricsIPs, opts.Metrics))
	}

	prefix := "/" + strings.Trim(opts.APIPrefix, "/")
	if prefix == "/" {
		prefix = ""
	}
	api := router.Group(prefix)

	login := []gin.HandlerFunc{}
	if opts.LoginLimiter != nil {
		login = append(login, opts.LoginLimiter.Handler())
	}
	api.POST("/login", append(login, ctl.Login)...)
	api.POST("/logout", ctl.Logout)

	admin := api.Group("")
	if opts.AuthRequired {
		admin.Use(middleware.AuthMiddleware(opts.JWTSecret, services.AdminRole))
	}
	{
		admin.GET("/admin-profile", ctl.GetAdminProfile)
		admin.PUT("/admin-profile", ctl.UpdateAdminProfile)
		admin.PUT("/change-password", ctl.ChangePassword)

		admin.POST("/add-product", ctl.AddProduct)
		admin.GET("/products", ctl.GetProducts)
		admin.PUT("/update-product/:id", ctl.UpdateProduct)
		admin.DELETE("/delete-product/:id", ctl.DeleteProduct)
		admin.GET("/low-stock", ctl.LowStock)

		admin.POST("/add-customer", ctl.AddCustomer)
		admin.GET("/customers", ctl.GetCustomers)
		admin.PUT("/update-customer/:id", ctl.UpdateCustomer)
		admin.DELETE("/delete-customer/:id", ctl.DeleteCustomer)

		admin.POST("/create-invoice", ctl.CreateInvoice)
		admin.PUT("/update-invoice/:id", ctl.UpdateInvoice)
		admin.GET("/invoices", ctl.GetInvoices)
		admin.GET("/invoices/:id", ctl.GetInvoice)
		admin.GET("/due-invoices", ctl.GetDueInvoices)
		admin.POST("/collect-due/:id", ctl.CollectDue)
		admin.DELETE("/delete-invoice/:id", ctl.DeleteInvoice)
		admin.GET("/export/invoices", ctl.ExportInvoices)

		admin.POST("/create-quotation", ctl.CreateQuotation)
		admin.PUT("/update-quotation/:id", ctl.UpdateQuotation)
		admin.GET("/quotations", ctl.GetQuotations)
		admin.GET("/quotations/:id", ctl.GetQuotation)
		admin.POST("/convert-quotation/:id", ctl.ConvertQuotation)
		admin.DELETE("/delete-quotation/:id", ctl.DeleteQuotation)
	}

	router.NoRoute(spaFallback(prefix, opts.StaticDir))
}

// spaFallback serves files from the built frontend and index.html for any other
// GET so client side routes work on reload. API paths never fall through to it.
func spaFallback(prefix, staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		isAPI := prefix != "" && (path == prefix || strings.HasPrefix(path, prefix+"/"))
		if isAPI || staticDir == "" || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			c.JSON(http.StatusNotFound, models.APIResponse{Status: models.StatusError, Error: "Route not found"})
			return
		}

		file := filepath.Join(staticDir, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		index := filepath.Join(staticDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, models.APIResponse{Status: models.StatusError, Error: "Route not found"})
			return
		}
		c.File(index)
	}
}
