package router

import (
	"net/http"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/dto"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/handler"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// RoleAdmin may create, change and delete user accounts
const RoleAdmin = "admin"

// Handlers groups every API handler the router mounts
type Handlers struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Banks        *handler.BankHandler
	Transactions *handler.TransactionHandler
	Invoices     *handler.InvoiceHandler
	Equipment    *handler.EquipmentHandler
	Vehicles     *handler.VehicleHandler
	Assignments  *handler.AssignmentHandler
	Licenses     *handler.LicenseHandler
	Employees    *handler.EmployeeHandler
	Documents    *handler.DocumentHandler
	Contracts    *handler.ContractHandler
	Alerts       *handler.AlertHandler
	Upload       *handler.UploadHandler
	System       *handler.SystemHandler
}

// RouteOptions tunes the routes registered by RegisterAPI
type RouteOptions struct {
	// AuthMiddleware runs in front of the auth endpoints, e.g. a stricter rate limit
	AuthMiddleware []gin.HandlerFunc
}

// RegisterAPI registers every /api/v<version> domain group on r
func RegisterAPI(r *Router, h Handlers, opts RouteOptions) *Router {
	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.Use(opts.AuthMiddleware...)
	authRoutes.POST("/register", h.Auth.Register)
	authRoutes.POST("/login", h.Auth.Login)
	authRoutes.POST("/logout", h.Auth.Logout)
	authRoutes.GET("/me", h.Auth.Me)
	authRoutes.PUT("/password", h.Auth.ChangePassword)

	userRoutes := NewDomainGroup("users", "/users").
		CRUD(h.Users, middleware.RequireRoles(RoleAdmin))

	bankRoutes := NewDomainGroup("banks", "/banks").CRUD(h.Banks)
	bankRoutes.GET("/:id/transactions", h.Banks.ListTransactions)

	transactionRoutes := NewDomainGroup("bank-transactions", "/bank-transactions").CRUD(h.Transactions)
	invoiceRoutes := NewDomainGroup("invoices", "/invoices").CRUD(h.Invoices)

	equipmentRoutes := NewDomainGroup("equipment", "/equipment").CRUD(h.Equipment)
	vehicleRoutes := NewDomainGroup("vehicles", "/vehicles").CRUD(h.Vehicles)
	assignmentRoutes := NewDomainGroup("equipment-assignments", "/equipment-assignments").CRUD(h.Assignments)
	assignmentRoutes.PUT("/:id/return", h.Assignments.Return)
	licenseRoutes := NewDomainGroup("software-licenses", "/software-licenses").CRUD(h.Licenses)

	employeeRoutes := NewDomainGroup("employees", "/employees").CRUD(h.Employees)

	documentRoutes := NewDomainGroup("documents", "/documents")
	documentRoutes.POST("/upload", h.Upload.Upload)
	documentRoutes.CRUD(h.Documents)
	documentRoutes.GET("/:id/download", h.Documents.Download)
	contractRoutes := NewDomainGroup("contracts", "/contracts").CRUD(h.Contracts)

	alertRoutes := NewDomainGroup("alerts", "/alerts").CRUD(h.Alerts)
	alertRoutes.PUT("/:id/acknowledge", h.Alerts.Acknowledge)
	alertRoutes.PUT("/:id/resolve", h.Alerts.Resolve)

	uploadRoutes := NewDomainGroup("upload", "/upload")
	uploadRoutes.POST("", h.Upload.Upload)

	systemRoutes := NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", h.System.GetSystemInfo)
	systemRoutes.GET("/ping", h.System.Ping)

	return r.Register(authRoutes).
		Register(userRoutes).
		Register(bankRoutes).
		Register(transactionRoutes).
		Register(invoiceRoutes).
		Register(equipmentRoutes).
		Register(vehicleRoutes).
		Register(assignmentRoutes).
		Register(licenseRoutes).
		Register(employeeRoutes).
		Register(documentRoutes).
		Register(contractRoutes).
		Register(alertRoutes).
		Register(uploadRoutes).
		Register(systemRoutes)
}

// RegisterHealth mounts the health check outside the versioned prefix as
// well as under it.
func RegisterHealth(engine *gin.Engine, system *handler.SystemHandler) {
	engine.GET("/health", system.Health)
	engine.GET("/api/v1/health", system.Health)
}

// ServeUploads exposes files of the local storage provider under /uploads
func ServeUploads(engine *gin.Engine, dir string) {
	if dir == "" {
		return
	}
	engine.Static("/uploads", dir)
}

// ConfigureFallbacks makes unknown routes and unsupported methods answer
// with the JSON error envelope: 405 when the path exists under another
// method, 404 otherwise.
func ConfigureFallbacks(engine *gin.Engine) {
	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponse(
			dto.ErrCodeMethodNotAllowed,
			"Method "+c.Request.Method+" not allowed",
			middleware.GetRequestID(c),
		))
	})
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.ErrCodeRouteNotFound,
			"Route "+c.Request.Method+" "+c.Request.URL.Path+" not found",
			middleware.GetRequestID(c),
		))
	})
}
