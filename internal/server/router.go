package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sikabapp/sikab-backend/internal/handlers"
	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/middleware"
	"github.com/sikabapp/sikab-backend/internal/services"
	"github.com/sikabapp/sikab-backend/internal/types"
)

type RouterConfig struct {
	Logger          *logger.Logger
	AuthService     services.AuthService
	AuthHandler     *handlers.AuthHandler
	UserHandler     *handlers.UserHandler
	MasterHandler   *handlers.MasterDataHandler
	ParamHandler    *handlers.ParameterHandler
	ArrivalHandler  *handlers.ArrivalHandler
	WeighingHandler *handlers.WeighingHandler
	QcHandler       *handlers.QcHandler
	FileHandler     *handlers.FileHandler
	SSEHandler      *handlers.SSEHandler
	AllowedOrigins  []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	router.Use(cors.New(corsCfg))

	router.GET("/healthcheck", handlers.Healthcheck)

	api := router.Group("/api")
	api.POST("/auth/login", cfg.AuthHandler.Login)
	api.POST("/auth/logout", cfg.AuthHandler.Logout)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(cfg.AuthService, cfg.Logger))

	authed.GET("/auth/session", cfg.AuthHandler.Session)
	authed.GET("/sse", cfg.SSEHandler.Stream)
	authed.GET("/images/*fileId", cfg.FileHandler.Get)

	// User management is reserved for admins.
	users := authed.Group("/users", middleware.RequireRole(types.RoleAdmin))
	users.GET("", cfg.UserHandler.List)
	users.POST("", cfg.UserHandler.Create)
	users.PUT("/:id", cfg.UserHandler.Update)
	users.DELETE("/:id", cfg.UserHandler.Delete)

	// Master data: everyone reads, admins write.
	adminOnly := middleware.RequireRole(types.RoleAdmin)

	authed.GET("/suppliers", cfg.MasterHandler.ListSuppliers)
	authed.POST("/suppliers", adminOnly, cfg.MasterHandler.CreateSupplier)
	authed.PUT("/suppliers/:id", adminOnly, cfg.MasterHandler.UpdateSupplier)
	authed.DELETE("/suppliers/:id", adminOnly, cfg.MasterHandler.DeleteSupplier)

	authed.GET("/materials", cfg.MasterHandler.ListMaterials)
	authed.POST("/materials", adminOnly, cfg.MasterHandler.CreateMaterial)
	authed.PUT("/materials/:id", adminOnly, cfg.MasterHandler.UpdateMaterial)
	authed.DELETE("/materials/:id", adminOnly, cfg.MasterHandler.DeleteMaterial)

	authed.GET("/conditions", cfg.MasterHandler.ListConditions)
	authed.POST("/conditions", adminOnly, cfg.MasterHandler.CreateCondition)
	authed.PUT("/conditions/:id", adminOnly, cfg.MasterHandler.UpdateCondition)
	authed.DELETE("/conditions/:id", adminOnly, cfg.MasterHandler.DeleteCondition)

	authed.GET("/qc-statuses", cfg.MasterHandler.ListQcStatuses)
	authed.POST("/qc-statuses", adminOnly, cfg.MasterHandler.CreateQcStatus)
	authed.PUT("/qc-statuses/:id", adminOnly, cfg.MasterHandler.UpdateQcStatus)
	authed.DELETE("/qc-statuses/:id", adminOnly, cfg.MasterHandler.DeleteQcStatus)

	authed.GET("/parameters", cfg.ParamHandler.List)
	authed.POST("/parameters", adminOnly, cfg.ParamHandler.Create)
	authed.PUT("/parameters/:id", adminOnly, cfg.ParamHandler.Update)
	authed.DELETE("/parameters/:id", adminOnly, cfg.ParamHandler.Delete)

	// Workflow checkpoints, one role group each.
	authed.POST("/arrivals",
		middleware.RequireRole(types.RoleSecurity, types.RoleAdmin),
		cfg.ArrivalHandler.Create)
	authed.GET("/arrivals", cfg.ArrivalHandler.List)
	authed.GET("/arrivals/:id", cfg.ArrivalHandler.Get)
	authed.GET("/arrivals/by-code/:code", cfg.ArrivalHandler.GetByCode)
	authed.GET("/arrivals/:id/qr", cfg.ArrivalHandler.QR)
	authed.POST("/arrivals/:id/approve",
		middleware.RequireRole(types.RoleManager, types.RoleAdmin),
		cfg.ArrivalHandler.Approve)

	authed.POST("/weighings",
		middleware.RequireRole(types.RoleWeighing, types.RoleAdmin),
		cfg.WeighingHandler.Record)

	authed.POST("/qc",
		middleware.RequireRole(types.RoleQc, types.RoleAdmin),
		cfg.QcHandler.Submit)
	authed.GET("/qc/history/:id", cfg.QcHandler.History)

	dash := authed.Group("/dashboard")
	dash.GET("/security", cfg.ArrivalHandler.SecurityDashboard)
	dash.GET("/weighing", cfg.ArrivalHandler.WeighingDashboard)
	dash.GET("/qc", cfg.ArrivalHandler.QcDashboard)

	return router
}
