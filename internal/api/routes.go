package api

import (
	"os"
	"path/filepath"

	"github.com/wolfbtcc/Zenithdefi/internal/config"
	"github.com/wolfbtcc/Zenithdefi/internal/middleware"
	"github.com/wolfbtcc/Zenithdefi/internal/service"
	"github.com/wolfbtcc/Zenithdefi/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(
	r *gin.Engine,
	cfg *config.Config,
	accountService service.AccountService,
	ledgerService service.LedgerService,
	opportunityService service.OpportunityService,
	logService service.LogService,
	notifyService service.NotifyService,
	wsHandler *ws.WebSocketHandler,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	userHandler := NewUserHandler(accountService, ledgerService, logService, cfg)
	financialHandler := NewFinancialHandler(ledgerService, logService)
	operationHandler := NewOperationHandler(ledgerService, accountService, opportunityService, logService)
	withdrawalHandler := NewWithdrawalHandler(ledgerService, logService, notifyService)
	rescueHandler := NewRescueHandler(ledgerService, logService, notifyService)
	affiliateHandler := NewAffiliateHandler(accountService, ledgerService)
	logHandler := NewLogHandler(logService)
	overviewHandler := NewOverviewHandler(accountService, ledgerService, logService)

	if wd, err := os.Getwd(); err == nil {
		swaggerJSONPath := filepath.Join(wd, "docs", "swagger.json")
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/docs/swagger.json")))
		r.GET("/docs/swagger.json", func(c *gin.Context) {
			c.File(swaggerJSONPath)
		})
	}

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", userHandler.Login)

		user := v1.Group("/").Use(middleware.UserAuthMiddleware(cfg, accountService))
		{
			user.GET("/me", userHandler.GetProfile)
			user.GET("/financials", financialHandler.GetFinancials)
			user.POST("/deposits", financialHandler.CreateDeposit)
			user.GET("/opportunity", operationHandler.GetOpportunity)
			user.POST("/operations", operationHandler.ExecuteOperation)
			user.GET("/operations", operationHandler.GetOperations)
			user.POST("/withdrawals", withdrawalHandler.CreateWithdrawal)
			user.GET("/withdrawals", withdrawalHandler.GetWithdrawals)
			user.POST("/rescues", rescueHandler.CreateRescue)
			user.GET("/rescues", rescueHandler.GetRescues)
			user.GET("/affiliate", affiliateHandler.GetAffiliate)
			user.GET("/activity", logHandler.GetActivity)
		}

		admin := v1.Group("/admin").Use(
			middleware.UserAuthMiddleware(cfg, accountService),
			middleware.AdminAuthMiddleware(cfg),
		)
		{
			admin.GET("/overview", overviewHandler.GetOverview)
			admin.GET("/logs", logHandler.GetAllLogs)
		}
	}

	r.GET("/ws", wsHandler.HandleConnection)
}
