package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/wolfbtcc/Zenithdefi/internal/api"
	"github.com/wolfbtcc/Zenithdefi/internal/config"
	"github.com/wolfbtcc/Zenithdefi/internal/middleware"
	"github.com/wolfbtcc/Zenithdefi/internal/repository"
	"github.com/wolfbtcc/Zenithdefi/internal/service"
	"github.com/wolfbtcc/Zenithdefi/internal/ws"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	userRepo := repository.NewUserRepository(client, cfg.MongoDatabase, "users")
	ledgerRepo := repository.NewLedgerRepository(client, cfg.MongoDatabase, "financials")
	operationRepo := repository.NewOperationRepository(client, cfg.MongoDatabase, "operations")
	withdrawalRepo := repository.NewWithdrawalRepository(client, cfg.MongoDatabase, "withdrawals")
	rescueRepo := repository.NewRescueRepository(client, cfg.MongoDatabase, "rescues")
	proofRepo := repository.NewProofRepository(client, cfg.MongoDatabase, "proof_hashes")
	logRepo := repository.NewLogRepository(client, cfg.MongoDatabase, "logs")

	accountService := service.NewAccountService(userRepo)
	ledgerService := service.NewLedgerService(userRepo, ledgerRepo, operationRepo, withdrawalRepo, rescueRepo, proofRepo)
	logService := service.NewLogService(logRepo)

	notifyService := service.NewNoopNotifyService()
	if cfg.TelegramToken != "" {
		notifyService, err = service.NewTelegramNotifyService(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("Failed to initialize Telegram notifier: %v", err)
		}
	}

	hub := ws.NewHub()
	go hub.Run()
	wsHandler := ws.NewWebSocketHandler(hub)

	generator := service.NewRandomOpportunityGenerator(nil, nil, cfg.OpportunityMinPercent, cfg.OpportunityMaxPercent)
	opportunityService := service.NewOpportunityService(generator, hub, time.Duration(cfg.OpportunityInterval)*time.Second)
	go opportunityService.Run()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())

	api.SetupRoutes(r, cfg, accountService, ledgerService, opportunityService, logService, notifyService, wsHandler)

	addr := fmt.Sprintf("%s:%d", cfg.Address, cfg.Port)
	log.Printf("Starting server on %s", addr)
	log.Printf("Swagger UI available at %s/swagger/index.html", cfg.BaseURL)

	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
