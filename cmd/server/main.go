package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/ativ97/battery-management/internal/auth"
	"github.com/ativ97/battery-management/internal/cache"
	"github.com/ativ97/battery-management/internal/config"
	"github.com/ativ97/battery-management/internal/database"
	"github.com/ativ97/battery-management/internal/db"
	"github.com/ativ97/battery-management/internal/handlers"
	"github.com/ativ97/battery-management/internal/health"
	apphttp "github.com/ativ97/battery-management/internal/http"
	"github.com/ativ97/battery-management/internal/middleware"
	"github.com/ativ97/battery-management/internal/monitoring"
	"github.com/ativ97/battery-management/internal/repositories"
	"github.com/ativ97/battery-management/internal/services"
	"github.com/ativ97/battery-management/internal/sms"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	if err := cache.Init(); err != nil {
		log.Printf("WARNING: Redis unavailable, verification sessions held in memory: %v", err)
	}

	migrator := database.NewMigrator(pool)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	customerRepo := repositories.NewCustomerRepository(pool)
	batteryRepo := repositories.NewBatteryRepository(pool)
	exchangeRepo := repositories.NewExchangeRepository(pool)
	warrantyRepo := repositories.NewWarrantyRepository(pool)
	scrapRepo := repositories.NewScrapRepository(pool)

	// Use Fast2SMS for production, fallback to MockSMS if API key not set
	var smsService sms.SMSProvider
	if apiKey := os.Getenv("FAST2SMS_API_KEY"); apiKey != "" {
		log.Println("Using Fast2SMS for OTP delivery")
		smsService = sms.NewFast2SMSService(apiKey)
	} else {
		log.Println("WARNING: FAST2SMS_API_KEY not set, using MockSMS (OTP will only print to logs)")
		smsService = sms.NewMockSMSService()
	}

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	authService := services.NewAuthService(cfg, jwtManager)
	otpService := services.NewOTPService(cache.NewSessionStore(), smsService, batteryRepo)
	warrantyService := services.NewWarrantyService(warrantyRepo)
	reportService := services.NewReportService(customerRepo, batteryRepo, exchangeRepo)
	disposalService := services.NewDisposalService(scrapRepo, warrantyRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)
	warrantyHandler := handlers.NewWarrantyHandler(warrantyService, otpService, reportService)
	stockHandler := handlers.NewStockHandler(warrantyService, reportService)
	historyHandler := handlers.NewHistoryHandler(reportService)
	disposalHandler := handlers.NewDisposalHandler(disposalService)
	healthHandler := handlers.NewHealthHandler(
		health.NewHealthChecker(pool), monitoring.NewCollector(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	corsMiddleware := middleware.NewCORS(cfg)

	router := apphttp.NewRouter(
		authHandler,
		dashboardHandler,
		warrantyHandler,
		stockHandler,
		historyHandler,
		disposalHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(
		middleware.RequestLogging(
			middleware.MetricsMiddleware(corsMiddleware(router))))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("%s warranty backend listening on %s", config.ShopName, addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
