package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ativ97/battery-management/internal/handlers"
	"github.com/ativ97/battery-management/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	dashboardHandler *handlers.DashboardHandler,
	warrantyHandler *handlers.WarrantyHandler,
	stockHandler *handlers.StockHandler,
	historyHandler *handlers.HistoryHandler,
	disposalHandler *handlers.DisposalHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("/stats", dashboardHandler.Stats).Methods("GET")
	dashboardAPI.HandleFunc("/recent-exchanges", dashboardHandler.RecentExchanges).Methods("GET")

	// Protected API routes - Verification
	verifyAPI := r.PathPrefix("/api/verification").Subrouter()
	verifyAPI.Use(authMiddleware.Authenticate)
	verifyAPI.HandleFunc("/send-otp", warrantyHandler.SendOTP).Methods("POST")
	verifyAPI.HandleFunc("/verify-otp", warrantyHandler.VerifyOTP).Methods("POST")

	// Protected API routes - Lifecycle operations
	warrantyAPI := r.PathPrefix("/api/warranty").Subrouter()
	warrantyAPI.Use(authMiddleware.Authenticate)
	warrantyAPI.HandleFunc("/exchange", warrantyHandler.NewExchange).Methods("POST")
	warrantyAPI.HandleFunc("/service-entry", warrantyHandler.ServiceEntry).Methods("POST")
	warrantyAPI.HandleFunc("/return", warrantyHandler.ReturnToCustomer).Methods("POST")
	warrantyAPI.HandleFunc("/receipt/{serial}", warrantyHandler.Receipt).Methods("GET")

	// Protected API routes - Batteries
	batteriesAPI := r.PathPrefix("/api/batteries").Subrouter()
	batteriesAPI.Use(authMiddleware.Authenticate)
	batteriesAPI.HandleFunc("/in-service", stockHandler.InService).Methods("GET")
	batteriesAPI.HandleFunc("/{serial}", historyHandler.BatteryBySerial).Methods("GET")
	batteriesAPI.HandleFunc("/{serial}/history", historyHandler.BatteryHistory).Methods("GET")
	batteriesAPI.HandleFunc("/{serial}/status", warrantyHandler.UpdateStatus).Methods("PUT")

	// Protected API routes - Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("/{phone}", historyHandler.CustomerByPhone).Methods("GET")
	customersAPI.HandleFunc("/{phone}/batteries", historyHandler.CustomerBatteries).Methods("GET")
	customersAPI.HandleFunc("/{phone}/history", historyHandler.CustomerHistory).Methods("GET")
	customersAPI.HandleFunc("/{phone}/ready-for-pickup", historyHandler.ReadyForPickup).Methods("GET")

	// Protected API routes - Stock
	stockAPI := r.PathPrefix("/api/stock").Subrouter()
	stockAPI.Use(authMiddleware.Authenticate)
	stockAPI.HandleFunc("", stockHandler.AddStock).Methods("POST")
	stockAPI.HandleFunc("/loan", stockHandler.StockLoan).Methods("POST")
	stockAPI.HandleFunc("/reception", stockHandler.StockReception).Methods("POST")
	stockAPI.HandleFunc("/pending", stockHandler.PendingFactoryStock).Methods("GET")
	stockAPI.HandleFunc("/receipt-history", stockHandler.ReceiptHistory).Methods("GET")

	// Protected API routes - Disposal pipeline
	disposalAPI := r.PathPrefix("/api/disposal").Subrouter()
	disposalAPI.Use(authMiddleware.Authenticate)
	disposalAPI.HandleFunc("/scrap", disposalHandler.RegisterScrap).Methods("POST")
	disposalAPI.HandleFunc("/scrap", disposalHandler.ListScrap).Methods("GET")
	disposalAPI.HandleFunc("/challan", disposalHandler.ListChallan).Methods("GET")
	disposalAPI.HandleFunc("/challan", disposalHandler.MoveToChallan).Methods("POST")
	disposalAPI.HandleFunc("/challan/clear", disposalHandler.ClearChallan).Methods("POST")
	disposalAPI.HandleFunc("/challan/pdf", disposalHandler.ChallanPDF).Methods("GET")
	disposalAPI.HandleFunc("/archive", disposalHandler.ListArchive).Methods("GET")

	// Protected API routes - Monitoring
	monitoringAPI := r.PathPrefix("/api/monitoring").Subrouter()
	monitoringAPI.Use(authMiddleware.Authenticate)
	monitoringAPI.HandleFunc("/system", healthHandler.SystemStats).Methods("GET")

	// Health endpoint (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
