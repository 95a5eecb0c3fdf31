package main

import (
	"log"
	"os"

	"github.com/alnasr/invoicing-api/internal/application/service"
	"github.com/alnasr/invoicing-api/internal/config"
	"github.com/alnasr/invoicing-api/internal/infrastructure/database"
	"github.com/alnasr/invoicing-api/internal/infrastructure/repository"
	"github.com/alnasr/invoicing-api/internal/presentation/http/handler"
	"github.com/alnasr/invoicing-api/internal/presentation/http/routes"
	"github.com/alnasr/invoicing-api/pkg/pdf"
	"github.com/alnasr/invoicing-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	quotationItemRepo := repository.NewQuotationItemRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	customerService := service.NewCustomerService(customerRepo)
	projectService := service.NewProjectService(projectRepo, customerRepo)
	quotationService := service.NewQuotationService(quotationRepo, quotationItemRepo, customerRepo, projectRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, quotationRepo, cfg.Seller, cfg.Invoice.DueDays)

	renderer := pdf.NewRenderer(pdf.Seller{
		Name:      cfg.Seller.Name,
		VATNumber: cfg.Seller.VATNumber,
		Address:   cfg.Seller.Address,
	})
	documentService := service.NewDocumentService(invoiceService, quotationService, renderer, cfg.Invoice.Currency)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Customer:  handler.NewCustomerHandler(customerService),
		Project:   handler.NewProjectHandler(projectService),
		Quotation: handler.NewQuotationHandler(quotationService, documentService),
		Invoice:   handler.NewInvoiceHandler(invoiceService, documentService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	// Start server
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s on port %s", cfg.App.Name, port)
	if err := router.Run(":" + port); err != nil {
		log.Printf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
