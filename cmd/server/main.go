package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	ledgerRepo "github.com/gestock/inventory-backend/internal/ledger/repository"
	"github.com/gestock/inventory-backend/internal/platform/config"
	"github.com/gestock/inventory-backend/internal/platform/database"
	"github.com/gestock/inventory-backend/internal/platform/logger"
	productAPI "github.com/gestock/inventory-backend/internal/product/api"
	productRepo "github.com/gestock/inventory-backend/internal/product/repository"
	productService "github.com/gestock/inventory-backend/internal/product/service"
	lineAPI "github.com/gestock/inventory-backend/internal/productline/api"
	lineRepo "github.com/gestock/inventory-backend/internal/productline/repository"
	lineService "github.com/gestock/inventory-backend/internal/productline/service"
	reportAPI "github.com/gestock/inventory-backend/internal/report/api"
	reportService "github.com/gestock/inventory-backend/internal/report/service"
	userAPI "github.com/gestock/inventory-backend/internal/user/api"
	userRepo "github.com/gestock/inventory-backend/internal/user/repository"
	userService "github.com/gestock/inventory-backend/internal/user/service"
)

func main() {
	config.Load()
	mongoCfg := config.LoadMongoConfig()
	serverCfg := config.LoadServerConfig("3000")
	uploadCfg := config.LoadUploadConfig()
	reportCfg := config.LoadReportConfig()

	logger.Info("Starting Inventory Backend...")

	handle, err := database.Connect(mongoCfg.URI, mongoCfg.Database)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", err)
		return
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := handle.Close(ctx); err != nil {
			logger.Error("Failed to disconnect from MongoDB", err)
		}
	}()

	// Repositories share the one explicit storage handle.
	users := userRepo.NewMongoUserRepository(handle)
	products := productRepo.NewMongoProductRepository(handle)
	lines := lineRepo.NewMongoProductLineRepository(handle)
	ledger := ledgerRepo.NewMongoLedgerRepository(handle)
	transactor := database.NewTransactor(handle)

	indexCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, ensure := range []func(context.Context) error{
		users.EnsureIndexes, products.EnsureIndexes, ledger.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			logger.Error("Failed to ensure indexes", err)
			return
		}
	}

	// Services
	userSvc := userService.NewUserService(users)
	productSvc := productService.NewProductService(products, ledger, transactor)
	lineSvc := lineService.NewProductLineService(lines, products)
	reportSvc := reportService.NewReportService(ledger, reportCfg.FacetLimit)

	// Handlers
	userHandler := userAPI.NewUserHandler(userSvc)
	productHandler := productAPI.NewProductHandler(productSvc, uploadCfg.Dir)
	lineHandler := lineAPI.NewProductLineHandler(lineSvc)
	reportHandler := reportAPI.NewReportHandler(reportSvc)

	router := gin.Default()
	router.RedirectTrailingSlash = false

	apiRoutes := router.Group("/api")
	userHandler.RegisterRoutes(apiRoutes)
	productHandler.RegisterRoutes(apiRoutes)
	lineHandler.RegisterRoutes(apiRoutes)
	reportHandler.RegisterRoutes(apiRoutes)

	logger.Info("Inventory Backend running on port %s", serverCfg.Port)
	if err := router.Run(serverCfg.Port); err != nil {
		logger.Error("Failed to run server", err)
	}
}
