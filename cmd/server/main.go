package main

import (
	"sepet-be/internal/category"
	"sepet-be/internal/config"
	"sepet-be/internal/db"
	"sepet-be/internal/httpapi"
	"sepet-be/internal/logger"
	"sepet-be/internal/order"
	"sepet-be/internal/product"
	"sepet-be/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, cfg.AdminEmail)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, productRepo)

	router := httpapi.NewRouter(userSvc, productSvc, categorySvc, orderSvc)

	logger.L().Info("🚀 server listening", zap.String("port", cfg.AppPort))
	if err := router.Run(":" + cfg.AppPort); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
