package main

import (
	"context"
	"log/slog"
	"os"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/pkg/logger"
	"app/pkg/shutdown"

	"github.com/joho/godotenv"
)

func main() {
	// .env は無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service: "shop-api",
		Env:     cfg.GoEnv,
		Level:   cfg.LogLevel,
	})

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	if err := gormDB.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
	); err != nil {
		log.Error("automigrate failed", "err", err)
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)

	//Usecase生成
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo)

	//Handler生成
	categoryH := handler.NewCategoryHandler(categoryUC)
	productH := handler.NewProductHandler(productUC)
	cartH := handler.NewCartHandler(cartUC)

	e := server.New(categoryH, productH, cartH)

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	addr := ":" + cfg.Port
	log.Info("server starting", "addr", addr)

	if err := server.Run(ctx, e, addr); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
