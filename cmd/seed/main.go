package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shinyyama/harvestx-backend/internal/config"
	"github.com/shinyyama/harvestx-backend/internal/db"
	"github.com/shinyyama/harvestx-backend/internal/logging"
	"github.com/shinyyama/harvestx-backend/internal/model"
	"github.com/shinyyama/harvestx-backend/internal/repository"
	"github.com/shinyyama/harvestx-backend/internal/service"
	"go.uber.org/zap"
)

type seedUser struct {
	UID         string
	Role        model.UserRole
	DisplayName string
	Email       string
}

const farmerUID = "demo-farmer"

var users = []seedUser{
	{UID: "demo-admin", Role: model.UserRoleAdmin, DisplayName: "Platform Admin", Email: "admin@harvestx.local"},
	{UID: farmerUID, Role: model.UserRoleFarmer, DisplayName: "Green Valley Farms", Email: "farmer@harvestx.local"},
	{UID: "demo-investor", Role: model.UserRoleInvestor, DisplayName: "AgriCapital Partners", Email: "investor@harvestx.local"},
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.StoreDriver == config.StoreMemory {
		logger.Warn("STORE_DRIVER=memory; seeded data will not outlive this process")
	}
	store, closeStore, err := db.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	return seed(ctx, store, logger, strings.EqualFold(os.Getenv("FORCE_SEED"), "true"))
}

func seed(ctx context.Context, store repository.Store, logger *zap.Logger, force bool) error {
	stats, err := service.NewStatsService(store).Platform(ctx)
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}
	if stats.TotalOffers > 0 && !force {
		logger.Info("offers already exist; skipping seed (set FORCE_SEED=true to override)",
			zap.Uint64("offers", stats.TotalOffers))
		return nil
	}

	opts := service.Options{Logger: logger}
	userSvc := service.NewUserService(store, opts)
	for _, u := range users {
		_, err := userSvc.Register(ctx, u.UID, u.Role, u.DisplayName, u.Email)
		if err != nil && !errors.Is(err, service.ErrAlreadyRegistered) {
			return fmt.Errorf("register %s: %w", u.UID, err)
		}
	}

	offerSvc := service.NewOfferService(store, opts)
	for _, in := range sampleOffers() {
		if _, err := offerSvc.Create(ctx, farmerUID, in); err != nil {
			return fmt.Errorf("create offer %q: %w", in.ProductName, err)
		}
	}
	logger.Info("seed completed", zap.Int("users", len(users)), zap.Int("offers", len(sampleOffers())))
	return nil
}

func sampleOffers() []service.CreateOfferInput {
	return []service.CreateOfferInput{
		{
			ProductName:       "Organic Tomatoes",
			ProductType:       model.ProductTypeVegetables,
			Description:       "Premium organic tomatoes grown using sustainable farming practices. Perfect for high-end restaurants and organic food markets.",
			HarvestDate:       "2024-09-15",
			Location:          "California, USA",
			QualityGrade:      model.QualityGradeOrganic,
			QualityCertifier:  "USDA Organic",
			TotalQuantity:     500,
			PricePerKg:        4.50,
			MinimumInvestment: 100,
		},
		{
			ProductName:       "Avocados",
			ProductType:       model.ProductTypeFruits,
			Description:       "Hass avocados from highland orchards, hand picked at peak maturity.",
			HarvestDate:       "2024-10-01",
			Location:          "Mexico",
			QualityGrade:      model.QualityGradePremium,
			TotalQuantity:     800,
			PricePerKg:        6.25,
			MinimumInvestment: 250,
		},
		{
			ProductName:       "Quinoa",
			ProductType:       model.ProductTypeGrains,
			Description:       "Andean white quinoa, washed and sorted.",
			HarvestDate:       "2024-08-30",
			Location:          "Peru",
			QualityGrade:      model.QualityGradeGrade1,
			TotalQuantity:     300,
			PricePerKg:        8.75,
			MinimumInvestment: 150,
		},
		{
			ProductName:       "Soybeans",
			ProductType:       model.ProductTypeLegumes,
			Description:       "Non-GMO soybeans suitable for food processing.",
			HarvestDate:       "2024-09-30",
			Location:          "Iowa, USA",
			QualityGrade:      model.QualityGradeStandard,
			TotalQuantity:     1200,
			PricePerKg:        2.30,
			MinimumInvestment: 200,
		},
		{
			ProductName:       "Lavender",
			ProductType:       model.ProductTypeHerbs,
			Description:       "Fine lavender bundles for essential oil distillation.",
			HarvestDate:       "2024-07-20",
			Location:          "Provence, France",
			QualityGrade:      model.QualityGradePremium,
			TotalQuantity:     150,
			PricePerKg:        12.50,
			MinimumInvestment: 80,
		},
	}
}
