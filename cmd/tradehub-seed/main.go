// Command tradehub-seed loads a JSON fixture of categories and listings into
// the store, creating the search index if needed. Intended for local
// development and demo environments.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tradehub-ng/tradehub/internal/config"
	dbRedis "github.com/tradehub-ng/tradehub/internal/db/redis"
	domlst "github.com/tradehub-ng/tradehub/internal/domain/listing"
	logpkg "github.com/tradehub-ng/tradehub/internal/logger"
	categoryrepo "github.com/tradehub-ng/tradehub/internal/repository/category"
	listingrepo "github.com/tradehub-ng/tradehub/internal/repository/listing"
	categoryuc "github.com/tradehub-ng/tradehub/internal/usecase/category"
	listinguc "github.com/tradehub-ng/tradehub/internal/usecase/listing"
	"github.com/tradehub-ng/tradehub/internal/version"
)

type fixture struct {
	Categories []categoryFixture `json:"categories"`
	Listings   []listingFixture  `json:"listings"`
}

type categoryFixture struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type listingFixture struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	CategoryID  string   `json:"category_id"`
	Condition   string   `json:"condition"`
	Location    string   `json:"location"`
	State       string   `json:"state"`
	Images      []string `json:"images"`
	SellerID    string   `json:"seller_id"`
	Status      string   `json:"status"`
}

func main() {
	var (
		file    = flag.String("file", "fixtures/seed.json", "path to the JSON fixture")
		workers = flag.Int("workers", 8, "concurrent listing writers")
	)
	flag.Parse()

	_ = godotenv.Load()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting tradehub seeder",
		zap.String("build", version.String()),
		zap.String("file", *file),
		zap.Int("workers", *workers),
	)

	data, err := os.ReadFile(filepath.Clean(*file))
	if err != nil {
		logger.Fatal("Failed to read fixture", zap.String("file", *file), zap.Error(err))
	}

	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		logger.Fatal("Failed to parse fixture", zap.Error(err))
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	listingRepo := listingrepo.New(store)
	categoryRepo := categoryrepo.New(store)

	if err := listingRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure search index", zap.Error(err))
	}

	categorySvc := categoryuc.New(categoryRepo, logger)
	listingSvc := listinguc.New(listingRepo, categoryRepo, logger)

	// Categories first: the listing write path rejects unknown categories.
	for _, c := range fx.Categories {
		id := c.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := categorySvc.Put(ctx, id, c.Slug, c.Name); err != nil {
			logger.Fatal("Failed to seed category", zap.String("name", c.Name), zap.Error(err))
		}
	}
	logger.Info("Categories seeded", zap.Int("count", len(fx.Categories)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)

	for _, l := range fx.Listings {
		l := l
		g.Go(func() error {
			_, _, err := listingSvc.Upsert(gctx, l.ID, listinguc.UpsertParams{
				Title:       l.Title,
				Description: l.Description,
				Price:       l.Price,
				CategoryID:  l.CategoryID,
				Condition:   domlst.Condition(l.Condition),
				Location:    l.Location,
				State:       l.State,
				Images:      l.Images,
				SellerID:    l.SellerID,
				Status:      domlst.Status(l.Status),
			})
			return err
		})
	}

	if err := g.Wait(); err != nil {
		logger.Fatal("Failed to seed listings", zap.Error(err))
	}

	logger.Info("Listings seeded", zap.Int("count", len(fx.Listings)))
}
