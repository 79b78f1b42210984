package main

import (
	"context"
	"os"
	"time"

	"github.com/ecoengage/service/config"
	"github.com/ecoengage/service/routes"
	"github.com/ecoengage/service/store"
	"github.com/ecoengage/service/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		utils.Sugar.Fatalf("failed to create upload dir: %v", err)
	}

	db := config.InitDatabase()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.EnsureUserIndexes(ctx, db); err != nil {
		utils.Sugar.Fatalf("failed to ensure indexes: %v", err)
	}
	cancel()

	r := routes.SetupRouter(routes.Stores{
		Users:       store.NewMongoUserStore(db),
		Posts:       store.NewMongoPostStore(db),
		Comments:    store.NewMongoCommentStore(db),
		Events:      store.NewMongoEventStore(db),
		Initiatives: store.NewMongoInitiativeStore(db),
	})

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
