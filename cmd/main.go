package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mindvault/mindvault-server/internal/api/http/authctx"
	"github.com/mindvault/mindvault-server/internal/api/http/router"
	httpServer "github.com/mindvault/mindvault-server/internal/api/http/server"
	"github.com/mindvault/mindvault-server/internal/config"
	"github.com/mindvault/mindvault-server/internal/logger"
	"github.com/mindvault/mindvault-server/internal/model"
	"github.com/mindvault/mindvault-server/internal/repository/postgres"
	"github.com/mindvault/mindvault-server/internal/server"
	"github.com/mindvault/mindvault-server/internal/service"
	"github.com/mindvault/mindvault-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	itemRepo := postgres.NewItemRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	ctxMgr := authctx.NewManager()

	authService := service.NewAuth(userRepo, tokenManager, logger)
	userService := service.NewUser(userRepo, logger)
	itemService := service.NewItem(itemRepo, userRepo, logger)
	categoryService := service.NewCategory(categoryRepo, logger)

	r := router.New(authService, userService, itemService, categoryService, tokenManager, ctxMgr, logger)
	handler, err := r.Register()
	if err != nil {
		logger.Fatal("failed to build schema", "error", err)
	}
	srv := httpServer.NewHTTPServer(handler, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
