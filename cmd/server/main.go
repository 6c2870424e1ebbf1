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

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	grpcRouter "github.com/dtroode/sweetshop-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/sweetshop-server/internal/api/grpc/server"
	httpctx "github.com/dtroode/sweetshop-server/internal/api/http/context"
	httpRouter "github.com/dtroode/sweetshop-server/internal/api/http/router"
	httpServer "github.com/dtroode/sweetshop-server/internal/api/http/server"
	"github.com/dtroode/sweetshop-server/internal/authz"
	"github.com/dtroode/sweetshop-server/internal/config"
	"github.com/dtroode/sweetshop-server/internal/logger"
	"github.com/dtroode/sweetshop-server/internal/metrics"
	"github.com/dtroode/sweetshop-server/internal/model"
	"github.com/dtroode/sweetshop-server/internal/repository/postgres"
	"github.com/dtroode/sweetshop-server/internal/server"
	"github.com/dtroode/sweetshop-server/internal/service"
	storage "github.com/dtroode/sweetshop-server/internal/storage/minio"
	"github.com/dtroode/sweetshop-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const (
	shutdownTimeout     = 10 * time.Second
	healthCheckInterval = 15 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithFormat(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	tokenCodec, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		logger.Fatal("refusing to start with the configured token secret", "error", err)
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	sweetRepo := postgres.NewSweetRepository(db)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	m := metrics.New()

	authService := service.NewAuth(accountRepo, tokenCodec, logger, cfg.Bcrypt.Cost)
	resolver := service.NewIdentityResolver(tokenCodec, accountRepo, logger)
	inventoryService := service.NewInventory(sweetRepo, storageClient, m, logger)

	gin.SetMode(gin.ReleaseMode)
	router := httpRouter.New(httpRouter.Deps{
		AuthService:      authService,
		InventoryService: inventoryService,
		Resolver:         resolver,
		Pinger:           db,
		Metrics:          m,
		ContextManager:   httpctx.NewManager(),
		Policy:           authz.DefaultPolicy(),
		MaxImageBytes:    cfg.HTTP.MaxImageBytes,
		Logger:           logger,
	})
	apiServer := httpServer.NewHTTPServer(router.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadHeaderTimeout)

	opsRouter := grpcRouter.New(db, logger)
	opsServer := grpcServer.NewGRPCServer(opsRouter.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))
	go opsRouter.MonitorHealth(ctx, healthCheckInterval)

	servers := []struct {
		server model.Server
		layer  model.SecurityLayer
	}{
		{apiServer, securityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)},
		{opsServer, securityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)},
	}

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s.server, s.layer)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.server.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.server.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func securityLayer(enableHTTPS bool, certFile, keyFile string) model.SecurityLayer {
	if enableHTTPS {
		return server.NewTLSListener(certFile, keyFile)
	}
	return server.NewPlainListener()
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
