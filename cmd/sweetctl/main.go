package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtroode/sweetshop-server/internal/cli"
	"github.com/dtroode/sweetshop-server/internal/config"
	"github.com/dtroode/sweetshop-server/internal/logger"
	"github.com/dtroode/sweetshop-server/internal/repository/postgres"
	"github.com/dtroode/sweetshop-server/internal/service"
	"github.com/dtroode/sweetshop-server/internal/token"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return cli.ErrUsage
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	lg := logger.NewWithFormat(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	codec, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		return err
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	authService := service.NewAuth(postgres.NewAccountRepository(db), codec, lg, cfg.Bcrypt.Cost)

	return cli.NewApp(authService, os.Stdin, os.Stdout).Run(ctx, args)
}
