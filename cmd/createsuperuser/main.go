// Package main creates an administrative account from the command line
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	userapp "github.com/pantrybook/pantrybook/internal/application/user"
	"github.com/pantrybook/pantrybook/internal/infrastructure/config"
	gormRepo "github.com/pantrybook/pantrybook/internal/infrastructure/persistence/gorm"
	"github.com/pantrybook/pantrybook/internal/infrastructure/persistence/postgres"
	"github.com/pantrybook/pantrybook/internal/infrastructure/persistence/sqlite"
	"github.com/pantrybook/pantrybook/internal/infrastructure/security"
	"github.com/pantrybook/pantrybook/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	email := flag.String("email", "", "email address for the superuser")
	password := flag.String("password", "", "password for the superuser")
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: createsuperuser -email <email> -password <password>")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:  cfg.App.LogLevel,
		Format: "console",
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := openDatabase(cfg, zapLogger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	userRepo := gormRepo.NewUserRepository(db)
	authService := security.NewAuthService(cfg, zapLogger, nil)
	service := userapp.NewUserService(userRepo, authService, zapLogger)

	dto, err := service.CreateSuperuser(context.Background(), *email, *password)
	if err != nil {
		log.Fatalf("Failed to create superuser: %v", err)
	}

	zapLogger.Info("Superuser created",
		zap.Uint("id", dto.ID),
		zap.String("email", dto.Email),
	)
}

func openDatabase(cfg *config.Config, zapLogger *zap.Logger) (*gorm.DB, error) {
	if cfg.Database.Driver == "postgres" {
		return postgres.NewConnection(cfg, zapLogger)
	}
	return sqlite.NewDatabase(cfg, zapLogger)
}
