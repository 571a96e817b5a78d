package main

import (
	"flag"
	"strings"
	"time"

	"go-sales-inventory/internal/config"
	"go-sales-inventory/internal/logger"
	"go-sales-inventory/internal/repository"
	"go-sales-inventory/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// 1. Load Env
	cfg := config.Load()

	email := flag.String("email", cfg.AdminEmail, "account to reset")
	password := flag.String("password", cfg.AdminPassword, "new password")
	flag.Parse()

	log, err := logger.New(logger.Config{
		ServiceName: "reset-password",
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	// 2. Setup Database
	db, err := database.Connect(cfg, logger.NewGormLogger(log, gormlogger.Warn, 200*time.Millisecond))
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}
	users := repository.NewUserRepo(db)

	// 3. Find user
	target := strings.ToLower(strings.TrimSpace(*email))
	user, err := users.FindByEmail(target)
	if err != nil {
		log.Fatal("user not found", zap.String("email", target), zap.Error(err))
	}

	// 4. Hash new password, signing out every session
	if err := user.SetPassword(*password); err != nil {
		log.Fatal("hash password", zap.Error(err))
	}
	user.TokenVersion = uuid.New().String()

	// 5. Update
	if err := users.Update(user); err != nil {
		log.Fatal("update password", zap.Error(err))
	}

	log.Info("password reset", zap.String("email", target))
}
