package main

import (
	"os"
	"strings"
	"syscall"

	"github.com/cartflow/internal/app"
	"github.com/cartflow/internal/config"
	"github.com/cartflow/internal/constants"
	"github.com/cartflow/internal/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if strings.EqualFold(cfg.Auth.Mode, constants.AuthModeToken) && isWeakSecret(cfg.Auth.JWTSecret) {
		if cfg.Server.Mode == "release" {
			stdLog.Fatalf("auth.jwt_secret is weak or missing, configure a strong random secret in production")
		}
		stdLog.Printf("warning: auth.jwt_secret is weak or missing")
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}); err != nil {
		stdLog.Fatalf("server exited with error: %v", err)
	}
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	return strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "your-secret-key")
}
