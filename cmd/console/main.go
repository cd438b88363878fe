package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"biblioteca-console/pkg/logger"
)

func main() {
	// .env is for local development; production uses real environment
	// variables, so a missing file is fine.
	err := godotenv.Load()

	env := getEnv("APP_ENV", "development")
	logger.Init(env)
	if err != nil {
		logger.Debug("no .env file found, using system environment variables")
	}

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	Serve()
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
