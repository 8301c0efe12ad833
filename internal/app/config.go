package app

import (
	"time"

	"github.com/conceptpulse/conceptpulse-backend/internal/logger"
	"github.com/conceptpulse/conceptpulse-backend/internal/utils"
)

type Config struct {
	JWTSecretKey      string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	Port              string
	TopicSeedPath     string
	DashboardCacheTTL time.Duration
	Environment       string
	Version           string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	port := utils.GetEnv("PORT", "8080", log)
	topicSeedPath := utils.GetEnv("TOPIC_SEED_PATH", "", log)
	cacheTTLSeconds := utils.GetEnvAsInt("DASHBOARD_CACHE_TTL", 30, log)
	environment := utils.GetEnv("APP_ENV", "development", log)
	version := utils.GetEnv("APP_VERSION", "dev", log)
	return Config{
		JWTSecretKey:      jwtSecretKey,
		AccessTokenTTL:    time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL:   time.Duration(refreshTokenTTLSeconds) * time.Second,
		Port:              port,
		TopicSeedPath:     topicSeedPath,
		DashboardCacheTTL: time.Duration(cacheTTLSeconds) * time.Second,
		Environment:       environment,
		Version:           version,
	}
}
