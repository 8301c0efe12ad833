package app

import (
	"os"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/conceptpulse/conceptpulse-backend/internal/logger"
	"github.com/conceptpulse/conceptpulse-backend/internal/utils"
)

type Clients struct {
	Redis *goredis.Client
}

// wireClients builds optional external clients. Redis is only attached
// when REDIS_ADDR is set; everything that consumes it tolerates nil.
func wireClients(log *logger.Logger) Clients {
	log.Info("Wiring clients...")

	var rdb *goredis.Client
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:     addr,
			Password: utils.GetEnv("REDIS_PASSWORD", "", log),
			DB:       utils.GetEnvAsInt("REDIS_DB", 0, log),
		})
		log.Info("Redis client configured", "addr", addr)
	}

	return Clients{Redis: rdb}
}

func (c Clients) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
