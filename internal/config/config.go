package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port      string
	Env       string
	JWTSecret string

	// Redis is only used for request rate limiting. Leave RedisAddr empty
	// to run without it.
	RedisAddr string
	RedisPass string
	RedisDB   int

	Game GameConfig
}

type GameConfig struct {
	Policy          string  // trap, dice or safepath
	MinCells        int
	MaxCells        int
	MaxSteps        int
	HouseEdge       float64
	MinBet          float64
	MaxBet          float64
	StartingBalance float64
	MaxHistory      int
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("ENV", "development"),
		JWTSecret: getEnv("JWT_SECRET", ""),
		RedisAddr: getEnv("REDIS_ADDR", ""),
		RedisPass: getEnv("REDIS_PASS", ""),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		Game: GameConfig{
			Policy:          getEnv("GAME_POLICY", "trap"),
			MinCells:        getEnvInt("GAME_MIN_CELLS", 2),
			MaxCells:        getEnvInt("GAME_MAX_CELLS", 5),
			MaxSteps:        getEnvInt("GAME_MAX_STEPS", 10),
			HouseEdge:       getEnvFloat("GAME_HOUSE_EDGE", 0.03),
			MinBet:          getEnvFloat("GAME_MIN_BET", 1),
			MaxBet:          getEnvFloat("GAME_MAX_BET", 10000),
			StartingBalance: getEnvFloat("GAME_STARTING_BALANCE", 1000),
			MaxHistory:      getEnvInt("GAME_MAX_HISTORY", 10),
		},
	}

	if cfg.Env == "production" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-do-not-use-in-production"
	}

	switch cfg.Game.Policy {
	case "trap", "dice", "safepath":
	default:
		return nil, fmt.Errorf("invalid GAME_POLICY: %s", cfg.Game.Policy)
	}

	if cfg.Game.MinCells < 2 {
		return nil, fmt.Errorf("GAME_MIN_CELLS must be at least 2")
	}
	if cfg.Game.MaxCells < cfg.Game.MinCells {
		return nil, fmt.Errorf("GAME_MAX_CELLS must be >= GAME_MIN_CELLS")
	}
	if cfg.Game.MaxSteps < 1 {
		return nil, fmt.Errorf("GAME_MAX_STEPS must be at least 1")
	}
	if cfg.Game.HouseEdge < 0 || cfg.Game.HouseEdge >= 1 {
		return nil, fmt.Errorf("GAME_HOUSE_EDGE must be in [0, 1)")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
