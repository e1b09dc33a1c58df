package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/localswap/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	EnvServerAddr    = "LOCALSWAP_CLIENT_SERVER_ADDR"
	EnvCheckInterval = "LOCALSWAP_CLIENT_CHECK_INTERVAL"
	EnvDBPath        = "LOCALSWAP_CLIENT_DB_PATH"
	EnvDefaultLat    = "LOCALSWAP_CLIENT_DEFAULT_LAT"
	EnvDefaultLng    = "LOCALSWAP_CLIENT_DEFAULT_LNG"
	EnvMirror        = "LOCALSWAP_CLIENT_MIRROR_NOTIFICATIONS"
)

var loadDotEnv = godotenv.Load

// parseEnv overlays settings from LOCALSWAP_CLIENT_* variables. Malformed
// values panic, like malformed flags do.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := loadDotEnv(path); err != nil {
			panic(err)
		}
	} else {
		_ = loadDotEnv()
	}

	if v := os.Getenv(EnvServerAddr); v != "" {
		cfg.ServerEndpointAddr = v
	}
	if v := os.Getenv(EnvCheckInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.OnlineCheckInterval = d
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DBPath = v
	}
	envFloat(EnvDefaultLat, &cfg.DefaultLocation.Lat)
	envFloat(EnvDefaultLng, &cfg.DefaultLocation.Lng)
	if v := os.Getenv(EnvMirror); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.MirrorNotifications = b
	}
}

func envFloat(key string, dst *float64) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		panic(err)
	}
	*dst = f
}
