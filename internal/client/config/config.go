package config

import (
	"time"

	"github.com/dmitrijs2005/localswap/internal/geo"
)

// Config holds runtime settings for the LocalSwap CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DBPath: SQLite file holding the session and notifications.
//   - DefaultLocation: search center used until the user sets one.
//   - MirrorNotifications: echo every new notification to the terminal.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	DBPath              string
	DefaultLocation     geo.Point
	MirrorNotifications bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DBPath = "localswap.db"
	c.DefaultLocation = geo.DefaultLocation
	c.MirrorNotifications = true
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
