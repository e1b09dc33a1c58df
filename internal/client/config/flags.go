package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/localswap/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the backend server
//	-i int      online check interval in seconds
//	-db string  local database path
//	-lat float  default latitude
//	-lng float  default longitude
//	-n bool     mirror notifications to the terminal
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-db", "-lat", "-lng", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "local database path")
	fs.Float64Var(&cfg.DefaultLocation.Lat, "lat", cfg.DefaultLocation.Lat, "default latitude")
	fs.Float64Var(&cfg.DefaultLocation.Lng, "lng", cfg.DefaultLocation.Lng, "default longitude")
	fs.BoolVar(&cfg.MirrorNotifications, "n", cfg.MirrorNotifications, "mirror notifications to the terminal")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
