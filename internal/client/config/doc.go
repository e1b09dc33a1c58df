// Package config loads runtime configuration for the LocalSwap CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. LOCALSWAP_CLIENT_* environment variables, optionally seeded from a
//     dotenv file given with -env (or ./.env when present).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-i int      online status check interval (seconds)
//	-db string  path of the local SQLite database
//	-lat float  default latitude
//	-lng float  default longitude
//	-n bool     mirror notifications to the terminal
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "db_path": "localswap.db",
//	  "default_lat": 45.4642,
//	  "default_lng": 9.19,
//	  "mirror_notifications": true
//	}
package config
