package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/localswap/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-w string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      dev token validity, minutes
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-q string   public base URL of stored images
//	-r int      default search radius, meters
//	-m int      maximum search radius, meters
//	-f bool     demo fallback for chat storage failures
//	-dev bool   development mode
//	-o string   comma-separated CORS origins
//	-l string   log level
//
// Only these flags are looked at (see flagx.FilterArgs), so the JSON and
// env layers can read their own flags from the same os.Args.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-w", "-d", "-s", "-t", "-u", "-p", "-b", "-g", "-e", "-q", "-r", "-m", "-f", "-dev", "-o", "-l",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "dev token validity (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3PublicBaseURL, "q", config.S3PublicBaseURL, "public base URL of images")

	fs.IntVar(&config.DefaultRadiusMeters, "r", config.DefaultRadiusMeters, "default search radius (in meters)")
	fs.IntVar(&config.MaxRadiusMeters, "m", config.MaxRadiusMeters, "maximum search radius (in meters)")
	fs.BoolVar(&config.DemoFallback, "f", config.DemoFallback, "substitute placeholder data on chat storage errors")
	fs.BoolVar(&config.DevMode, "dev", config.DevMode, "development mode")

	origins := fs.String("o", joinList(config.CORSOrigins), "comma-separated CORS origins")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	config.CORSOrigins = splitList(*origins)
}

func joinList(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}
