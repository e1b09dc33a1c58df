package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/localswap/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvHTTPAddr      = "LOCALSWAP_HTTP_ADDR"
	EnvGRPCAddr      = "LOCALSWAP_GRPC_ADDR"
	EnvDatabaseDSN   = "LOCALSWAP_DATABASE_DSN"
	EnvSecretKey     = "LOCALSWAP_SECRET_KEY"
	EnvDevMode       = "LOCALSWAP_DEV_MODE"
	EnvTokenValidity = "LOCALSWAP_TOKEN_VALIDITY"
	EnvS3User        = "LOCALSWAP_S3_ROOT_USER"
	EnvS3Password    = "LOCALSWAP_S3_ROOT_PASSWORD"
	EnvS3Bucket      = "LOCALSWAP_S3_BUCKET"
	EnvS3Region      = "LOCALSWAP_S3_REGION"
	EnvS3Endpoint    = "LOCALSWAP_S3_BASE_ENDPOINT"
	EnvS3PublicURL   = "LOCALSWAP_S3_PUBLIC_BASE_URL"
	EnvDefaultRadius = "LOCALSWAP_DEFAULT_RADIUS_METERS"
	EnvMaxRadius     = "LOCALSWAP_MAX_RADIUS_METERS"
	EnvDemoFallback  = "LOCALSWAP_DEMO_FALLBACK"
	EnvCORSOrigins   = "LOCALSWAP_CORS_ORIGINS"
	EnvLogLevel      = "LOCALSWAP_LOG_LEVEL"
)

// loadDotEnv is a seam for godotenv.Load.
var loadDotEnv = godotenv.Load

// parseEnv overlays settings from LOCALSWAP_* environment variables.
//
// When -env is given the named dotenv file must exist and is loaded first;
// otherwise a .env in the working directory is loaded if present. Variables
// already set in the process environment win over the file. Malformed
// numeric or boolean values panic, like malformed flags do.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := loadDotEnv(path); err != nil {
			panic(err)
		}
	} else {
		_ = loadDotEnv()
	}

	envString(EnvHTTPAddr, &config.EndpointAddrHTTP)
	envString(EnvGRPCAddr, &config.EndpointAddrGRPC)
	envString(EnvDatabaseDSN, &config.DatabaseDSN)
	envString(EnvSecretKey, &config.SecretKey)
	envBool(EnvDevMode, &config.DevMode)
	envDuration(EnvTokenValidity, &config.TokenValidityDuration)
	envString(EnvS3User, &config.S3RootUser)
	envString(EnvS3Password, &config.S3RootPassword)
	envString(EnvS3Bucket, &config.S3Bucket)
	envString(EnvS3Region, &config.S3Region)
	envString(EnvS3Endpoint, &config.S3BaseEndpoint)
	envString(EnvS3PublicURL, &config.S3PublicBaseURL)
	envInt(EnvDefaultRadius, &config.DefaultRadiusMeters)
	envInt(EnvMaxRadius, &config.MaxRadiusMeters)
	envBool(EnvDemoFallback, &config.DemoFallback)
	envString(EnvLogLevel, &config.LogLevel)

	if v, ok := os.LookupEnv(EnvCORSOrigins); ok {
		config.CORSOrigins = splitList(v)
	}
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(err)
	}
	*dst = n
}

func envBool(key string, dst *bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		panic(err)
	}
	*dst = b
}

func envDuration(key string, dst *time.Duration) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
