package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/localswap/internal/flagx"
	"github.com/dmitrijs2005/localswap/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration file.
// Pointer fields distinguish "absent" from "false"/"0", so a partial file
// only overrides what it names.
type JsonConfig struct {
	EndpointAddrHTTP      string          `json:"endpoint_addr_http"`
	EndpointAddrGRPC      string          `json:"endpoint_addr_grpc"`
	DatabaseDSN           string          `json:"database_dsn"`
	SecretKey             string          `json:"secret_key"`
	DevMode               *bool           `json:"dev_mode"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	S3RootUser            string          `json:"s3_root_user"`
	S3RootPassword        string          `json:"s3_root_password"`
	S3Bucket              string          `json:"s3_bucket"`
	S3Region              string          `json:"s3_region"`
	S3BaseEndpoint        string          `json:"s3_base_endpoint"`
	S3PublicBaseURL       string          `json:"s3_public_base_url"`
	DefaultRadiusMeters   *int            `json:"default_radius_meters"`
	MaxRadiusMeters       *int            `json:"max_radius_meters"`
	DemoFallback          *bool           `json:"demo_fallback"`
	CORSOrigins           []string        `json:"cors_origins"`
	LogLevel              string          `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config flag into config. Without the flag nothing happens. A file
// that cannot be read or parsed panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicBaseURL, c.S3PublicBaseURL)
	setString(&config.LogLevel, c.LogLevel)

	if c.DevMode != nil {
		config.DevMode = *c.DevMode
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.DefaultRadiusMeters != nil {
		config.DefaultRadiusMeters = *c.DefaultRadiusMeters
	}
	if c.MaxRadiusMeters != nil {
		config.MaxRadiusMeters = *c.MaxRadiusMeters
	}
	if c.DemoFallback != nil {
		config.DemoFallback = *c.DemoFallback
	}
	if c.CORSOrigins != nil {
		config.CORSOrigins = c.CORSOrigins
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
