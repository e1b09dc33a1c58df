package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/localswap/internal/flagx"
	"github.com/dmitrijs2005/localswap/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero values.
type JsonConfig struct {
	ServerEndpointAddr  string          `json:"server_endpoint_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	DBPath              string          `json:"db_path"`
	DefaultLat          *float64        `json:"default_lat"`
	DefaultLng          *float64        `json:"default_lng"`
	MirrorNotifications *bool           `json:"mirror_notifications"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Read and unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.DefaultLat != nil {
		cfg.DefaultLocation.Lat = *jc.DefaultLat
	}
	if jc.DefaultLng != nil {
		cfg.DefaultLocation.Lng = *jc.DefaultLng
	}
	if jc.MirrorNotifications != nil {
		cfg.MirrorNotifications = *jc.MirrorNotifications
	}
}
