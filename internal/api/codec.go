// Package api holds the LocalSwap wire types and the gRPC service
// description shared by the server and the CLI client.
//
// Messages travel as JSON: the codec below is registered with gRPC under
// the "json" content subtype, and the HTTP API serialises the same structs.
package api

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype the LocalSwap service speaks.
const CodecName = "json"

// MaxMessageSize bounds a single gRPC message in either direction. The
// JSON codec base64-encodes image bytes, so a 5 MiB upload grows by a
// third; the rest is room for the surrounding fields.
const MaxMessageSize = (5<<20)*4/3 + 64<<10

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
