// Package client contains the CLI's connection to the LocalSwap backend and
// the bootstrap of its local database.
//
// GRPCClient talks to the server over gRPC with the JSON codec and attaches
// the session token to every unary and streaming call. Liveness is probed
// through the standard health service. Status codes come back as
// ErrUnauthorized, ErrUnavailable or a RemoteError wrapping the matching
// common sentinel.
//
// InitDatabase opens the SQLite file and applies the embedded goose
// migrations.
package client
