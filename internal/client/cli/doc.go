// Package cli provides the interactive LocalSwap command-line client.
//
// It wires configuration, the local SQLite store, the gRPC client and the
// application services into a REPL. The session token and the last search
// location survive restarts; an online/offline watcher pings the server in
// the background.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
