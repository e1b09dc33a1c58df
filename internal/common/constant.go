// Package common contains shared constants and sentinel errors used across
// LocalSwap components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// Currency is the only currency listings are priced in.
const Currency = "EUR"

// MaxNotifications caps the client-side notification list.
const MaxNotifications = 50
