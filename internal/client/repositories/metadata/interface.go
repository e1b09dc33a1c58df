// Package metadata stores small key/value records of the CLI session in
// the local database.
package metadata

import (
	"context"
)

// Keys written by the session service.
const (
	KeyToken    = "token"
	KeyUserID   = "user_id"
	KeyLocation = "location"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
