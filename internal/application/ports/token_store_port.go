package ports

import (
	"context"
	"time"
)

// TokenRevocationStore lista de tokens invalidados (logout). Cada entrada vive lo que le
// quedaba al token; pasado ese tiempo el propio JWT ya no es válido.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
