package cache

import (
	"errors"
	"fmt"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

const KeyProducts = "products:all"

func SessionRevokedKey(jti string) string {
	return fmt.Sprintf("session:revoked:%s", jti)
}
