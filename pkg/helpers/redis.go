package helpers

import "github.com/redis/go-redis/v9"

// NewRedisClient initializes a redis client for session storage and
// rate limiting.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// SessionKey is the redis hash key holding the login session for an
// account, keyed by its email.
func SessionKey(email string) string {
	return "user:session:" + email
}
