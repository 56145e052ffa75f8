package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// Revocation tells why a token is no longer accepted
type Revocation int

const (
	NotRevoked Revocation = iota
	// TokenRevoked means the token itself was revoked on logout
	TokenRevoked
	// UserRevoked means every token issued to the user up to some instant
	// was revoked (account deactivated or deleted)
	UserRevoked
)

// TokenBlacklist revokes tokens before they expire
type TokenBlacklist interface {
	// RevokeToken rejects the token with this jti until expiresAt
	RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error

	// RevokeUser rejects every token issued to userID so far. The entry is
	// kept for ttl, which should cover the lifetime of a token.
	RevokeUser(ctx context.Context, userID string, ttl time.Duration) error

	// IsRevoked checks a token against both kinds of revocation
	IsRevoked(ctx context.Context, jti, userID string, issuedAt time.Time) (Revocation, error)
}

// issuedBy reports whether a token with this iat predates a user revocation.
// iat carries whole seconds, so a token from the revocation second is rejected too.
func issuedBy(issuedAt, revokedAt time.Time) bool {
	return issuedAt.Unix() <= revokedAt.Unix()
}

const blacklistKeyPrefix = "sitinfra:token:blacklist:"

// RedisTokenBlacklist keeps revocations in redis so that every instance sees them
type RedisTokenBlacklist struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTokenBlacklist dials redis and checks the connection
func NewRedisTokenBlacklist(cfg config.RedisConfig) (*RedisTokenBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr(), err)
	}
	return NewRedisTokenBlacklistWithClient(client), nil
}

// NewRedisTokenBlacklistWithClient wraps an existing client
func NewRedisTokenBlacklistWithClient(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client, keyPrefix: blacklistKeyPrefix}
}

func (b *RedisTokenBlacklist) jtiKey(jti string) string {
	return b.keyPrefix + "jti:" + jti
}

func (b *RedisTokenBlacklist) userKey(userID string) string {
	return b.keyPrefix + "user:" + userID
}

func (b *RedisTokenBlacklist) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, b.jtiKey(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token %s: %w", jti, err)
	}
	return nil
}

// RevokeUser stores the revocation instant as unix seconds
func (b *RedisTokenBlacklist) RevokeUser(ctx context.Context, userID string, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.userKey(userID), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke tokens of user %s: %w", userID, err)
	}
	return nil
}

// IsRevoked reads the jti and user entries in a single round trip
func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, jti, userID string, issuedAt time.Time) (Revocation, error) {
	keys := []string{b.userKey(userID)}
	if jti != "" {
		keys = append(keys, b.jtiKey(jti))
	}
	vals, err := b.client.MGet(ctx, keys...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return NotRevoked, fmt.Errorf("failed to check token revocation: %w", err)
	}

	if len(vals) > 1 && vals[1] != nil {
		return TokenRevoked, nil
	}
	if len(vals) == 0 || vals[0] == nil {
		return NotRevoked, nil
	}
	raw, ok := vals[0].(string)
	if !ok {
		return NotRevoked, fmt.Errorf("unexpected revocation value %v for user %s", vals[0], userID)
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return NotRevoked, fmt.Errorf("invalid revocation timestamp %q for user %s: %w", raw, userID, err)
	}
	if issuedBy(issuedAt, time.Unix(secs, 0)) {
		return UserRevoked, nil
	}
	return NotRevoked, nil
}

func (b *RedisTokenBlacklist) Close() error {
	return b.client.Close()
}

// GetClient exposes the client so other components can share the connection pool
func (b *RedisTokenBlacklist) GetClient() *redis.Client {
	return b.client
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist is used when redis is disabled. Entries live in this
// process only and are lost on restart.
type InMemoryTokenBlacklist struct {
	mu     sync.Mutex
	tokens map[string]time.Time // jti -> token expiry
	users  map[string]userRevocation
	now    func() time.Time
}

type userRevocation struct {
	at      time.Time
	expires time.Time
}

func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		tokens: make(map[string]time.Time),
		users:  make(map[string]userRevocation),
		now:    time.Now,
	}
}

func (b *InMemoryTokenBlacklist) RevokeToken(_ context.Context, jti string, expiresAt time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if expiresAt.After(b.now()) {
		b.tokens[jti] = expiresAt
	}
	return nil
}

func (b *InMemoryTokenBlacklist) RevokeUser(_ context.Context, userID string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	b.users[userID] = userRevocation{at: now, expires: now.Add(ttl)}
	return nil
}

// IsRevoked also drops the entries it finds expired
func (b *InMemoryTokenBlacklist) IsRevoked(_ context.Context, jti, userID string, issuedAt time.Time) (Revocation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()

	if exp, ok := b.tokens[jti]; ok {
		if now.Before(exp) {
			return TokenRevoked, nil
		}
		delete(b.tokens, jti)
	}
	if rev, ok := b.users[userID]; ok {
		if !now.Before(rev.expires) {
			delete(b.users, userID)
		} else if issuedBy(issuedAt, rev.at) {
			return UserRevoked, nil
		}
	}
	return NotRevoked, nil
}

// Len returns the number of stored revocations
func (b *InMemoryTokenBlacklist) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.tokens) + len(b.users)
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
