package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/reposicion-api/internal/application/inventory"
	"github.com/jhoicas/reposicion-api/internal/domain"
)

// RestockLockKey clave del lock de la corrida de reposición.
const RestockLockKey = "lock:auto-restock"

var (
	_ inventory.RestockLocker = (*RedisRestockLock)(nil)
	_ inventory.RestockLocker = NoopLocker{}
)

// El lock solo se borra si el token sigue siendo el nuestro (pudo expirar y tomarlo otra instancia).
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisRestockLock lock distribuido con SET NX y expiración.
type RedisRestockLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisRestockLock ttl acota cuánto puede quedar tomado el lock si el proceso muere.
func NewRedisRestockLock(client *redis.Client, ttl time.Duration) *RedisRestockLock {
	return &RedisRestockLock{client: client, key: RestockLockKey, ttl: ttl}
}

// Acquire toma el lock o devuelve domain.ErrRestockInProgress si otra corrida lo tiene.
func (l *RedisRestockLock) Acquire(ctx context.Context) (func(), error) {
	token := uuid.New().String()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return nil, domain.ErrRestockInProgress
	}
	release := func() {
		// Contexto propio: la liberación no depende de que el request siga vivo.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.client, []string{l.key}, token).Err()
	}
	return release, nil
}

// NoopLocker no coordina entre instancias (una sola instancia o almacén en memoria).
type NoopLocker struct{}

func (NoopLocker) Acquire(context.Context) (func(), error) {
	return func() {}, nil
}
