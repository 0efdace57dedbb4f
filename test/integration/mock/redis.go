package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisServer *miniredis.Miniredis
var redisConn *redis.Client

// NewRedis starts one miniredis server for the suite and returns a client to it.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisServer = server
		redisConn = redis.NewClient(&redis.Options{Addr: server.Addr()})
	})
	return redisConn
}

// RedisValue reads a string key directly from the server.
func RedisValue(key string) (string, error) {
	return redisServer.Get(key)
}

func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.TODO()).Err()
}
