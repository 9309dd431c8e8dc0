package base

/*
Redis distributed lock
*/

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	letters     = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lockCommand = `if redis.call("GET", KEYS[1]) == ARGV[1] then
                      redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
                      return "OK"
                   else
                       return redis.call("SET", KEYS[1], ARGV[1], "NX", "PX", ARGV[2])
                   end`
	delCommand = `if redis.call("GET", KEYS[1]) == ARGV[1] then
                      return redis.call("DEL", KEYS[1])
                  else
                      return 0
                  end`
	randomLen = 16
	// expiry floor so a crashed holder cannot deadlock everyone
	tolerance       = 500 // milliseconds
	millisPerSecond = 1000
)

// A RedisLock is a redis lock.
type RedisLock struct {
	ctx     *context.Context
	store   *redis.Client
	seconds uint32
	key     string
	// lock value, only the holder may release
	id string
}

func init() {
	rand.Seed(time.Now().UnixNano())
}

// NewRedisLock returns a RedisLock.
func NewRedisLock(c *context.Context, store *redis.Client, key string) *RedisLock {
	return &RedisLock{
		ctx:   c,
		store: store,
		key:   key,
		id:    randomStr(randomLen),
	}
}

// Acquire acquires the lock.
func (rl *RedisLock) Acquire() (bool, error) {
	seconds := atomic.LoadUint32(&rl.seconds)
	res := rl.store.Eval(*rl.ctx, lockCommand, []string{rl.key}, []string{
		rl.id, strconv.Itoa(int(seconds)*millisPerSecond + tolerance),
	})
	resp, err := res.Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		fmt.Printf("lock failed %s", err)
		return false, err
	}
	if resp == nil {
		return false, nil
	}

	reply, ok := (resp).(string)
	if ok && reply == "OK" {
		return true, nil
	} else {
		fmt.Printf("Unknown reply when acquiring lock for %s: %v", rl.key, resp)
		return false, nil
	}
}

// Release releases the lock.
func (rl *RedisLock) Release() (bool, error) {
	res := rl.store.Eval(*rl.ctx, delCommand, []string{rl.key}, []string{rl.id})
	resp, err := res.Result()
	if err != nil {
		return false, err
	}

	reply, ok := (resp).(int64)
	if !ok {
		return false, nil
	} else {
		return reply == 1, nil
	}
}

// SetExpire sets the expire. Call before Acquire, otherwise the lock
// auto-releases after 500ms.
func (rl *RedisLock) SetExpire(seconds int) {
	atomic.StoreUint32(&rl.seconds, uint32(seconds))
}

func randomStr(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
