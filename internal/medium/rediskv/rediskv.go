// Package rediskv provides a shared medium driver on Redis. Values are
// plain GET/SET strings; change notifications travel over one pub/sub
// channel carrying the writing handle's origin, so a writer can filter
// out its own writes the way a browser tab never receives its own storage
// event. This is the only driver whose "tabs" may live in different
// processes.
package rediskv

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/peermall/peerstore/internal/medium"
)

const changeChannel = "peerstore:changes"

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Client owns the Redis connection shared by all handles opened from it.
type Client struct {
	rdb *redis.Client
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, opts Options) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &Client{rdb: rdb}, nil
}

// Open returns a new handle ("tab") onto the shared store.
func (c *Client) Open() medium.Medium {
	return &handle{c: c, origin: uuid.New().String()}
}

func (c *Client) Close() error { return c.rdb.Close() }

type handle struct {
	c      *Client
	origin string
}

func (h *handle) Origin() string { return h.origin }

func (h *handle) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := h.c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (h *handle) Set(ctx context.Context, key, value string) error {
	if err := h.c.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return err
	}
	h.publish(ctx, key)
	return nil
}

func (h *handle) Delete(ctx context.Context, key string) error {
	n, err := h.c.rdb.Del(ctx, key).Result()
	if err != nil {
		return err
	}
	if n > 0 {
		h.publish(ctx, key)
	}
	return nil
}

// publish is best effort: a dropped notification only delays the next
// refresh until another change lands.
func (h *handle) publish(ctx context.Context, key string) {
	payload, _ := json.Marshal(medium.Change{Key: key, Origin: h.origin})
	if err := h.c.rdb.Publish(ctx, changeChannel, payload).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("change notification publish failed")
	}
}

func (h *handle) Watch(ctx context.Context, keys ...string) (<-chan medium.Change, error) {
	sub := h.c.rdb.Subscribe(ctx, changeChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}

	out := make(chan medium.Change, 16)
	msgs := sub.Channel()
	go func() {
		defer close(out)
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var c medium.Change
				if err := json.Unmarshal([]byte(msg.Payload), &c); err != nil {
					continue
				}
				if c.Origin == h.origin {
					continue
				}
				if _, ok := want[c.Key]; !ok {
					continue
				}
				select {
				case out <- c:
				default:
				}
			}
		}
	}()
	return out, nil
}
