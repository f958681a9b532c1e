package relay

import (
	"sync"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/rs/zerolog/log"
)

// Redis implements the relay over redis pub/sub. One subscriber
// connection per topic, re-dialed with a flat backoff on failure.
type Redis struct {
	pool *redis.Pool

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

func NewRedis(pool *redis.Pool) *Redis {
	return &Redis{pool: pool, done: make(chan struct{})}
}

func (r *Redis) Publish(topic string, payload []byte) error {
	c := r.pool.Get()
	defer c.Close()
	_, err := c.Do("PUBLISH", topic, payload)
	return err
}

func (r *Redis) Subscribe(topic string, h Handler) error {
	go r.listen(topic, h)
	return nil
}

func (r *Redis) listen(topic string, h Handler) {
	for {
		select {
		case <-r.done:
			return
		default:
		}
		if err := r.receiveLoop(topic, h); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("relay subscription lost, retrying")
		}
		select {
		case <-r.done:
			return
		case <-time.After(time.Second):
		}
	}
}

func (r *Redis) receiveLoop(topic string, h Handler) error {
	c := r.pool.Get()
	defer c.Close()
	psc := redis.PubSubConn{Conn: c}
	if err := psc.Subscribe(topic); err != nil {
		return err
	}
	defer psc.Unsubscribe(topic)
	for {
		switch msg := psc.Receive().(type) {
		case redis.Message:
			h(msg.Data)
		case redis.Subscription:
			// subscribe/unsubscribe acks, nothing to do
		case error:
			return msg
		}
	}
}

func (r *Redis) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.closed {
		r.closed = true
		close(r.done)
	}
	return nil
}
