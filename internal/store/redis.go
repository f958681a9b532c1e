package store

import (
	"context"
	"encoding/json"

	"github.com/gomodule/redigo/redis"
)

const userKeyPrefix = "user:"

// Redis stores each user as a JSON blob under user:<id>.
type Redis struct {
	pool *redis.Pool
}

func NewRedis(pool *redis.Pool) *Redis {
	return &Redis{pool: pool}
}

func (s *Redis) Get(ctx context.Context, id string) (User, error) {
	c, err := s.pool.GetContext(ctx)
	if err != nil {
		return User{}, err
	}
	defer c.Close()
	data, err := redis.Bytes(c.Do("GET", userKeyPrefix+id))
	if err == redis.ErrNil {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Redis) Put(ctx context.Context, u User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	c, err := s.pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer c.Close()
	_, err = c.Do("SET", userKeyPrefix+u.ID, data)
	return err
}
