package sessions

import (
	"context"
	"corner-shop/app/server/constants"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store 把会话令牌映射到用户 ID ，数据保存在 redis 中，过期由 redis 负责
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{
		rdb: rdb,
		ttl: ttl,
	}
}

// Put 写入 token -> userID 的映射，同名 token 会被覆盖
func (s *Store) Put(ctx context.Context, token string, userID uint) error {
	key := fmt.Sprintf(constants.CacheKeySession, token)
	if err := s.rdb.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get 查询 token 对应的用户 ID ，不存在（或已过期）不是错误，通过第二个返回值区分
func (s *Store) Get(ctx context.Context, token string) (uint, bool, error) {
	key := fmt.Sprintf(constants.CacheKeySession, token)
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to query session: %w", err)
	}

	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		// 无效的缓存值，清理掉
		s.rdb.Del(ctx, key)
		return 0, false, nil
	}

	return uint(userID), true, nil
}

// Delete 移除 token 对应的会话，用于清理指向已删除用户的过时会话
func (s *Store) Delete(ctx context.Context, token string) error {
	key := fmt.Sprintf(constants.CacheKeySession, token)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
