package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
)

type Entry struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userID"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"createdAt"`
}

type History interface {
	Append(ctx context.Context, e *Entry) error
	// List 按时间先后返回用户最近的 limit 条对话
	List(ctx context.Context, userID int64, limit int) ([]*Entry, error)
}

// RedisHistory 把每个用户的对话保存在一个 redis 列表中，只保留最近 maxLen 条
type RedisHistory struct {
	rdb     *redis.Client
	maxLen  int
	timeout time.Duration
}

func NewRedisHistory(rdb *redis.Client, maxLen int, timeout time.Duration) *RedisHistory {
	return &RedisHistory{
		rdb:     rdb,
		maxLen:  maxLen,
		timeout: timeout,
	}
}

func historyKey(userID int64) string {
	return fmt.Sprintf("assistant_history_%d", userID)
}

func (h *RedisHistory) Append(ctx context.Context, e *Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	key := historyKey(e.UserID)
	_, err = h.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, int64(h.maxLen-1))
		return nil
	})
	return err
}

func (h *RedisHistory) List(ctx context.Context, userID int64, limit int) ([]*Entry, error) {
	if limit <= 0 || limit > h.maxLen {
		limit = h.maxLen
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	raw, err := h.rdb.LRange(ctx, historyKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(raw))
	for _, item := range raw {
		e := &Entry{}
		if err := json.Unmarshal([]byte(item), e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	// 列表头部是最新的一条
	slices.Reverse(entries)
	return entries, nil
}
