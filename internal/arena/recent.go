package arena

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/park285/chess-arena/internal/domain"
)

const ttlRecent = 24 * time.Hour

// RecentStore keeps finished-game records in Redis with a TTL plus a per-user
// index, so operators and tooling can look up a player's recent results
// without touching the database.
type RecentStore struct {
	rdb *redis.Client
}

func NewRecentStore(redisURL string) (*RecentStore, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("REDIS_URL required for recent store")
	}
	opts, err := parseRedisURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RecentStore{rdb: rdb}, nil
}

func (s *RecentStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

func (s *RecentStore) keyRecord(id string) string { return "arena:result:" + strings.TrimSpace(id) }
func (s *RecentStore) keyUserIdx(user string) string {
	return "arena:index:user:" + strings.TrimSpace(user)
}

// SaveResult stores the record and indexes it for both participants.
func (s *RecentStore) SaveResult(ctx context.Context, rec *domain.GameRecord) error {
	if s == nil || s.rdb == nil || rec == nil {
		return nil
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.keyRecord(rec.SessionID), raw, ttlRecent).Err(); err != nil {
		return err
	}
	for _, player := range []string{rec.White, rec.Black} {
		if strings.TrimSpace(player) == "" {
			continue
		}
		key := s.keyUserIdx(player)
		if err := s.rdb.SAdd(ctx, key, rec.SessionID).Err(); err != nil {
			return err
		}
		// refresh the index TTL alongside the records it points at
		_ = s.rdb.Expire(ctx, key, ttlRecent).Err()
	}
	return nil
}

// RecentByUser returns the player's finished games, newest first. Records
// already expired from Redis are skipped.
func (s *RecentStore) RecentByUser(ctx context.Context, player string) ([]*domain.GameRecord, error) {
	if s == nil || s.rdb == nil || strings.TrimSpace(player) == "" {
		return nil, nil
	}
	ids, err := s.rdb.SMembers(ctx, s.keyUserIdx(player)).Result()
	if err != nil {
		return nil, err
	}
	var list []*domain.GameRecord
	for _, id := range ids {
		raw, gerr := s.rdb.Get(ctx, s.keyRecord(id)).Bytes()
		if gerr == redis.Nil {
			continue
		}
		if gerr != nil {
			return nil, gerr
		}
		var rec domain.GameRecord
		if jerr := json.Unmarshal(raw, &rec); jerr != nil {
			return nil, jerr
		}
		list = append(list, &rec)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].EndedAt.After(list[j].EndedAt) })
	return list, nil
}

func parseRedisURL(raw string) (*redis.Options, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			db = n
		}
	}
	pass, _ := u.User.Password()
	return &redis.Options{Addr: u.Host, Password: pass, DB: db}, nil
}
