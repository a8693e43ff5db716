package stats

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	keyTotal   = "studio:stats:total"
	keySuccess = "studio:stats:success"
	keyFailure = "studio:stats:failure"
	keyScenes  = "studio:stats:scenes"
)

// Outcome - 합성 요청 1건의 결과
type Outcome struct {
	Scene   string
	Success bool
}

// Recorder receives composition outcomes. Implementations must not fail the
// request they are recording.
type Recorder interface {
	Record(ctx context.Context, outcome Outcome)
}

// Snapshot - 누적 통계
type Snapshot struct {
	Enabled bool             `json:"enabled"`
	Total   int64            `json:"total"`
	Success int64            `json:"success"`
	Failure int64            `json:"failure"`
	Scenes  map[string]int64 `json:"scenes"`
}

// NopRecorder is used when Redis is not configured.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Outcome) {}

// RedisRecorder - Redis 카운터 기반 Recorder
type RedisRecorder struct {
	rdb *redis.Client
}

func NewRedisRecorder(rdb *redis.Client) *RedisRecorder {
	return &RedisRecorder{rdb: rdb}
}

// Record - 카운터 증가 (실패해도 로그만 남김)
func (r *RedisRecorder) Record(ctx context.Context, outcome Outcome) {
	resultKey := keyFailure
	if outcome.Success {
		resultKey = keySuccess
	}

	pipe := r.rdb.TxPipeline()
	pipe.Incr(ctx, keyTotal)
	pipe.Incr(ctx, resultKey)
	if outcome.Success && outcome.Scene != "" {
		pipe.HIncrBy(ctx, keyScenes, outcome.Scene, 1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("⚠️  [Stats] Failed to record outcome (scene=%s, success=%v): %v", outcome.Scene, outcome.Success, err)
	}
}

// Snapshot - 현재 통계 조회
func (r *RedisRecorder) Snapshot(ctx context.Context) (*Snapshot, error) {
	counts, err := r.rdb.MGet(ctx, keyTotal, keySuccess, keyFailure).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read counters: %w", err)
	}

	scenes, err := r.rdb.HGetAll(ctx, keyScenes).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read scene counters: %w", err)
	}

	snap := &Snapshot{
		Enabled: true,
		Total:   toInt64(counts[0]),
		Success: toInt64(counts[1]),
		Failure: toInt64(counts[2]),
		Scenes:  make(map[string]int64, len(scenes)),
	}
	for scene, v := range scenes {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		snap.Scenes[scene] = n
	}
	return snap, nil
}

// MGET 결과는 없는 키면 nil, 있으면 string
func toInt64(v interface{}) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
