package cache

import (
	"Loyo/types"
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SummaryStorage 客户侧会员摘要的反规范化缓存。
// redis hash：key 按客户，field 按商家。只是展示缓存，
// 权威数据在 memberships / point_transactions，随时可全量重建。
type SummaryStorage struct {
	redis *redis.Client
}

func NewSummaryStorage(rds *redis.Client) *SummaryStorage {
	return &SummaryStorage{redis: rds}
}

func (s *SummaryStorage) key(customerID string) string {
	return fmt.Sprintf("loyo:customer:summary:%s", customerID)
}

// Set 覆盖写单个商家的摘要条目（不存在则新增）
func (s *SummaryStorage) Set(ctx context.Context, customerID string, summary types.BusinessSummary) error {
	body, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return s.redis.HSet(ctx, s.key(customerID), summary.BusinessID, body).Err()
}

func (s *SummaryStorage) Get(ctx context.Context, customerID, businessID string) (*types.BusinessSummary, error) {
	val, err := s.redis.HGet(ctx, s.key(customerID), businessID).Result()
	if err != nil {
		return nil, err
	}

	var summary types.BusinessSummary
	if err := json.Unmarshal([]byte(val), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *SummaryStorage) List(ctx context.Context, customerID string) ([]types.BusinessSummary, error) {
	items, err := s.redis.HGetAll(ctx, s.key(customerID)).Result()
	if err != nil {
		return nil, err
	}

	summaries := make([]types.BusinessSummary, 0, len(items))
	for _, raw := range items {
		var summary types.BusinessSummary
		if err := json.Unmarshal([]byte(raw), &summary); err != nil {
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ReplaceAll 全量重建：先删后写，顺带清掉已经不存在的商家条目
func (s *SummaryStorage) ReplaceAll(ctx context.Context, customerID string, summaries []types.BusinessSummary) error {
	pipe := s.redis.TxPipeline()
	pipe.Del(ctx, s.key(customerID))
	for _, summary := range summaries {
		body, err := json.Marshal(summary)
		if err != nil {
			return err
		}
		pipe.HSet(ctx, s.key(customerID), summary.BusinessID, body)
	}
	_, err := pipe.Exec(ctx)
	return err
}
