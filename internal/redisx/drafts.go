package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/orderdesk/internal/service/intake"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DraftStore keeps drafts as JSON strings. Every save renews the key ttl, so
// a draft expires ttl after its last change.
type DraftStore struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

func NewDraftStore(rdb *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{rdb: rdb, ttl: ttl, now: time.Now}
}

func (s *DraftStore) Get(ctx context.Context, userID int64) (*intake.Draft, error) {
	raw, err := s.rdb.Get(ctx, fmt.Sprintf(KeyDraft, userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't get draft", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	var draft intake.Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		zap.L().Warn("dropping unreadable draft", zap.Int64("user_id", userID), zap.Error(err))
		return nil, s.Delete(ctx, userID)
	}
	return &draft, nil
}

func (s *DraftStore) Save(ctx context.Context, draft *intake.Draft) error {
	stored := *draft
	stored.UpdatedAt = s.now()
	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.rdb.Set(ctx, fmt.Sprintf(KeyDraft, draft.UserID), raw, s.ttl).Err(); err != nil {
		zap.L().Error("can't save draft", zap.Int64("user_id", draft.UserID), zap.Error(err))
		return err
	}
	return nil
}

func (s *DraftStore) Delete(ctx context.Context, userID int64) error {
	if err := s.rdb.Del(ctx, fmt.Sprintf(KeyDraft, userID)).Err(); err != nil {
		zap.L().Error("can't delete draft", zap.Int64("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}
