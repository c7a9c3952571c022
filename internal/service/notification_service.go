package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/snazzify/snazzpay-backend/internal/model"
	"github.com/snazzify/snazzpay-backend/internal/repository"
)

const unreadCacheTTL = 30 * time.Second

type NotificationService interface {
	Notify(ctx context.Context, actor, typ, title, body string, orderID, leadID *uint64)
	List(ctx context.Context, actor string, unreadOnly bool, limit int) ([]model.Notification, int64, error)
	MarkAllRead(ctx context.Context, actor string) error
	SetRedisClient(client *redis.Client)
}

type notificationService struct {
	repo  repository.NotificationRepository
	cache *redis.Client
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) SetRedisClient(client *redis.Client) {
	s.cache = client
}

// Notify is best-effort; it must never break the flow that triggered it.
func (s *notificationService) Notify(ctx context.Context, actor, typ, title, body string, orderID, leadID *uint64) {
	if actor == "" || typ == "" {
		return
	}
	n := &model.Notification{
		Actor:   actor,
		Type:    typ,
		Title:   title,
		Body:    body,
		OrderID: orderID,
		LeadID:  leadID,
	}
	_ = s.repo.Create(ctx, n)
	s.invalidateUnread(ctx, actor)
}

func (s *notificationService) List(ctx context.Context, actor string, unreadOnly bool, limit int) ([]model.Notification, int64, error) {
	if actor == "" {
		return nil, 0, nil
	}
	list, err := s.repo.ListByActor(ctx, actor, unreadOnly, limit)
	if err != nil {
		return nil, 0, err
	}
	cnt, err := s.countUnread(ctx, actor)
	if err != nil {
		return list, 0, err
	}
	return list, cnt, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor string) error {
	if actor == "" {
		return nil
	}
	if err := s.repo.MarkAllRead(ctx, actor); err != nil {
		return err
	}
	s.invalidateUnread(ctx, actor)
	return nil
}

// Badge counts are polled by every dashboard; a short redis cache keeps the
// count query off the hot path. Staleness within the TTL is acceptable.
func (s *notificationService) countUnread(ctx context.Context, actor string) (int64, error) {
	key := unreadKey(actor)
	if s.cache != nil {
		if cnt, err := s.cache.Get(ctx, key).Int64(); err == nil {
			return cnt, nil
		}
	}
	cnt, err := s.repo.CountUnread(ctx, actor)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, cnt, unreadCacheTTL)
	}
	return cnt, nil
}

func (s *notificationService) invalidateUnread(ctx context.Context, actor string) {
	if s.cache != nil {
		s.cache.Del(ctx, unreadKey(actor))
	}
}

func unreadKey(actor string) string {
	return fmt.Sprintf("notify:unread:%s", actor)
}
