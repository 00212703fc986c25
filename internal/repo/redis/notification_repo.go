package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ivankudzin/askbox/backend/internal/domain/model"
)

const (
	notificationChannelPrefix = "notifications:user:"
	notificationListPrefix    = "notifications:recent:"

	recentNotificationsCap = 50
	recentNotificationsTTL = 30 * 24 * time.Hour
)

// NotificationRepo fans a moderation notice out to the target user: one
// publish on the user's channel for live delivery, plus a capped recent list
// so the client can catch up after reconnecting.
type NotificationRepo struct {
	client *goredis.Client
	now    func() time.Time
}

func NewNotificationRepo(client *goredis.Client) *NotificationRepo {
	return &NotificationRepo{
		client: client,
		now:    time.Now,
	}
}

func (r *NotificationRepo) Notify(ctx context.Context, userID int64, message string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if userID <= 0 || message == "" {
		return fmt.Errorf("invalid notification payload")
	}

	notification := model.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		CreatedAt: r.now().UTC(),
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, listKey(userID), payload)
	pipe.LTrim(ctx, listKey(userID), 0, recentNotificationsCap-1)
	pipe.Expire(ctx, listKey(userID), recentNotificationsTTL)
	pipe.Publish(ctx, channelKey(userID), payload)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}

	return nil
}

func (r *NotificationRepo) ListRecent(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if limit <= 0 || limit > recentNotificationsCap {
		limit = recentNotificationsCap
	}

	raw, err := r.client.LRange(ctx, listKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list recent notifications: %w", err)
	}

	notifications := make([]model.Notification, 0, len(raw))
	for _, item := range raw {
		var n model.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			return nil, fmt.Errorf("unmarshal notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, nil
}

func channelKey(userID int64) string {
	return fmt.Sprintf("%s%d", notificationChannelPrefix, userID)
}

func listKey(userID int64) string {
	return fmt.Sprintf("%s%d", notificationListPrefix, userID)
}
