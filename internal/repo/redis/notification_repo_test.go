package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func TestNotifyPushesAndPublishes(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := NewNotificationRepo(client)
	repo.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	ctx := context.Background()
	if err := repo.Notify(ctx, 42, "You have been warned"); err != nil {
		t.Fatalf("notify: %v", err)
	}

	recent, err := repo.ListRecent(ctx, 42, 10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("unexpected recent count: %d", len(recent))
	}
	if recent[0].UserID != 42 || recent[0].Message != "You have been warned" {
		t.Fatalf("unexpected notification: %+v", recent[0])
	}
	if recent[0].ID == "" {
		t.Fatalf("expected a notification id")
	}

	if ttl := mr.TTL("notifications:recent:42"); ttl <= 0 {
		t.Fatalf("expected a ttl on the recent list, got %v", ttl)
	}
}

func TestNotifyOrdersNewestFirstAndTrims(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := NewNotificationRepo(client)
	ctx := context.Background()

	for i := 0; i < recentNotificationsCap+10; i++ {
		if err := repo.Notify(ctx, 42, fmt.Sprintf("notice %d", i)); err != nil {
			t.Fatalf("notify %d: %v", i, err)
		}
	}

	recent, err := repo.ListRecent(ctx, 42, 0)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(recent) != recentNotificationsCap {
		t.Fatalf("expected list capped at %d, got %d", recentNotificationsCap, len(recent))
	}
	if recent[0].Message != fmt.Sprintf("notice %d", recentNotificationsCap+9) {
		t.Fatalf("expected newest notice first, got %q", recent[0].Message)
	}
}

func TestNotifyRejectsInvalidPayload(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := NewNotificationRepo(client)
	ctx := context.Background()

	if err := repo.Notify(ctx, 0, "hello"); err == nil {
		t.Fatalf("expected error for invalid user id")
	}
	if err := repo.Notify(ctx, 42, ""); err == nil {
		t.Fatalf("expected error for empty message")
	}
}

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
	})

	return mr, client
}
