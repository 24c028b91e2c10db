package services

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestMemorySessionStoreRoundTrip(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	userID, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("expected user-1, got %q", userID)
	}

	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if _, err := store.Get(ctx, token); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound after destroy, got %v", err)
	}
}

func TestMemorySessionStoreUnknownToken(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	if _, err := store.Get(context.Background(), "nope"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore(time.Millisecond)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	if _, err := store.Get(ctx, token); err != ErrSessionNotFound {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
}

func TestMemorySessionStoreDistinctTokens(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	ctx := context.Background()

	first, _ := store.Create(ctx, "user-1")
	second, _ := store.Create(ctx, "user-1")
	if first == second {
		t.Fatalf("expected distinct tokens per login")
	}
}

func TestRedisSessionStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisSessionStore(client, time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-42")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !mr.Exists("session:" + token) {
		t.Fatalf("expected redis key to be set")
	}

	userID, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if userID != "user-42" {
		t.Fatalf("expected user-42, got %q", userID)
	}

	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if mr.Exists("session:" + token) {
		t.Fatalf("expected redis key to be removed")
	}
	if _, err := store.Get(ctx, token); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound after destroy, got %v", err)
	}
}

func TestRedisSessionStoreExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisSessionStore(client, time.Second)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	mr.FastForward(2 * time.Second)
	if _, err := store.Get(ctx, token); err != ErrSessionNotFound {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
}
