package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/finance-tracker/analytics/config"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(&config.RedisConfig{URL: "redis://" + mr.Addr() + "/0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	if !HealthCheck(context.Background(), client) {
		t.Error("expected healthy redis")
	}

	mr.Close()
	if HealthCheck(context.Background(), client) {
		t.Error("expected unhealthy redis after shutdown")
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	if _, err := NewRedisClient(&config.RedisConfig{URL: "::not a url"}); err == nil {
		t.Error("expected error for invalid url")
	}
}

func TestHealthCheck_NilClient(t *testing.T) {
	if HealthCheck(context.Background(), nil) {
		t.Error("expected nil client to be unhealthy")
	}
}
