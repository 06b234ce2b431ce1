package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casting-agency/casting-agency/internal/app"
)

func TestRunFailsWhenStoreUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := &app.Config{
		AppEnv:      "test",
		AppAddr:     "127.0.0.1:0",
		DatabaseURL: "postgres://casting@127.0.0.1:1/casting?sslmode=disable&connect_timeout=1",
	}
	err := run(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "platform/db")
}
