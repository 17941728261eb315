//go:build !darwin && !linux

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shazow/ssidshuffle/internal/config"
	"github.com/shazow/ssidshuffle/wifi"
)

func newPlatform(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*platform, error) {
	return nil, fmt.Errorf("ssidshuffle does not support this platform: %w", wifi.ErrNotSupported)
}
