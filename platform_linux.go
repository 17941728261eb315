//go:build linux

package main

import (
	"context"
	"log/slog"

	"github.com/shazow/ssidshuffle/internal/config"
	"github.com/shazow/ssidshuffle/wifi/networkmanager"
)

func newPlatform(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*platform, error) {
	store, err := networkmanager.New(logger)
	if err != nil {
		return nil, err
	}

	// NetworkManager authorizes writes via polkit, so there is no euid
	// precondition here, and no external tool backend either.
	return &platform{
		Store:          store,
		Radio:          store,
		ListInterfaces: store.Interfaces,
	}, nil
}
