//go:build darwin

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/shazow/ssidshuffle/internal/config"
	"github.com/shazow/ssidshuffle/wifi/corewlan"
	"github.com/shazow/ssidshuffle/wifi/networksetup"
)

func newPlatform(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*platform, error) {
	store, err := corewlan.New()
	if err != nil {
		return nil, err
	}

	ns := networksetup.New(logger)
	ns.Timeout = cfg.Timeout.Duration

	major, err := macOSMajorVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to determine macOS version: %w", err)
	}

	return &platform{
		Store:   store,
		Tool:    ns,
		Radio:   ns,
		OSMajor: major,
		// Committing configuration changes outside System Settings needs
		// root from macOS 12 on.
		RequiresRoot:   major >= 12,
		ListInterfaces: ns.Interfaces,
	}, nil
}

func macOSMajorVersion(ctx context.Context) (int, error) {
	out, err := exec.CommandContext(ctx, "/usr/bin/sw_vers", "-productVersion").Output()
	if err != nil {
		return 0, err
	}
	version := strings.TrimSpace(string(out))
	major, _, _ := strings.Cut(version, ".")
	n, err := strconv.Atoi(major)
	if err != nil {
		return 0, fmt.Errorf("unexpected sw_vers output %q: %w", version, err)
	}
	return n, nil
}
