package main

import (
	"context"

	"github.com/shazow/ssidshuffle/wifi"
)

// platform bundles the OS-specific collaborators for one invocation.
type platform struct {
	Store wifi.ConfigStore
	// Tool is nil on platforms without an external configuration tool.
	Tool  wifi.Tool
	Radio wifi.Radio

	// OSMajor is the host OS major version where the backend selection is
	// version-gated, 0 elsewhere.
	OSMajor int
	// RequiresRoot is set when applying changes needs an elevated user.
	RequiresRoot bool

	ListInterfaces func(ctx context.Context) ([]string, error)
}
