//go:build darwin && !cgo

package corewlan

import (
	"context"
	"fmt"

	"github.com/shazow/ssidshuffle/wifi"
)

// Store requires cgo to reach CoreWLAN.
type Store struct{}

func New() (*Store, error) {
	return nil, fmt.Errorf("corewlan requires a cgo-enabled build: %w", wifi.ErrNotSupported)
}

func (s *Store) Snapshot(ctx context.Context, iface string) ([]wifi.Profile, error) {
	return nil, wifi.ErrNotSupported
}

func (s *Store) Commit(ctx context.Context, iface string, profiles []wifi.Profile) wifi.CommitResult {
	return wifi.CommitResult{Detail: wifi.ErrNotSupported.Error()}
}
