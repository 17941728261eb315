// Package mock provides in-memory implementations of the backend
// collaborators for testing.
package mock

import (
	"context"

	"github.com/shazow/ssidshuffle/wifi"
)

// Store is an in-memory wifi.ConfigStore and wifi.Radio with injectable
// failures.
type Store struct {
	Profiles []wifi.Profile

	SnapshotErr    error
	SetWirelessErr error
	// CommitResult, when set, overrides the default successful commit.
	CommitResult *wifi.CommitResult

	// Committed records every order handed to Commit, applied or not.
	Committed       [][]wifi.Profile
	WirelessEnabled bool
	PowerEvents     []bool
}

// New returns a Store seeded with a small preferred-network list.
func New() *Store {
	return &Store{
		Profiles: []wifi.Profile{
			{SSID: "HideYoKidsHideYoWiFi", Security: wifi.SecurityWPA2Personal},
			{SSID: "GET off my LAN", Security: wifi.SecurityWPA3Personal},
			{SSID: "Pretty Fly for a Wi-Fi", Security: wifi.SecurityWPA2Personal},
			{SSID: "Unencrypted_Honeypot", Security: wifi.SecurityOpen},
			{SSID: "I See Dead Packets", Security: wifi.SecurityWEP},
		},
		WirelessEnabled: true,
	}
}

func (s *Store) Snapshot(ctx context.Context, iface string) ([]wifi.Profile, error) {
	if s.SnapshotErr != nil {
		return nil, s.SnapshotErr
	}
	out := make([]wifi.Profile, len(s.Profiles))
	copy(out, s.Profiles)
	return out, nil
}

func (s *Store) Commit(ctx context.Context, iface string, profiles []wifi.Profile) wifi.CommitResult {
	s.Committed = append(s.Committed, profiles)
	if s.CommitResult != nil {
		return *s.CommitResult
	}
	s.Profiles = make([]wifi.Profile, len(profiles))
	copy(s.Profiles, profiles)
	return wifi.CommitResult{OK: true}
}

func (s *Store) SetWireless(ctx context.Context, iface string, enabled bool) error {
	if s.SetWirelessErr != nil {
		return s.SetWirelessErr
	}
	s.WirelessEnabled = enabled
	s.PowerEvents = append(s.PowerEvents, enabled)
	return nil
}

// Add records one Tool.AddAtIndex call.
type Add struct {
	SSID     string
	Index    int
	Security wifi.SecurityType
}

// Tool is an in-memory wifi.Tool with injectable per-SSID failures.
type Tool struct {
	RemoveAllErr error
	// AddErrs maps SSIDs to the error their re-add should fail with.
	AddErrs map[string]error

	Removed bool
	Adds    []Add
}

func (t *Tool) RemoveAll(ctx context.Context, iface string) error {
	if t.RemoveAllErr != nil {
		return t.RemoveAllErr
	}
	t.Removed = true
	return nil
}

func (t *Tool) AddAtIndex(ctx context.Context, iface string, ssid string, index int, security wifi.SecurityType) error {
	if err, ok := t.AddErrs[ssid]; ok {
		return err
	}
	if _, err := security.NetworksetupName(); err != nil {
		return err
	}
	t.Adds = append(t.Adds, Add{SSID: ssid, Index: index, Security: security})
	return nil
}
