//go:build linux

// Package networkmanager implements the configuration-API backend on linux
// by mapping the preferred order onto NetworkManager's autoconnect-priority:
// position i of n becomes priority n-1-i, so earlier networks win auto-join.
package networkmanager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Wifx/gonetworkmanager/v3"
	"github.com/godbus/dbus/v5"

	"github.com/shazow/ssidshuffle/wifi"
)

// Store implements wifi.ConfigStore and wifi.Radio over D-Bus to
// NetworkManager.
type Store struct {
	nm       gonetworkmanager.NetworkManager
	settings gonetworkmanager.Settings
	log      *slog.Logger

	// connections maps SSID to the settings connections seen by the last
	// Snapshot, so Commit can update them without a second listing.
	connections map[string][]gonetworkmanager.Connection
}

func New(logger *slog.Logger) (*Store, error) {
	nm, err := gonetworkmanager.NewNetworkManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create network manager client: %w", wifi.ErrNotSupported)
	}
	settings, err := gonetworkmanager.NewSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &Store{
		nm:          nm,
		settings:    settings,
		log:         logger,
		connections: make(map[string][]gonetworkmanager.Connection),
	}, nil
}

type entry struct {
	profile  wifi.Profile
	priority int64
	conn     gonetworkmanager.Connection
}

// Snapshot returns the wireless connections usable on iface, ordered by
// descending autoconnect-priority. Ties keep NetworkManager's listing
// order, which makes the snapshot stable across calls.
func (s *Store) Snapshot(ctx context.Context, iface string) ([]wifi.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conns, err := s.settings.ListConnections()
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}

	var entries []entry
	s.connections = make(map[string][]gonetworkmanager.Connection)
	for _, conn := range conns {
		settings, err := conn.GetSettings()
		if err != nil {
			continue
		}
		connSection, ok := settings["connection"]
		if !ok {
			continue
		}
		if typ, _ := connSection["type"].(string); typ != "802-11-wireless" {
			continue
		}
		// A connection pinned to another device is not part of this
		// interface's list.
		if name, _ := connSection["interface-name"].(string); name != "" && name != iface {
			continue
		}

		ssid := ssidFromSettings(settings)
		if ssid == "" {
			continue
		}

		entries = append(entries, entry{
			profile: wifi.Profile{
				SSID:     ssid,
				Security: securityFromSettings(settings),
			},
			priority: asInt64(connSection["autoconnect-priority"]),
			conn:     conn,
		})
		s.connections[ssid] = append(s.connections[ssid], conn)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].priority > entries[j].priority
	})

	profiles := make([]wifi.Profile, len(entries))
	for i, e := range entries {
		profiles[i] = e.profile
	}
	return profiles, nil
}

// Commit writes autoconnect-priority values matching the given order. The
// D-Bus updates are per-connection rather than one transaction; the first
// failure aborts and is reported with its D-Bus error name as the domain.
func (s *Store) Commit(ctx context.Context, iface string, profiles []wifi.Profile) wifi.CommitResult {
	if err := ctx.Err(); err != nil {
		return wifi.CommitResult{Detail: err.Error()}
	}
	if len(s.connections) == 0 {
		if _, err := s.Snapshot(ctx, iface); err != nil {
			return wifi.CommitResult{Detail: err.Error()}
		}
	}

	used := make(map[string]int)
	n := len(profiles)
	for i, p := range profiles {
		conns := s.connections[p.SSID]
		idx := used[p.SSID]
		if idx >= len(conns) {
			return wifi.CommitResult{
				Domain: "org.freedesktop.NetworkManager",
				Detail: fmt.Sprintf("no connection found for SSID %q", p.SSID),
			}
		}
		used[p.SSID]++

		if err := s.setPriority(conns[idx], int32(n-1-i)); err != nil {
			res := wifi.CommitResult{Detail: err.Error()}
			var dbusErr dbus.Error
			if errors.As(err, &dbusErr) {
				res.Domain = dbusErr.Name
			} else {
				res.Domain = "org.freedesktop.NetworkManager"
			}
			return res
		}
	}
	return wifi.CommitResult{OK: true}
}

func (s *Store) setPriority(conn gonetworkmanager.Connection, priority int32) error {
	settings, err := conn.GetSettings()
	if err != nil {
		return err
	}
	if _, ok := settings["connection"]; !ok {
		settings["connection"] = make(map[string]interface{})
	}
	settings["connection"]["autoconnect-priority"] = priority

	applyUpdateWorkaround(settings)
	return conn.Update(settings)
}

// applyUpdateWorkaround strips ipv6 properties that NetworkManager returns
// in a D-Bus type it will not accept back on update.
// See: https://github.com/Wifx/gonetworkmanager/issues/13 and
// https://github.com/godbus/dbus/issues/400
func applyUpdateWorkaround(settings map[string]map[string]interface{}) {
	if ipv6Settings, ok := settings["ipv6"]; ok {
		delete(ipv6Settings, "addresses")
		delete(ipv6Settings, "routes")
	}
}

// SetWireless enables or disables the wireless radio.
func (s *Store) SetWireless(ctx context.Context, iface string, enabled bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.nm.SetPropertyWirelessEnabled(enabled)
}

// Interfaces returns the names of all wireless devices.
func (s *Store) Interfaces(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	devices, err := s.nm.GetDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	var names []string
	for _, device := range devices {
		deviceType, err := device.GetPropertyDeviceType()
		if err != nil {
			continue
		}
		if deviceType != gonetworkmanager.NmDeviceTypeWifi {
			continue
		}
		name, err := device.GetPropertyInterface()
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func ssidFromSettings(settings map[string]map[string]interface{}) string {
	wireless, ok := settings["802-11-wireless"]
	if !ok {
		return ""
	}
	if raw, ok := wireless["ssid"].([]byte); ok {
		return string(raw)
	}
	if str, ok := wireless["ssid"].(string); ok {
		return str
	}
	return ""
}

func securityFromSettings(settings map[string]map[string]interface{}) wifi.SecurityType {
	security, ok := settings["802-11-wireless-security"]
	if !ok {
		return wifi.SecurityOpen
	}
	keyMgmt, _ := security["key-mgmt"].(string)
	switch keyMgmt {
	case "wpa-psk":
		return wifi.SecurityWPA2Personal
	case "sae":
		return wifi.SecurityWPA3Personal
	case "wpa-eap":
		return wifi.SecurityWPA2Enterprise
	case "ieee8021x":
		return wifi.SecurityDynamicWEP
	case "none":
		return wifi.SecurityWEP
	case "":
		return wifi.SecurityOpen
	}
	return wifi.SecurityUnknown
}

// asInt64 normalizes the numeric types D-Bus may hand back for
// autoconnect-priority.
func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case uint32:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}
