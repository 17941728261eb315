package wifi

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Shuffler performs one reorder operation against a single interface. It is
// constructed per invocation and holds no hidden global state; the zero
// value is not usable, a ConfigStore is required.
type Shuffler struct {
	Store ConfigStore
	// Tool is the external-tool backend, nil on platforms without one.
	Tool Tool
	// Radio is used for power-cycling, nil when unavailable.
	Radio Radio
	// OSMajor is the host OS major version (0 where the version gate does
	// not apply).
	OSMajor int
	// Elevated records whether the effective user is privileged, used to
	// shape the hint on permission failures.
	Elevated bool
	Log      *slog.Logger
}

func (s *Shuffler) logger() *slog.Logger {
	if s.Log == nil {
		return slog.Default()
	}
	return s.Log
}

// CurrentOrder returns the interface's saved networks in their current
// preference order.
func (s *Shuffler) CurrentOrder(ctx context.Context, iface string) ([]Profile, error) {
	profiles, err := s.Store.Snapshot(ctx, iface)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration for %q: %v: %w", iface, err, ErrConfigUnavailable)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("wireless interface %q does not have any configured SSIDs: %w", iface, ErrNoConfiguredNetworks)
	}
	return profiles, nil
}

// Plan reads the current order and computes the merged order for desired,
// without applying anything. A single desired SSID means "move to front".
func (s *Shuffler) Plan(ctx context.Context, iface string, desired []string) (current, merged []Profile, err error) {
	current, err = s.CurrentOrder(ctx, iface)
	if err != nil {
		return nil, nil, err
	}
	names := SSIDs(current)
	if missing := Missing(names, desired); len(missing) > 0 {
		return nil, nil, &UnknownSSIDError{Missing: missing}
	}
	merged = reorderProfiles(current, Merge(names, desired))
	return current, merged, nil
}

// Reorder computes the merged order for desired and applies it through the
// selected backend. Validation failures happen before any mutation; apply
// failures report exactly which SSIDs landed via the Outcome.
func (s *Shuffler) Reorder(ctx context.Context, iface string, desired []string, forceTool bool) (Outcome, error) {
	_, merged, err := s.Plan(ctx, iface, desired)
	if err != nil {
		return Outcome{}, err
	}

	kind := SelectBackend(s.OSMajor, forceTool)
	if kind == KindNetworkSetup && s.Tool == nil {
		if forceTool {
			return Outcome{}, fmt.Errorf("the external tool backend is not available on this platform: %w", ErrNotSupported)
		}
		// No tool wired (e.g. linux); the configuration API is the only
		// way to apply.
		s.logger().Debug("external tool backend unavailable, using configuration API", "os_major", s.OSMajor)
		kind = KindConfigAPI
	}
	s.logger().Debug("applying merged order", "backend", kind.String(), "interface", iface, "ssids", len(merged))

	switch kind {
	case KindNetworkSetup:
		return s.applyTool(ctx, iface, merged)
	default:
		return s.applyStore(ctx, iface, merged)
	}
}

// applyStore applies merged through the configuration API as one atomic
// set-and-commit. It is all-or-nothing.
func (s *Shuffler) applyStore(ctx context.Context, iface string, merged []Profile) (Outcome, error) {
	out := Outcome{Backend: KindConfigAPI}

	res := s.Store.Commit(ctx, iface, merged)
	if !res.OK {
		out.Failed = SSIDs(merged)
		if res.Code == CodeOperationNotPermitted && !s.Elevated {
			return out, fmt.Errorf("error committing change: %s - you may need to run this with 'sudo': %w", res, ErrPrivilegeRequired)
		}
		return out, fmt.Errorf("error committing change: %s: %w", res, ErrApplyFailed)
	}

	out.OK = true
	out.Applied = SSIDs(merged)
	if s.OSMajor >= 13 {
		// The API reports success on these versions even though the OS may
		// ignore the new order. Surfaced, not worked around.
		out.Advisory = true
	}
	return out, nil
}

// applyTool applies merged with the external tool: remove every preferred
// network, then re-add each one at its merged position. The removal is a
// destructive precondition; if it fails nothing else is attempted. Re-adds
// run sequentially and independently, so one failure does not stop the
// rest, and the outcome names every SSID that did not land.
func (s *Shuffler) applyTool(ctx context.Context, iface string, merged []Profile) (Outcome, error) {
	out := Outcome{Backend: KindNetworkSetup}

	if err := s.Tool.RemoveAll(ctx, iface); err != nil {
		out.Failed = SSIDs(merged)
		return out, fmt.Errorf("failed to remove existing preferred networks on %q: %v: %w", iface, err, ErrApplyFailed)
	}

	for i, p := range merged {
		if err := s.Tool.AddAtIndex(ctx, iface, p.SSID, i, p.Security); err != nil {
			s.logger().Error("failed to re-add preferred network", "ssid", p.SSID, "index", i, "error", err)
			out.Failed = append(out.Failed, p.SSID)
			continue
		}
		out.Applied = append(out.Applied, p.SSID)
	}

	if len(out.Failed) > 0 {
		return out, fmt.Errorf("re-added %d of %d preferred networks; not re-added: %s: %w",
			len(out.Applied), len(merged), strings.Join(out.Failed, ", "), ErrApplyFailed)
	}
	out.OK = true
	return out, nil
}

// PowerCycle turns the wireless radio off, waits, then turns it back on.
func (s *Shuffler) PowerCycle(ctx context.Context, iface string, wait time.Duration) error {
	if s.Radio == nil {
		return fmt.Errorf("power cycling is not available on this platform: %w", ErrNotSupported)
	}
	if err := s.Radio.SetWireless(ctx, iface, false); err != nil {
		return fmt.Errorf("failed to power off %q: %w", iface, err)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
	}
	if err := s.Radio.SetWireless(ctx, iface, true); err != nil {
		return fmt.Errorf("failed to power on %q: %w", iface, err)
	}
	return nil
}
