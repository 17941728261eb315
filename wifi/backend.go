package wifi

import (
	"context"
	"fmt"
)

// CodeOperationNotPermitted is the configuration API's error code for a
// commit attempted without sufficient privileges
// (kCWOperationNotPermittedErr in CoreWLAN terms).
const CodeOperationNotPermitted = -3930

// ConfigStore reads and writes the preferred-network list through the OS
// configuration API. Snapshot is taken fresh for every operation and never
// cached across invocations.
type ConfigStore interface {
	// Snapshot returns the saved network profiles for iface in the order
	// the OS will prefer to join them.
	Snapshot(ctx context.Context, iface string) ([]Profile, error)
	// Commit installs profiles as the new preferred order in a single
	// operation against the live interface configuration.
	Commit(ctx context.Context, iface string, profiles []Profile) CommitResult
}

// CommitResult is the outcome of a ConfigStore.Commit: a success flag plus
// the error domain/code the API reported on failure.
type CommitResult struct {
	OK     bool
	Domain string
	Code   int
	Detail string
}

func (r CommitResult) String() string {
	if r.OK {
		return "ok"
	}
	detail := r.Detail
	if detail == "" {
		detail = "(null)"
	}
	return fmt.Sprintf("Error Domain=%s Code=%d %q", r.Domain, r.Code, detail)
}

// Tool drives the external command-line network configuration tool. Both
// operations mutate shared OS state and must be invoked sequentially.
type Tool interface {
	// RemoveAll removes every preferred network on iface.
	RemoveAll(ctx context.Context, iface string) error
	// AddAtIndex adds ssid as a preferred network at the given 0-based
	// position, with the given security classification.
	AddAtIndex(ctx context.Context, iface string, ssid string, index int, security SecurityType) error
}

// Radio toggles wireless power, used for power-cycling after a reorder.
type Radio interface {
	SetWireless(ctx context.Context, iface string, enabled bool) error
}

// Kind identifies which backend applies a computed ordering.
type Kind int

const (
	// KindConfigAPI applies the order via the OS configuration API in a
	// single atomic commit.
	KindConfigAPI Kind = iota
	// KindNetworkSetup applies the order by removing all preferred
	// networks and re-adding them one at a time with the external tool.
	KindNetworkSetup
)

func (k Kind) String() string {
	switch k {
	case KindConfigAPI:
		return "configuration API"
	case KindNetworkSetup:
		return "networksetup"
	}
	return "unknown"
}

// SelectBackend decides which backend to use. The configuration API works
// through macOS 12; from macOS 13 it reports success without the change
// taking effect, so the external tool is used there. The decision is made
// once per invocation.
func SelectBackend(osMajor int, forceTool bool) Kind {
	if forceTool {
		return KindNetworkSetup
	}
	if osMajor <= 12 {
		return KindConfigAPI
	}
	return KindNetworkSetup
}

// Outcome reports what an apply attempt actually did. The external-tool
// backend can land part of an order; Applied and Failed enumerate exactly
// which SSIDs went where so an operator can recover by hand.
type Outcome struct {
	Backend Kind
	OK      bool
	// Advisory is set when the configuration API reported success on an
	// OS version known to silently ignore the reordering.
	Advisory bool
	Applied  []string
	Failed   []string
}
