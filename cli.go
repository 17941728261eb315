package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shazow/ssidshuffle/wifi"
)

const advisoryWarning = `Note: macOS 13+ appears to no longer honor manual SSID re-ordering even
      though the configuration change reports success. Verify the new order
      took effect, or re-run with -networksetup.`

type setOptions struct {
	DryRun         bool
	ForceTool      bool
	PowerCycle     bool
	PowerCycleWait time.Duration
}

// runList prints the current SSID order, one ` index:ssid` line per
// network.
func runList(ctx context.Context, w io.Writer, sh *wifi.Shuffler, iface string) error {
	profiles, err := sh.CurrentOrder(ctx, iface)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Current SSIDs for interface %q\n", iface)
	for i, p := range profiles {
		fmt.Fprintf(w, " %d:%s\n", i, p.SSID)
	}
	return nil
}

// runSet applies (or, for a dry run, prints) the merged order for desired.
func runSet(ctx context.Context, stdout, stderr io.Writer, sh *wifi.Shuffler, iface string, desired []string, opts setOptions) error {
	if opts.DryRun {
		current, merged, err := sh.Plan(ctx, iface, desired)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Old SSID order:")
		for _, p := range current {
			fmt.Fprintf(stdout, " %q\n", p.SSID)
		}
		fmt.Fprintln(stdout, "New SSID order:")
		for _, p := range merged {
			fmt.Fprintf(stdout, " %q\n", p.SSID)
		}
		if opts.PowerCycle {
			fmt.Fprintf(stdout, "Would power cycle wireless interface %q\n", iface)
		}
		return nil
	}

	outcome, err := sh.Reorder(ctx, iface, desired, opts.ForceTool)
	if err != nil {
		// Part of the order may already be in place; tell the operator
		// what landed so they can recover by hand.
		if len(outcome.Applied) > 0 {
			fmt.Fprintf(stderr, "Re-added before the failure: %s\n", strings.Join(outcome.Applied, ", "))
		}
		return err
	}

	fmt.Fprintln(stdout, "Success!")
	if outcome.Advisory {
		fmt.Fprintln(stderr, advisoryWarning)
	}

	if opts.PowerCycle {
		fmt.Fprintf(stdout, "Power cycling wireless interface %q\n", iface)
		if err := sh.PowerCycle(ctx, iface, opts.PowerCycleWait); err != nil {
			return err
		}
	}
	return nil
}

// runRoot handles an invocation with no subcommand: print the usage text
// and fail, since there is no default action.
func runRoot(w io.Writer, usage string) error {
	fmt.Fprintln(w, usage)
	return errors.New("a subcommand is required: list or set")
}

// resolveInterface picks the interface to operate on: the requested one if
// it is a known wireless interface, or the platform's current one when none
// was requested. A requested interface that is not wireless is rejected
// with a hint.
func resolveInterface(ctx context.Context, p *platform, requested string) (string, error) {
	interfaces, err := p.ListInterfaces(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list wireless interfaces: %v: %w", err, wifi.ErrConfigUnavailable)
	}
	if len(interfaces) == 0 {
		return "", fmt.Errorf("no wireless interface found: %w", wifi.ErrConfigUnavailable)
	}
	if requested == "" {
		return interfaces[0], nil
	}
	for _, name := range interfaces {
		if name == requested {
			return requested, nil
		}
	}
	return "", fmt.Errorf("the specified interface %q is not a valid wireless interface; perhaps you meant %q?", requested, interfaces[0])
}
