// Package networksetup drives /usr/sbin/networksetup, the external tool
// used to rewrite the preferred-network list when the configuration API
// cannot be trusted. The binary is notorious for writing error messages to
// stdout rather than stderr and for returning a zero exit code on some
// failures, so every invocation's transcript is validated against the
// expected success phrase; the exit code alone proves nothing.
package networksetup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/shazow/ssidshuffle/wifi"
)

const binPath = "/usr/sbin/networksetup"

// DefaultTimeout bounds a single networksetup invocation so a hung tool
// surfaces as a timeout failure instead of blocking forever.
const DefaultTimeout = 30 * time.Second

// runFunc executes the tool with args and returns its transcript. It exists
// so tests can substitute canned transcripts for real invocations.
type runFunc func(ctx context.Context, args ...string) (stdout, stderr string, code int, err error)

// Client invokes networksetup with a bounded wait per invocation.
type Client struct {
	Timeout time.Duration
	Log     *slog.Logger

	run runFunc
}

// New returns a Client with the default per-invocation timeout.
func New(logger *slog.Logger) *Client {
	return &Client{
		Timeout: DefaultTimeout,
		Log:     logger,
		run:     runCommand,
	}
}

func runCommand(ctx context.Context, args ...string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, binPath, args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
		err = nil
	}
	return stdout.String(), stderr.String(), code, err
}

func (c *Client) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c *Client) logger() *slog.Logger {
	if c.Log == nil {
		return slog.Default()
	}
	return c.Log
}

// invoke runs one operation and validates its transcript against
// successPrefix.
func (c *Client) invoke(ctx context.Context, successPrefix string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	start := time.Now()
	stdout, stderr, code, err := c.run(ctx, args...)
	c.logger().Debug("networksetup", "op", args[0], "code", code, "duration", time.Since(start))

	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("networksetup %s timed out after %s", args[0], c.timeout())
	}
	if err != nil {
		return fmt.Errorf("failed to run networksetup: %w", err)
	}
	return checkTranscript(stdout, stderr, code, successPrefix)
}

// checkTranscript decides whether a transcript represents success. Success
// requires both a zero exit code and output whose last line starts with the
// operation's success phrase. Empty output on both streams means no
// diagnostic information is available, which is not success.
func checkTranscript(stdout, stderr string, code int, successPrefix string) error {
	stdout = strings.TrimSpace(stdout)
	stderr = strings.TrimSpace(stderr)

	diag := stdout
	if diag == "" {
		diag = stderr
	}
	if diag == "" {
		diag = "no diagnostic output"
	}

	if code != 0 {
		return fmt.Errorf("networksetup exited %d: %s", code, diag)
	}
	if stdout != "" {
		lines := strings.Split(stdout, "\n")
		if strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), successPrefix) {
			return nil
		}
	}
	return fmt.Errorf("networksetup reported: %s", diag)
}

// RemoveAll removes every preferred network on iface. The success message
// for this operation does not name any SSID, hence the generic prefix.
func (c *Client) RemoveAll(ctx context.Context, iface string) error {
	return c.invoke(ctx, "Removed ", "-removeallpreferredwirelessnetworks", iface)
}

// Remove removes a single preferred network on iface.
func (c *Client) Remove(ctx context.Context, iface, ssid string) error {
	return c.invoke(ctx, "Removed ", "-removepreferredwirelessnetwork", iface, ssid)
}

// AddAtIndex adds ssid as a preferred network at the given 0-based index.
// Networks added this way get auto-join enabled by the tool. A profile with
// an unknown security classification is refused rather than downgraded to
// OPEN.
func (c *Client) AddAtIndex(ctx context.Context, iface, ssid string, index int, security wifi.SecurityType) error {
	token, err := security.NetworksetupName()
	if err != nil {
		return fmt.Errorf("cannot re-add %q: %w", ssid, err)
	}
	return c.invoke(ctx, "Added "+ssid,
		"-addpreferredwirelessnetworkatindex", iface, ssid, strconv.Itoa(index), token)
}

// SetWireless powers the wireless radio on or off. This operation prints
// nothing on success, so any stdout at all is treated as an error message.
func (c *Client) SetWireless(ctx context.Context, iface string, enabled bool) error {
	state := "off"
	if enabled {
		state = "on"
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	stdout, stderr, code, err := c.run(ctx, "-setairportpower", iface, state)
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("networksetup -setairportpower timed out after %s", c.timeout())
	}
	if err != nil {
		return fmt.Errorf("failed to run networksetup: %w", err)
	}
	stdout = strings.TrimSpace(stdout)
	stderr = strings.TrimSpace(stderr)
	if code != 0 || stdout != "" || stderr != "" {
		diag := stdout
		if diag == "" {
			diag = stderr
		}
		if diag == "" {
			diag = "no diagnostic output"
		}
		return fmt.Errorf("networksetup exited %d: %s", code, diag)
	}
	return nil
}

// Interfaces returns the device names of all wireless hardware ports.
func (c *Client) Interfaces(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	stdout, stderr, code, err := c.run(ctx, "-listallhardwareports")
	if err != nil {
		return nil, fmt.Errorf("failed to run networksetup: %w", err)
	}
	if code != 0 {
		return nil, fmt.Errorf("failed to list hardware ports: %s", strings.TrimSpace(stderr))
	}
	return parseHardwarePorts(stdout), nil
}
