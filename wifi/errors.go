package wifi

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotSupported         = errors.New("not supported")
	ErrConfigUnavailable    = errors.New("interface configuration could not be read")
	ErrNoConfiguredNetworks = errors.New("no configured networks")
	ErrPrivilegeRequired    = errors.New("root privileges required")
	ErrApplyFailed          = errors.New("apply failed")
	ErrUnknownSecurity      = errors.New("unknown security type")
)

// UnknownSSIDError reports requested SSIDs that are not configured on the
// interface. It is returned before any mutation is attempted.
type UnknownSSIDError struct {
	Missing []string
}

func (e *UnknownSSIDError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, ssid := range e.Missing {
		quoted[i] = fmt.Sprintf("%q", ssid)
	}
	return fmt.Sprintf("SSIDs not configured on the specified interface: %s", strings.Join(quoted, ", "))
}

// Exit codes. These are stable and match what operators already script
// against, so they must not be renumbered.
const (
	ExitSuccess           = 0
	ExitFailure           = 1
	ExitUnknownSSID       = 2
	ExitNoNetworks        = 44
	ExitConfigUnavailable = 99
)

// ExitCode maps an error chain to its process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var unknown *UnknownSSIDError
	switch {
	case errors.As(err, &unknown):
		return ExitUnknownSSID
	case errors.Is(err, ErrNoConfiguredNetworks):
		return ExitNoNetworks
	case errors.Is(err, ErrConfigUnavailable):
		return ExitConfigUnavailable
	}
	return ExitFailure
}
