package wifi

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "No error", err: nil, expected: ExitSuccess},
		{name: "Plain error", err: errors.New("boom"), expected: ExitFailure},
		{name: "Apply failure", err: fmt.Errorf("commit: %w", ErrApplyFailed), expected: ExitFailure},
		{name: "Privilege failure", err: fmt.Errorf("sudo?: %w", ErrPrivilegeRequired), expected: ExitFailure},
		{name: "Unknown SSIDs", err: &UnknownSSIDError{Missing: []string{"X"}}, expected: ExitUnknownSSID},
		{
			name:     "Wrapped unknown SSIDs",
			err:      fmt.Errorf("planning: %w", &UnknownSSIDError{Missing: []string{"X"}}),
			expected: ExitUnknownSSID,
		},
		{name: "No configured networks", err: fmt.Errorf("en0: %w", ErrNoConfiguredNetworks), expected: ExitNoNetworks},
		{name: "Config unavailable", err: fmt.Errorf("en0: %w", ErrConfigUnavailable), expected: ExitConfigUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.expected {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestUnknownSSIDErrorMessage(t *testing.T) {
	err := &UnknownSSIDError{Missing: []string{"Attic", "Basement"}}
	expected := `SSIDs not configured on the specified interface: "Attic", "Basement"`
	if got := err.Error(); got != expected {
		t.Errorf("Error() got = %q, want %q", got, expected)
	}
}
