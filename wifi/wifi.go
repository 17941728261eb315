package wifi

import "fmt"

// SecurityType represents the security classification of a saved network,
// mirroring the classes the OS configuration API reports.
type SecurityType int

const (
	SecurityUnknown SecurityType = iota
	SecurityOpen
	SecurityWEP
	SecurityDynamicWEP
	SecurityWPAPersonal
	SecurityWPAEnterprise
	SecurityWPA2Personal
	SecurityWPA2Enterprise
	SecurityWPA3Personal
	SecurityWPA3Enterprise
	SecurityWPA3Transition
)

func (s SecurityType) String() string {
	switch s {
	case SecurityOpen:
		return "Open"
	case SecurityWEP:
		return "WEP"
	case SecurityDynamicWEP:
		return "Dynamic WEP"
	case SecurityWPAPersonal:
		return "WPA Personal"
	case SecurityWPAEnterprise:
		return "WPA Enterprise"
	case SecurityWPA2Personal:
		return "WPA2 Personal"
	case SecurityWPA2Enterprise:
		return "WPA2 Enterprise"
	case SecurityWPA3Personal:
		return "WPA3 Personal"
	case SecurityWPA3Enterprise:
		return "WPA3 Enterprise"
	case SecurityWPA3Transition:
		return "WPA3 Transition"
	}
	return "Unknown"
}

// NetworksetupName returns the security token that networksetup's
// -addpreferredwirelessnetworkatindex operation expects for this type.
// An unknown classification is an error: silently falling back to OPEN
// would weaken the network's stored security posture.
func (s SecurityType) NetworksetupName() (string, error) {
	switch s {
	case SecurityOpen:
		return "OPEN", nil
	case SecurityWEP:
		return "WEP", nil
	case SecurityDynamicWEP:
		return "8021XWEP", nil
	case SecurityWPAPersonal:
		return "WPA", nil
	case SecurityWPAEnterprise:
		return "WPAE", nil
	case SecurityWPA2Personal:
		return "WPA2", nil
	case SecurityWPA2Enterprise:
		return "WPA2E", nil
	case SecurityWPA3Personal, SecurityWPA3Transition:
		return "WPA3", nil
	case SecurityWPA3Enterprise:
		return "WPA3E", nil
	}
	return "", fmt.Errorf("no networksetup security type for %q: %w", s, ErrUnknownSecurity)
}

// Profile is one saved network as the OS knows it: the SSID plus its
// security classification. The rest of the OS-side record (credentials,
// join options) stays opaque and is never inspected here.
type Profile struct {
	SSID     string
	Security SecurityType
}

// SSIDs returns the SSID names of profiles, preserving order.
func SSIDs(profiles []Profile) []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.SSID
	}
	return names
}
