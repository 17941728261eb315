package networksetup

import "strings"

// parseHardwarePorts extracts the wireless device names from the output of
// `networksetup -listallhardwareports`. The output is a series of stanzas,
// separated by blank lines, each describing one hardware port.
func parseHardwarePorts(output string) []string {
	var devices []string
	for _, stanza := range strings.Split(output, "\n\n") {
		var device string
		isWifiPort := false
		for _, line := range strings.Split(stanza, "\n") {
			if strings.HasPrefix(line, "Hardware Port: ") {
				port := strings.TrimPrefix(line, "Hardware Port: ")
				if strings.Contains(port, "Wi-Fi") || strings.Contains(port, "AirPort") {
					isWifiPort = true
				}
			}
			if strings.HasPrefix(line, "Device: ") {
				device = strings.TrimPrefix(line, "Device: ")
			}
		}
		if isWifiPort && device != "" {
			devices = append(devices, device)
		}
	}
	return devices
}
