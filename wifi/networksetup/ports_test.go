package networksetup

import (
	"reflect"
	"testing"
)

func TestParseHardwarePorts(t *testing.T) {
	output := `Hardware Port: Ethernet
Device: en1
Ethernet Address: 00:11:22:33:44:55

Hardware Port: Wi-Fi
Device: en0
Ethernet Address: aa:bb:cc:dd:ee:ff

Hardware Port: Thunderbolt Bridge
Device: bridge0
Ethernet Address: N/A
`
	got := parseHardwarePorts(output)
	expected := []string{"en0"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("parseHardwarePorts() got = %v, want %v", got, expected)
	}
}

func TestParseHardwarePortsAirPort(t *testing.T) {
	output := "Hardware Port: AirPort\nDevice: en1\n"
	got := parseHardwarePorts(output)
	expected := []string{"en1"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("parseHardwarePorts() got = %v, want %v", got, expected)
	}
}

func TestParseHardwarePortsNone(t *testing.T) {
	output := "Hardware Port: Ethernet\nDevice: en1\n"
	if got := parseHardwarePorts(output); got != nil {
		t.Errorf("parseHardwarePorts() got = %v, want nil", got)
	}
}
