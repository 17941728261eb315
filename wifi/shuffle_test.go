package wifi_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shazow/ssidshuffle/wifi"
	"github.com/shazow/ssidshuffle/wifi/mock"
)

func newShuffler(store *mock.Store, tool *mock.Tool) *wifi.Shuffler {
	sh := &wifi.Shuffler{Store: store, OSMajor: 12}
	if tool != nil {
		sh.Tool = tool
	}
	return sh
}

func TestReorderStore(t *testing.T) {
	store := mock.New()
	sh := newShuffler(store, nil)

	outcome, err := sh.Reorder(context.Background(), "en0", []string{"Pretty Fly for a Wi-Fi"}, false)
	require.NoError(t, err)

	assert.Equal(t, wifi.KindConfigAPI, outcome.Backend)
	assert.True(t, outcome.OK)
	assert.False(t, outcome.Advisory)
	assert.Equal(t, []string{
		"Pretty Fly for a Wi-Fi",
		"HideYoKidsHideYoWiFi",
		"GET off my LAN",
		"Unencrypted_Honeypot",
		"I See Dead Packets",
	}, outcome.Applied)

	require.Len(t, store.Committed, 1)
	assert.Equal(t, outcome.Applied, wifi.SSIDs(store.Committed[0]))
}

func TestReorderStoreAdvisory(t *testing.T) {
	// No tool wired, so the version gate falls back to the configuration
	// API even on an OS version where its success is advisory.
	store := mock.New()
	sh := newShuffler(store, nil)
	sh.OSMajor = 13

	outcome, err := sh.Reorder(context.Background(), "en0", []string{"GET off my LAN"}, false)
	require.NoError(t, err)
	assert.Equal(t, wifi.KindConfigAPI, outcome.Backend)
	assert.True(t, outcome.OK)
	assert.True(t, outcome.Advisory)
}

func TestReorderStorePrivilegeHint(t *testing.T) {
	store := mock.New()
	store.CommitResult = &wifi.CommitResult{
		Domain: "com.apple.corewlan.error",
		Code:   wifi.CodeOperationNotPermitted,
		Detail: "operation not permitted",
	}
	sh := newShuffler(store, nil)

	_, err := sh.Reorder(context.Background(), "en0", []string{"GET off my LAN"}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, wifi.ErrPrivilegeRequired)
	assert.Contains(t, err.Error(), "sudo")

	// The same failure with privileges already held is not a privilege
	// problem, just a failed apply.
	store = mock.New()
	store.CommitResult = &wifi.CommitResult{Domain: "com.apple.corewlan.error", Code: wifi.CodeOperationNotPermitted}
	sh = newShuffler(store, nil)
	sh.Elevated = true

	_, err = sh.Reorder(context.Background(), "en0", []string{"GET off my LAN"}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, wifi.ErrApplyFailed)
	assert.NotErrorIs(t, err, wifi.ErrPrivilegeRequired)
}

func TestReorderTool(t *testing.T) {
	store := mock.New()
	tool := &mock.Tool{}
	sh := newShuffler(store, tool)
	sh.OSMajor = 14

	outcome, err := sh.Reorder(context.Background(), "en0", []string{"I See Dead Packets", "GET off my LAN"}, false)
	require.NoError(t, err)
	assert.Equal(t, wifi.KindNetworkSetup, outcome.Backend)
	assert.True(t, outcome.OK)
	assert.True(t, tool.Removed)

	expected := []mock.Add{
		{SSID: "I See Dead Packets", Index: 0, Security: wifi.SecurityWEP},
		{SSID: "GET off my LAN", Index: 1, Security: wifi.SecurityWPA3Personal},
		{SSID: "HideYoKidsHideYoWiFi", Index: 2, Security: wifi.SecurityWPA2Personal},
		{SSID: "Pretty Fly for a Wi-Fi", Index: 3, Security: wifi.SecurityWPA2Personal},
		{SSID: "Unencrypted_Honeypot", Index: 4, Security: wifi.SecurityOpen},
	}
	assert.Equal(t, expected, tool.Adds)
}

func TestReorderToolPartialFailure(t *testing.T) {
	store := mock.New()
	tool := &mock.Tool{AddErrs: map[string]error{
		"GET off my LAN": errors.New("add failed"),
	}}
	sh := newShuffler(store, tool)
	sh.OSMajor = 13

	outcome, err := sh.Reorder(context.Background(), "en0", []string{"Unencrypted_Honeypot"}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, wifi.ErrApplyFailed)
	assert.False(t, outcome.OK)
	assert.Equal(t, []string{"GET off my LAN"}, outcome.Failed)
	assert.Equal(t, []string{
		"Unencrypted_Honeypot",
		"HideYoKidsHideYoWiFi",
		"Pretty Fly for a Wi-Fi",
		"I See Dead Packets",
	}, outcome.Applied)
}

func TestReorderToolRemoveAllFailure(t *testing.T) {
	store := mock.New()
	tool := &mock.Tool{RemoveAllErr: errors.New("remove failed")}
	sh := newShuffler(store, tool)
	sh.OSMajor = 13

	outcome, err := sh.Reorder(context.Background(), "en0", []string{"GET off my LAN"}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, wifi.ErrApplyFailed)
	assert.Empty(t, outcome.Applied)
	assert.Len(t, outcome.Failed, len(store.Profiles))
	assert.Empty(t, tool.Adds, "no re-adds should be attempted after a failed removal")
}

func TestReorderUnknownSSID(t *testing.T) {
	store := mock.New()
	sh := newShuffler(store, nil)

	_, err := sh.Reorder(context.Background(), "en0", []string{"GET off my LAN", "Nope"}, false)
	require.Error(t, err)

	var unknown *wifi.UnknownSSIDError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []string{"Nope"}, unknown.Missing)
	assert.Empty(t, store.Committed, "validation failures must not mutate anything")
	assert.Equal(t, wifi.ExitUnknownSSID, wifi.ExitCode(err))
}

func TestReorderNoConfiguredNetworks(t *testing.T) {
	store := mock.New()
	store.Profiles = nil
	sh := newShuffler(store, nil)

	_, err := sh.Reorder(context.Background(), "en0", []string{"Anything"}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, wifi.ErrNoConfiguredNetworks)
	assert.Equal(t, wifi.ExitNoNetworks, wifi.ExitCode(err))
}

func TestReorderConfigUnavailable(t *testing.T) {
	store := mock.New()
	store.SnapshotErr = errors.New("no such interface")
	sh := newShuffler(store, nil)

	_, err := sh.Reorder(context.Background(), "en9", []string{"Anything"}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, wifi.ErrConfigUnavailable)
	assert.Equal(t, wifi.ExitConfigUnavailable, wifi.ExitCode(err))
}

func TestReorderForceToolWithoutTool(t *testing.T) {
	store := mock.New()
	sh := newShuffler(store, nil)

	_, err := sh.Reorder(context.Background(), "wlan0", []string{"GET off my LAN"}, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, wifi.ErrNotSupported)
}

func TestPowerCycle(t *testing.T) {
	store := mock.New()
	sh := newShuffler(store, nil)
	sh.Radio = store

	err := sh.PowerCycle(context.Background(), "en0", time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, store.PowerEvents)
	assert.True(t, store.WirelessEnabled)
}

func TestPowerCycleWithoutRadio(t *testing.T) {
	sh := newShuffler(mock.New(), nil)
	err := sh.PowerCycle(context.Background(), "en0", time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, wifi.ErrNotSupported)
}

func TestPowerCycleCancelled(t *testing.T) {
	store := mock.New()
	sh := newShuffler(store, nil)
	sh.Radio = store

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := sh.PowerCycle(ctx, "en0", time.Hour)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []bool{false}, store.PowerEvents, "the radio must not be left waiting for power-on")
}
