//go:build darwin && cgo

// Package corewlan implements the configuration-API backend on macOS by
// talking to the CoreWLAN framework. It exposes exactly two things to the
// core: a read-only snapshot of the saved network profiles and an atomic
// set-and-commit of a new order.
package corewlan

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework Foundation -framework CoreWLAN

#include <stdlib.h>
#include <string.h>

#import <Foundation/Foundation.h>
#import <CoreWLAN/CoreWLAN.h>

typedef struct {
	char *ssid;
	long  security;
} cw_profile;

// cw_copy_profiles fills out/count with the saved network profiles for the
// named interface, in the order the OS will prefer to join them. Returns 0
// on success; on failure *err carries a malloc'd message.
static int cw_copy_profiles(const char *ifname, cw_profile **out, int *count, char **err) {
	@autoreleasepool {
		CWWiFiClient *client = [CWWiFiClient sharedWiFiClient];
		CWInterface *iface = [client interfaceWithName:[NSString stringWithUTF8String:ifname]];
		if (iface == nil) {
			*err = strdup("no such wireless interface");
			return -1;
		}
		CWConfiguration *conf = [iface configuration];
		if (conf == nil) {
			*err = strdup("no configuration found for interface");
			return -1;
		}
		NSOrderedSet<CWNetworkProfile *> *profiles = [conf networkProfiles];
		int n = (int)[profiles count];
		cw_profile *list = calloc(n > 0 ? n : 1, sizeof(cw_profile));
		for (int i = 0; i < n; i++) {
			CWNetworkProfile *p = [profiles objectAtIndex:i];
			const char *ssid = [[p ssid] UTF8String];
			list[i].ssid = strdup(ssid != NULL ? ssid : "");
			list[i].security = (long)[p security];
		}
		*out = list;
		*count = n;
		return 0;
	}
}

static void cw_free_profiles(cw_profile *profiles, int count) {
	for (int i = 0; i < count; i++) {
		free(profiles[i].ssid);
	}
	free(profiles);
}

// cw_commit_order reorders the interface's saved profiles to match ssids
// and commits the mutated configuration in a single operation. Profiles not
// named keep their relative order at the end. On failure the NSError's
// domain/code/description are copied out.
static int cw_commit_order(const char *ifname, const char **ssids, int n,
                           char **domain, long *code, char **detail) {
	@autoreleasepool {
		CWWiFiClient *client = [CWWiFiClient sharedWiFiClient];
		CWInterface *iface = [client interfaceWithName:[NSString stringWithUTF8String:ifname]];
		if (iface == nil) {
			*detail = strdup("no such wireless interface");
			return -1;
		}
		CWMutableConfiguration *conf =
			[[CWMutableConfiguration alloc] initWithConfiguration:[iface configuration]];
		if (conf == nil) {
			*detail = strdup("no configuration found for interface");
			return -1;
		}

		NSMutableArray<CWNetworkProfile *> *pool = [[[conf networkProfiles] array] mutableCopy];
		NSMutableArray<CWNetworkProfile *> *ordered = [NSMutableArray arrayWithCapacity:[pool count]];
		for (int i = 0; i < n; i++) {
			NSString *want = [NSString stringWithUTF8String:ssids[i]];
			for (NSUInteger j = 0; j < [pool count]; j++) {
				if ([[[pool objectAtIndex:j] ssid] isEqualToString:want]) {
					[ordered addObject:[pool objectAtIndex:j]];
					[pool removeObjectAtIndex:j];
					break;
				}
			}
		}
		[ordered addObjectsFromArray:pool];
		conf.networkProfiles = [NSOrderedSet orderedSetWithArray:ordered];

		NSError *error = nil;
		BOOL ok = [iface commitConfiguration:conf authorization:nil error:&error];
		if (!ok) {
			if (error != nil) {
				*domain = strdup([[error domain] UTF8String]);
				*code = (long)[error code];
				const char *desc = [[error localizedDescription] UTF8String];
				*detail = strdup(desc != NULL ? desc : "");
			} else {
				*detail = strdup("commit failed with no error information");
			}
			return -1;
		}
		return 0;
	}
}
*/
import "C"

import (
	"context"
	"errors"
	"unsafe"

	"github.com/shazow/ssidshuffle/wifi"
)

// Store implements wifi.ConfigStore over CoreWLAN.
type Store struct{}

func New() (*Store, error) {
	return &Store{}, nil
}

// Snapshot returns the saved network profiles for iface in preference
// order.
func (s *Store) Snapshot(ctx context.Context, iface string) ([]wifi.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cIface := C.CString(iface)
	defer C.free(unsafe.Pointer(cIface))

	var (
		list  *C.cw_profile
		count C.int
		cErr  *C.char
	)
	if C.cw_copy_profiles(cIface, &list, &count, &cErr) != 0 {
		msg := C.GoString(cErr)
		C.free(unsafe.Pointer(cErr))
		return nil, errors.New(msg)
	}
	defer C.cw_free_profiles(list, count)

	n := int(count)
	profiles := make([]wifi.Profile, 0, n)
	entries := unsafe.Slice(list, n)
	for i := 0; i < n; i++ {
		profiles = append(profiles, wifi.Profile{
			SSID:     C.GoString(entries[i].ssid),
			Security: securityFromCW(int64(entries[i].security)),
		})
	}
	return profiles, nil
}

// Commit installs profiles as the new preferred order in one atomic
// set-and-commit against the live configuration.
func (s *Store) Commit(ctx context.Context, iface string, profiles []wifi.Profile) wifi.CommitResult {
	if err := ctx.Err(); err != nil {
		return wifi.CommitResult{Detail: err.Error()}
	}

	cIface := C.CString(iface)
	defer C.free(unsafe.Pointer(cIface))

	cSSIDs := make([]*C.char, len(profiles))
	for i, p := range profiles {
		cSSIDs[i] = C.CString(p.SSID)
		defer C.free(unsafe.Pointer(cSSIDs[i]))
	}
	var argv **C.char
	if len(cSSIDs) > 0 {
		argv = &cSSIDs[0]
	}

	var (
		domain *C.char
		code   C.long
		detail *C.char
	)
	if C.cw_commit_order(cIface, argv, C.int(len(cSSIDs)), &domain, &code, &detail) != 0 {
		res := wifi.CommitResult{Code: int(code)}
		if domain != nil {
			res.Domain = C.GoString(domain)
			C.free(unsafe.Pointer(domain))
		}
		if detail != nil {
			res.Detail = C.GoString(detail)
			C.free(unsafe.Pointer(detail))
		}
		return res
	}
	return wifi.CommitResult{OK: true}
}

// securityFromCW maps a CWSecurity value onto ours.
func securityFromCW(sec int64) wifi.SecurityType {
	switch C.long(sec) {
	case C.kCWSecurityNone:
		return wifi.SecurityOpen
	case C.kCWSecurityWEP:
		return wifi.SecurityWEP
	case C.kCWSecurityDynamicWEP:
		return wifi.SecurityDynamicWEP
	case C.kCWSecurityWPAPersonal, C.kCWSecurityWPAPersonalMixed:
		return wifi.SecurityWPAPersonal
	case C.kCWSecurityWPAEnterprise, C.kCWSecurityWPAEnterpriseMixed:
		return wifi.SecurityWPAEnterprise
	case C.kCWSecurityWPA2Personal, C.kCWSecurityPersonal:
		return wifi.SecurityWPA2Personal
	case C.kCWSecurityWPA2Enterprise, C.kCWSecurityEnterprise:
		return wifi.SecurityWPA2Enterprise
	case C.kCWSecurityWPA3Personal:
		return wifi.SecurityWPA3Personal
	case C.kCWSecurityWPA3Enterprise:
		return wifi.SecurityWPA3Enterprise
	case C.kCWSecurityWPA3Transition:
		return wifi.SecurityWPA3Transition
	}
	return wifi.SecurityUnknown
}
