// Package useragent classifies raw User-Agent strings for visit records.
package useragent

import (
	ua "github.com/mileusna/useragent"
)

// Device types reported by Parse.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
)

// Snapshot is the parsed view of a User-Agent string.
// Browser and OS are empty when the parser could not identify them.
type Snapshot struct {
	Browser    string
	OS         string
	DeviceType string
}

// ParseFunc parses a raw User-Agent string. It must be side-effect-free.
type ParseFunc func(raw string) Snapshot

// Parse classifies a raw User-Agent string. Clients that cannot be
// classified default to the desktop device type, so "desktop" covers
// both real desktops and unparseable agents.
func Parse(raw string) Snapshot {
	parsed := ua.Parse(raw)

	device := DeviceDesktop

	switch {
	case parsed.Mobile:
		device = DeviceMobile
	case parsed.Tablet:
		device = DeviceTablet
	}

	return Snapshot{
		Browser:    parsed.Name,
		OS:         parsed.OS,
		DeviceType: device,
	}
}
