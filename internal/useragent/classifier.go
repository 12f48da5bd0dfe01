// Package useragent classifies raw user-agent strings into the canonical
// device, browser, and OS values recorded on each click.
package useragent

import (
	"strings"

	ua "github.com/mileusna/useragent"

	"github.com/snaplink/snaplink/internal/model"
)

// ClientInfo is the classifier's view of an inbound client.
// Fields are never empty: unrecognized values fall back to model.UnknownValue
// (or model.DeviceOther for the device bucket).
type ClientInfo struct {
	DeviceType model.DeviceType
	Browser    string
	OS         string
}

// Classify maps a raw user-agent string to ClientInfo.
// It has no failure mode; garbage input yields the unknown fallbacks.
func Classify(raw string) ClientInfo {
	info := ClientInfo{
		DeviceType: model.DeviceOther,
		Browser:    model.UnknownValue,
		OS:         model.UnknownValue,
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return info
	}

	parsed := ua.Parse(raw)

	switch {
	case parsed.Mobile:
		info.DeviceType = model.DeviceMobile
	case parsed.Tablet:
		info.DeviceType = model.DeviceTablet
	case parsed.Desktop:
		info.DeviceType = model.DeviceDesktop
	}

	if parsed.Name != "" {
		info.Browser = parsed.Name
	}
	if parsed.OS != "" {
		info.OS = parsed.OS
	}

	return info
}
