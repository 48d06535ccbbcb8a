package enrichment

import (
	"strings"

	"edge-shortener/internal/analytics/domain"

	ua "github.com/mileusna/useragent"
)

const unknownName = "Other"

// Vendor tokens are listed before the engine tokens they also carry: an
// Edge UA contains "Chrome/" and "Safari/", a Chrome UA contains "Safari/".
var browserTokens = []struct {
	token string
	name  string
}{
	{"Edg/", "Edge"},
	{"EdgA/", "Edge"},
	{"EdgiOS/", "Edge"},
	{"Edge/", "Edge"},
	{"OPR/", "Opera"},
	{"Opera", "Opera"},
	{"SamsungBrowser/", "Samsung Internet"},
	{"FxiOS/", "Firefox"},
	{"Firefox/", "Firefox"},
	{"CriOS/", "Chrome"},
	{"Chrome/", "Chrome"},
	{"Safari/", "Safari"},
}

// DeviceDetector derives device class, browser and OS from User-Agent strings.
type DeviceDetector struct{}

// NewDeviceDetector creates a new DeviceDetector.
func NewDeviceDetector() *DeviceDetector {
	return &DeviceDetector{}
}

// DetectDevice never fails. Unrecognized agents are desktops running
// "Other".
func (d *DeviceDetector) DetectDevice(uaString string) domain.UserAgentInfo {
	info := domain.UserAgentInfo{
		DeviceType: domain.DeviceDesktop,
		Browser:    unknownName,
		OS:         unknownName,
	}
	if uaString == "" {
		return info
	}

	parsed := ua.Parse(uaString)
	info.DeviceType = deviceType(uaString, parsed)
	info.Browser = browserName(uaString, parsed)
	if parsed.OS != "" {
		info.OS = parsed.OS
	}
	return info
}

// Tablets are checked first since most of them also look like Android
// phones.
func deviceType(raw string, parsed ua.UserAgent) domain.DeviceType {
	switch {
	case parsed.Tablet,
		strings.Contains(raw, "iPad"),
		strings.Contains(raw, "Tablet"),
		strings.Contains(raw, "Android") && !strings.Contains(raw, "Mobile"):
		return domain.DeviceTablet
	case parsed.Mobile,
		strings.Contains(raw, "Mobi"),
		strings.Contains(raw, "iPhone"):
		return domain.DeviceMobile
	default:
		return domain.DeviceDesktop
	}
}

func browserName(raw string, parsed ua.UserAgent) string {
	for _, b := range browserTokens {
		if strings.Contains(raw, b.token) {
			return b.name
		}
	}
	if parsed.Name != "" {
		return parsed.Name
	}
	return unknownName
}
