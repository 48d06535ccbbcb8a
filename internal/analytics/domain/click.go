// Package domain holds the click analytics model.
package domain

import "time"

// DeviceType is the coarse device class of a click.
type DeviceType string

const (
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceDesktop DeviceType = "desktop"
)

// Traffic sources derived from the referrer.
const (
	SourceDirect   = "Direct"
	SourceSearch   = "Search"
	SourceSocial   = "Social"
	SourceAI       = "AI"
	SourceReferral = "Referral"
)

// UserAgentInfo is what a user agent string parses to.
type UserAgentInfo struct {
	DeviceType DeviceType
	Browser    string
	OS         string
}

// ClickEvent is one enriched, append-only click record. Optional fields
// are empty strings when unknown.
type ClickEvent struct {
	ID            int64
	Slug          string
	ClickedAt     time.Time
	Referrer      string
	Country       string
	City          string
	DeviceType    DeviceType
	Browser       string
	OS            string
	VisitorHash   string
	UserAgentRaw  string
	TrafficSource string
}

// ClickWithOwner is a click joined with the creator of its link.
type ClickWithOwner struct {
	ClickEvent
	CreatedBy string
}
