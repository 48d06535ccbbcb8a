package events

import (
	"time"
	"unicode/utf8"
)

const (
	// LinkClickedEventName identifies LinkClicked on the bus.
	LinkClickedEventName = "link.clicked"

	// MaxHeaderBytes bounds the user agent and referrer a click carries.
	MaxHeaderBytes = 512
)

// LinkClicked is published after a redirect is served. It carries the raw
// request facts; enrichment happens in the consumers.
type LinkClicked struct {
	Base
	Slug      string    `json:"slug"`
	ClickedAt time.Time `json:"clicked_at"`
	ClientIP  string    `json:"client_ip"`
	UserAgent string    `json:"user_agent,omitempty"`
	Referrer  string    `json:"referrer,omitempty"`
}

// NewLinkClicked creates a LinkClicked event.
func NewLinkClicked(slug string, clickedAt time.Time, clientIP, userAgent, referrer string) *LinkClicked {
	return &LinkClicked{
		Base:      NewBase(slug, clickedAt),
		Slug:      slug,
		ClickedAt: clickedAt.UTC(),
		ClientIP:  clientIP,
		UserAgent: Truncate(userAgent, MaxHeaderBytes),
		Referrer:  Truncate(referrer, MaxHeaderBytes),
	}
}

func (e *LinkClicked) EventName() string {
	return LinkClickedEventName
}

// Truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
