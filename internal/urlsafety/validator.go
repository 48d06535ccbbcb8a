// Package urlsafety decides whether a URL is safe to fetch from inside the
// service network. It performs no I/O: every decision is made on the URL text
// alone, so it must be re-applied to each hop of a redirect chain.
package urlsafety

import (
	"fmt"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// Verdict is the outcome of Check. Reason is nil when Valid is true.
type Verdict struct {
	Valid  bool
	Reason error
}

var blockedNames = map[string]struct{}{
	"localhost":                  {},
	"localhost.localdomain":      {},
	"ip6-localhost":              {},
	"ip6-loopback":               {},
	"loopback":                   {},
	"broadcasthost":              {},
	"metadata":                   {},
	"metadata.google.internal":   {},
	"metadata.goog":              {},
	"instance-data":              {},
	"instance-data.ec2.internal": {},
}

var blockedSuffixes = []string{
	".localhost",
	".localdomain",
	".local",
	".internal",
	".corp",
	".lan",
	".home.arpa",
	".intranet",
}

// Cloud metadata endpoints, in canonical netip form.
var metadataAddrs = map[string]struct{}{
	"169.254.169.254": {}, // AWS, GCP, Azure, OpenStack
	"169.254.170.2":   {}, // ECS task metadata
	"100.100.100.200": {}, // Alibaba Cloud
	"192.0.0.192":     {}, // Oracle Cloud
	"fd00:ec2::254":   {}, // AWS IPv6
}

// Check runs every rule and reports the first failure.
func Check(rawURL string) Verdict {
	if err := Validate(rawURL); err != nil {
		return Verdict{Reason: err}
	}
	return Verdict{Valid: true}
}

// Validate returns nil when rawURL is safe to fetch server-side. Otherwise the
// error wraps one of the package sentinels.
func Validate(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrMalformedURL, rawURL)
	}

	if u.Scheme != "https" {
		return fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	if u.User != nil {
		return ErrCredentialsInURL
	}

	host, err := hostOf(u)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	if host == "" {
		return fmt.Errorf("%w: empty host", ErrMalformedURL)
	}

	if isBlockedName(host) {
		return fmt.Errorf("%w: %s", ErrBlockedHostname, host)
	}

	if _, ok := metadataAddrs[host]; ok {
		return fmt.Errorf("%w: metadata address %s", ErrBlockedHostname, host)
	}

	if isDottedQuad(host) {
		v, ok := parseIPv4(host)
		if !ok {
			return fmt.Errorf("%w: non-canonical ipv4 %s", ErrNumericHostname, host)
		}
		if isPrivateIPv4(v) {
			return fmt.Errorf("%w: %s", ErrPrivateAddress, host)
		}
		return nil
	}

	if strings.Contains(host, ":") {
		addr, err := netip.ParseAddr(host)
		if err != nil {
			return fmt.Errorf("%w: bad ipv6 literal %s", ErrMalformedURL, host)
		}
		if _, ok := metadataAddrs[addr.WithZone("").String()]; ok {
			return fmt.Errorf("%w: metadata address %s", ErrBlockedHostname, host)
		}
		if isPrivateIPv6(addr) {
			return fmt.Errorf("%w: %s", ErrPrivateAddress, host)
		}
		return nil
	}

	if looksNumeric(host) {
		return fmt.Errorf("%w: %s", ErrNumericHostname, host)
	}

	// Dotless names resolve through the resolver search path, i.e. to internal hosts.
	if !strings.Contains(host, ".") {
		return fmt.Errorf("%w: single-label host %s", ErrBlockedHostname, host)
	}

	return nil
}

// hostOf returns the lower-cased ASCII hostname without brackets or trailing
// dot. Non-ASCII hosts are mapped the way net/http maps them before dialing,
// so fullwidth digits and ideographic dots are judged in their dialed form.
func hostOf(u *url.URL) (string, error) {
	host := u.Hostname()
	// Hostname splits an unbracketed IPv6 literal on its last colon.
	if !strings.HasPrefix(u.Host, "[") && strings.Count(u.Host, ":") > 1 {
		host = u.Host
	}
	if !isASCII(host) {
		mapped, err := idna.Lookup.ToASCII(host)
		if err != nil {
			return "", fmt.Errorf("host %q: %w", host, err)
		}
		host = mapped
	}
	return strings.ToLower(strings.TrimSuffix(host, ".")), nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// CheckAddr applies the address rules to an IP that is about to be dialed,
// after name resolution. It returns nil for public addresses.
func CheckAddr(addr netip.Addr) error {
	addr = addr.WithZone("")
	if _, ok := metadataAddrs[addr.Unmap().String()]; ok {
		return fmt.Errorf("%w: metadata address %s", ErrBlockedHostname, addr)
	}
	if addr.Is4() {
		if isPrivateIPv4(packIPv4(addr.As4())) {
			return fmt.Errorf("%w: %s", ErrPrivateAddress, addr)
		}
		return nil
	}
	if isPrivateIPv6(addr) {
		return fmt.Errorf("%w: %s", ErrPrivateAddress, addr)
	}
	return nil
}

func isBlockedName(host string) bool {
	if _, ok := blockedNames[host]; ok {
		return true
	}
	for _, suffix := range blockedSuffixes {
		if strings.HasSuffix(host, suffix) || host == suffix[1:] {
			return true
		}
	}
	return false
}

func isDottedQuad(host string) bool {
	parts := strings.Split(host, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if p == "" || !isDigits(p) {
			return false
		}
	}
	return true
}

// parseIPv4 packs a canonical dotted quad into a uint32. Leading zeros and
// octets above 255 are refused since resolvers disagree on their meaning.
func parseIPv4(host string) (uint32, bool) {
	var v uint32
	for _, p := range strings.Split(host, ".") {
		if len(p) > 3 || (len(p) > 1 && p[0] == '0') {
			return 0, false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n > 255 {
			return 0, false
		}
		v = v<<8 | uint32(n)
	}
	return v, true
}

type ipv4Range struct {
	base uint32
	bits int
}

func (r ipv4Range) contains(v uint32) bool {
	mask := ^uint32(0) << (32 - r.bits)
	return v&mask == r.base
}

func ip4(a, b, c, d uint32) uint32 {
	return a<<24 | b<<16 | c<<8 | d
}

var privateIPv4Ranges = []ipv4Range{
	{ip4(0, 0, 0, 0), 8},       // "this" network
	{ip4(10, 0, 0, 0), 8},      // RFC1918
	{ip4(100, 64, 0, 0), 10},   // CGNAT
	{ip4(127, 0, 0, 0), 8},     // loopback
	{ip4(169, 254, 0, 0), 16},  // link-local, metadata
	{ip4(172, 16, 0, 0), 12},   // RFC1918
	{ip4(192, 0, 0, 0), 24},    // IETF protocol assignments
	{ip4(192, 0, 2, 0), 24},    // TEST-NET-1
	{ip4(192, 88, 99, 0), 24},  // 6to4 relay anycast
	{ip4(192, 168, 0, 0), 16},  // RFC1918
	{ip4(198, 18, 0, 0), 15},   // benchmarking
	{ip4(198, 51, 100, 0), 24}, // TEST-NET-2
	{ip4(203, 0, 113, 0), 24},  // TEST-NET-3
	{ip4(224, 0, 0, 0), 4},     // multicast
	{ip4(240, 0, 0, 0), 4},     // reserved, broadcast
}

func isPrivateIPv4(v uint32) bool {
	for _, r := range privateIPv4Ranges {
		if r.contains(v) {
			return true
		}
	}
	return false
}

var blockedIPv6Prefixes = []netip.Prefix{
	netip.MustParsePrefix("fec0::/10"),     // deprecated site-local
	netip.MustParsePrefix("2001:db8::/32"), // documentation
	netip.MustParsePrefix("100::/64"),      // discard-only
}

var (
	nat64Prefix = netip.MustParsePrefix("64:ff9b::/96")
	sixToFour   = netip.MustParsePrefix("2002::/16")
)

func isPrivateIPv6(addr netip.Addr) bool {
	addr = addr.WithZone("")
	if addr.Is4In6() {
		return isPrivateIPv4(packIPv4(addr.Unmap().As4()))
	}
	if addr.IsLoopback() || addr.IsUnspecified() || addr.IsLinkLocalUnicast() ||
		addr.IsMulticast() || addr.IsPrivate() {
		return true
	}
	for _, p := range blockedIPv6Prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	if v4, ok := embeddedIPv4(addr); ok {
		return isPrivateIPv4(v4)
	}
	return false
}

// embeddedIPv4 extracts the IPv4 address carried by IPv4-compatible, NAT64
// and 6to4 addresses.
func embeddedIPv4(addr netip.Addr) (uint32, bool) {
	b := addr.As16()
	switch {
	case isZero(b[:12]):
		return packIPv4([4]byte{b[12], b[13], b[14], b[15]}), true
	case nat64Prefix.Contains(addr):
		return packIPv4([4]byte{b[12], b[13], b[14], b[15]}), true
	case sixToFour.Contains(addr):
		return packIPv4([4]byte{b[2], b[3], b[4], b[5]}), true
	}
	return 0, false
}

func packIPv4(b [4]byte) uint32 {
	return ip4(uint32(b[0]), uint32(b[1]), uint32(b[2]), uint32(b[3]))
}

func isZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}

// looksNumeric reports whether every label is a decimal, octal or hex number,
// which some resolvers interpret as an IPv4 address (e.g. 2130706433, 0x7f.1).
func looksNumeric(host string) bool {
	for _, label := range strings.Split(host, ".") {
		if label == "" {
			return false
		}
		if isDigits(label) {
			continue
		}
		lower := strings.ToLower(label)
		if strings.HasPrefix(lower, "0x") && isHex(lower[2:]) {
			continue
		}
		return false
	}
	return true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}
