package safefetch

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"syscall"
	"time"

	"edge-shortener/internal/urlsafety"
)

// NewTransport returns the transport New uses by default. Every connection
// is checked after name resolution, so a public name pointing at a private
// or metadata address is refused at dial time. Proxies are not used since
// the dialed address would then be the proxy's.
func NewTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   checkDialAddress,
	}
	return &http.Transport{
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
}

func checkDialAddress(_, address string, _ syscall.RawConn) error {
	ap, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: dial address %q", urlsafety.ErrMalformedURL, address)
	}
	return urlsafety.CheckAddr(ap.Addr())
}
