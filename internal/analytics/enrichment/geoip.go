package enrichment

import (
	"net"

	geoip2 "github.com/oschwald/geoip2-golang"
)

// GeoIPResolver resolves IP addresses to country and city using a GeoIP2
// or GeoLite2 City database.
type GeoIPResolver struct {
	db *geoip2.Reader
}

// NewGeoIPResolver creates a new GeoIPResolver.
// Returns error if the database file cannot be opened or is corrupt.
func NewGeoIPResolver(dbPath string) (*GeoIPResolver, error) {
	db, err := geoip2.Open(dbPath)
	if err != nil {
		return nil, err
	}
	return &GeoIPResolver{db: db}, nil
}

// Close closes the GeoIP database reader.
func (g *GeoIPResolver) Close() error {
	return g.db.Close()
}

// Resolve returns the ISO country code and English city name for ipStr.
// Either is empty when unknown, including private and invalid addresses.
func (g *GeoIPResolver) Resolve(ipStr string) (country, city string) {
	ip := net.ParseIP(ipStr)
	if ip == nil || ip.IsPrivate() || ip.IsLoopback() {
		return "", ""
	}

	record, err := g.db.City(ip)
	if err != nil {
		return "", ""
	}
	return record.Country.IsoCode, record.City.Names["en"]
}

// NoGeoIP is used when no database is configured.
type NoGeoIP struct{}

func (NoGeoIP) Resolve(string) (string, string) { return "", "" }
