// Package anonymize turns client IPs into day-scoped visitor tokens.
package anonymize

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// MinKeyBytes is the shortest accepted secret.
const MinKeyBytes = 16

const (
	namespace  = "edge-shortener/visitor/v1"
	dateLayout = "2006-01-02"
	tokenBytes = 8
)

var ErrKeyTooShort = errors.New("visitor hash key must be at least 16 bytes")

// Hasher produces HMAC-SHA256 visitor tokens. The same IP yields the same
// token for the whole UTC day and an unrelated one the next day.
type Hasher struct {
	key []byte
}

func NewHasher(key []byte) (*Hasher, error) {
	if len(key) < MinKeyBytes {
		return nil, ErrKeyTooShort
	}
	return &Hasher{key: append([]byte(nil), key...)}, nil
}

// Hash returns 16 lowercase hex characters.
func (h *Hasher) Hash(ip string, at time.Time) string {
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(namespace))
	mac.Write([]byte{0})
	mac.Write([]byte(at.UTC().Format(dateLayout)))
	mac.Write([]byte{0})
	mac.Write([]byte(ip))
	return hex.EncodeToString(mac.Sum(nil)[:tokenBytes])
}

// GenerateKey returns a random 32-byte key for deployments without a
// configured secret. Tokens then do not survive a restart.
func GenerateKey() ([]byte, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
