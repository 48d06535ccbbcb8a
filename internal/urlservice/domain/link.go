package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Record is a stored link value. It is either a StructuredRecord or a
// LegacyBareRecord, resolved once by DecodeRecord.
type Record interface {
	Destination() string
	isRecord()
}

// StructuredRecord is the current storage form.
type StructuredRecord struct {
	URL       string
	CreatedAt time.Time
	CreatedBy string
}

// LegacyBareRecord is a value written before metadata was tracked: the
// destination URL alone.
type LegacyBareRecord struct {
	URL string
}

func (r StructuredRecord) Destination() string { return r.URL }
func (r LegacyBareRecord) Destination() string { return r.URL }

func (StructuredRecord) isRecord() {}
func (LegacyBareRecord) isRecord() {}

// structuredWire is the persisted JSON shape; createdAt is Unix seconds.
type structuredWire struct {
	URL       string `json:"url"`
	CreatedAt int64  `json:"createdAt"`
	CreatedBy string `json:"createdBy"`
}

// DecodeRecord resolves a raw stored value. A JSON object is structured; a
// JSON string or any other non-empty text is a legacy bare URL.
func DecodeRecord(raw string) (Record, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, ErrCorruptRecord
	}

	switch value[0] {
	case '{':
		var w structuredWire
		if err := json.Unmarshal([]byte(value), &w); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
		}
		if w.URL == "" {
			return nil, fmt.Errorf("%w: missing url", ErrCorruptRecord)
		}
		rec := StructuredRecord{URL: w.URL, CreatedBy: w.CreatedBy}
		if w.CreatedAt > 0 {
			rec.CreatedAt = time.Unix(w.CreatedAt, 0).UTC()
		}
		return rec, nil
	case '"':
		var s string
		if err := json.Unmarshal([]byte(value), &s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
		}
		if strings.TrimSpace(s) == "" {
			return nil, ErrCorruptRecord
		}
		return LegacyBareRecord{URL: strings.TrimSpace(s)}, nil
	default:
		return LegacyBareRecord{URL: value}, nil
	}
}

// EncodeRecord renders r in its storage form.
func EncodeRecord(r Record) (string, error) {
	switch rec := r.(type) {
	case StructuredRecord:
		w := structuredWire{URL: rec.URL, CreatedBy: rec.CreatedBy}
		if !rec.CreatedAt.IsZero() {
			w.CreatedAt = rec.CreatedAt.Unix()
		}
		data, err := json.Marshal(w)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case LegacyBareRecord:
		return rec.URL, nil
	default:
		return "", fmt.Errorf("%w: unknown record type %T", ErrCorruptRecord, r)
	}
}

// Link is a slug with its resolved record and denormalized click count.
type Link struct {
	Slug       string
	Record     Record
	ClickCount int64
}

// Destination returns the stored destination URL.
func (l *Link) Destination() string {
	return l.Record.Destination()
}

// CreatedAt is zero for legacy records.
func (l *Link) CreatedAt() time.Time {
	if rec, ok := l.Record.(StructuredRecord); ok {
		return rec.CreatedAt
	}
	return time.Time{}
}

// CreatedBy is empty for legacy records.
func (l *Link) CreatedBy() string {
	if rec, ok := l.Record.(StructuredRecord); ok {
		return rec.CreatedBy
	}
	return ""
}
